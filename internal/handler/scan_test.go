package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textscan/internal/domain"
	"textscan/internal/domain/models"
	"textscan/internal/httputil"
	"textscan/internal/matching"
)

// stubScanService returns canned results for handler tests.
type stubScanService struct {
	report *models.ScanReport
	doc    *models.Document
	err    error

	gotAccountID int64
	gotFilename  string
	gotRaw       []byte
}

func (s *stubScanService) Ingest(_ context.Context, accountID int64, raw []byte, filename string) (*models.ScanReport, error) {
	s.gotAccountID = accountID
	s.gotRaw = raw
	s.gotFilename = filename
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubScanService) GetDocument(_ context.Context, accountID, documentID int64) (*models.Document, error) {
	s.gotAccountID = accountID
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func newScanHandler(svc *stubScanService) *ScanHandler {
	return NewScanHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// uploadRequest builds an authenticated multipart upload.
func uploadRequest(t *testing.T, accountID int64, field, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/scan/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return httputil.WithAccountID(req, accountID)
}

func TestUploadReturnsReport(t *testing.T) {
	svc := &stubScanService{
		report: &models.ScanReport{
			Document: models.DocumentSummary{
				ID:       7,
				Filename: "essay.txt",
				Status:   models.StatusProcessed,
			},
			SimilarDocuments: []matching.Result{
				{Name: "earlier.txt", Similarity: 92, Matches: []matching.ReportedMatch{}},
			},
			RemainingCredits: 4,
		},
	}
	h := newScanHandler(svc)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, 42, "document", "essay.txt", "Some essay text."))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), svc.gotAccountID)
	assert.Equal(t, "essay.txt", svc.gotFilename)
	assert.Equal(t, []byte("Some essay text."), svc.gotRaw)

	var report models.ScanReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, int64(7), report.Document.ID)
	assert.Equal(t, 4, report.RemainingCredits)
	require.Len(t, report.SimilarDocuments, 1)
	assert.Equal(t, 92, report.SimilarDocuments[0].Similarity)
}

func TestUploadInsufficientCredits(t *testing.T) {
	svc := &stubScanService{err: &domain.InsufficientCreditError{AccountID: 42}}
	h := newScanHandler(svc)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, 42, "document", "essay.txt", "text"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, true, problem["credits_required"])
}

func TestUploadInvalidEncoding(t *testing.T) {
	svc := &stubScanService{err: domain.ErrInvalidEncoding}
	h := newScanHandler(svc)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, 42, "document", "binary.txt", "x"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRejectsNonTextDocument(t *testing.T) {
	svc := &stubScanService{}
	h := newScanHandler(svc)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, 42, "document", "image.png", "not text"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.gotRaw)
}

func TestUploadMissingDocumentField(t *testing.T) {
	svc := &stubScanService{}
	h := newScanHandler(svc)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, 42, "wrong_field", "essay.txt", "text"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRequiresAuthentication(t *testing.T) {
	svc := &stubScanService{}
	h := newScanHandler(svc)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("document", "essay.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("text"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/scan/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetDocument(t *testing.T) {
	svc := &stubScanService{doc: &models.Document{ID: 7, AccountID: 42, Filename: "essay.txt"}}
	h := newScanHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents/{id}", h.GetDocument)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/7", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httputil.WithAccountID(req, 42))

	assert.Equal(t, http.StatusOK, rec.Code)

	var doc models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "essay.txt", doc.Filename)
}

func TestGetDocumentNotFound(t *testing.T) {
	svc := &stubScanService{err: domain.ErrNotFound}
	h := newScanHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents/{id}", h.GetDocument)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/999", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httputil.WithAccountID(req, 42))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDocumentInvalidID(t *testing.T) {
	svc := &stubScanService{}
	h := newScanHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents/{id}", h.GetDocument)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/abc", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httputil.WithAccountID(req, 42))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
