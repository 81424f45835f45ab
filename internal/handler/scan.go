package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"textscan/internal/config"
	"textscan/internal/httputil"
	"textscan/internal/service"
)

// ScanHandler handles document upload and retrieval HTTP requests
type ScanHandler struct {
	service service.ScanService
	logger  *slog.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(service service.ScanService, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		service: service,
		logger:  logger,
	}
}

// Upload ingests a document and reports its overlap with the account's
// previously processed uploads.
// POST /api/scan/upload
func (h *ScanHandler) Upload(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "document exceeds the upload size limit")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "missing document field")
		return
	}
	defer file.Close()

	if !isPlainText(header) {
		httputil.RespondError(w, http.StatusBadRequest, "only plain text documents are accepted")
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read uploaded document")
		return
	}

	report, err := h.service.Ingest(r.Context(), accountID, raw, header.Filename)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, report)
}

// isPlainText accepts .txt uploads and anything declared text/plain. The
// pipeline still rejects content that is not valid UTF-8.
func isPlainText(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".txt") {
		return true
	}
	contentType := header.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/plain"
}

// GetDocument retrieves one of the account's stored documents
// GET /api/documents/{id}
func (h *ScanHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r)
	if !ok {
		return
	}

	documentID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := h.service.GetDocument(r.Context(), accountID, documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// HealthCheck reports service liveness
// GET /health
func (h *ScanHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
