package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"textscan/internal/config"
	"textscan/internal/domain"
	"textscan/internal/domain/models"
	"textscan/internal/domain/repositories"
	"textscan/internal/matching"
)

// ContentStore persists and retrieves raw document bytes.
type ContentStore interface {
	Save(ctx context.Context, filename string, raw []byte) (string, error)
	Read(ctx context.Context, locator string) ([]byte, error)
	Remove(ctx context.Context, locator string) error
}

// ScanService ingests uploaded documents and reports their overlap with the
// account's previously processed submissions.
type ScanService interface {
	// Ingest runs the full pipeline: credit admission, content hashing,
	// corpus scan, document persistence, credit commit. Each successful
	// call consumes exactly one credit; a failed call consumes none.
	Ingest(ctx context.Context, accountID int64, raw []byte, filename string) (*models.ScanReport, error)

	// GetDocument retrieves a stored document scoped to its owner
	GetDocument(ctx context.Context, accountID, documentID int64) (*models.Document, error)
}

// scanService implements the ScanService interface
type scanService struct {
	accounts  repositories.AccountRepository
	documents repositories.DocumentRepository
	store     ContentStore
	scanner   *matching.Scanner
	logger    *slog.Logger
}

// NewScanService creates a new scan service
func NewScanService(
	accounts repositories.AccountRepository,
	documents repositories.DocumentRepository,
	store ContentStore,
	scanner *matching.Scanner,
	logger *slog.Logger,
) ScanService {
	return &scanService{
		accounts:  accounts,
		documents: documents,
		store:     store,
		scanner:   scanner,
		logger:    logger,
	}
}

func (s *scanService) Ingest(ctx context.Context, accountID int64, raw []byte, filename string) (*models.ScanReport, error) {
	if err := validation.Validate(filename,
		validation.Required,
		validation.Length(1, config.MaxFilenameLength),
	); err != nil {
		return nil, fmt.Errorf("%w: filename: %v", domain.ErrValidation, err)
	}

	// Admission comes before any processing cost.
	adm := newAdmission(s.accounts, accountID)
	admitted, err := adm.tryAdmit(ctx)
	if err != nil {
		return nil, err
	}
	if !admitted {
		return nil, &domain.InsufficientCreditError{AccountID: accountID}
	}

	report, err := s.process(ctx, adm, accountID, raw, filename)
	if err != nil {
		// Compensate: a failed ingestion must not consume the credit.
		if relErr := adm.release(ctx); relErr != nil {
			s.logger.Error("failed to release reserved credit",
				"account_id", accountID,
				"error", relErr,
			)
		}
		return nil, err
	}

	return report, nil
}

// process runs the pipeline after a successful admission. Any error returned
// here triggers a compensating release in Ingest.
func (s *scanService) process(ctx context.Context, adm *admission, accountID int64, raw []byte, filename string) (*models.ScanReport, error) {
	digest := sha256.Sum256(raw)
	contentHash := hex.EncodeToString(digest[:])

	if !utf8.Valid(raw) {
		return nil, domain.ErrInvalidEncoding
	}
	text := string(raw)

	corpus, err := s.documents.ListProcessed(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	refs := make([]matching.Reference, len(corpus))
	for i, doc := range corpus {
		refs[i] = matching.Reference{Name: doc.Filename, Locator: doc.Locator}
	}

	results := s.scanner.Scan(ctx, text, refs)

	locator, err := s.store.Save(ctx, filename, raw)
	if err != nil {
		return nil, fmt.Errorf("store content: %w", err)
	}

	doc := &models.Document{
		AccountID:   accountID,
		Filename:    filename,
		Locator:     locator,
		FileSize:    int64(len(raw)),
		ContentHash: contentHash,
		Status:      models.StatusProcessed,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		if remErr := s.store.Remove(ctx, locator); remErr != nil {
			s.logger.Warn("failed to remove orphaned content",
				"locator", locator,
				"error", remErr,
			)
		}
		return nil, fmt.Errorf("persist document: %w", err)
	}

	balance, err := adm.commit(ctx)
	if err != nil {
		// The document row exists but the credit cannot be finalized. Flip
		// the record to failed so it never serves as a corpus reference,
		// then let the caller release the reservation.
		if stErr := s.documents.UpdateStatus(ctx, doc.ID, models.StatusFailed); stErr != nil {
			s.logger.Error("failed to mark document failed",
				"document_id", doc.ID,
				"error", stErr,
			)
		}
		return nil, fmt.Errorf("commit credit: %w", err)
	}

	s.logger.Info("document ingested",
		"account_id", accountID,
		"document_id", doc.ID,
		"file_size", doc.FileSize,
		"similar_documents", len(results),
		"remaining_credits", balance,
	)

	return &models.ScanReport{
		Document: models.DocumentSummary{
			ID:       doc.ID,
			Filename: doc.Filename,
			Status:   doc.Status,
		},
		SimilarDocuments: results,
		RemainingCredits: balance,
	}, nil
}

func (s *scanService) GetDocument(ctx context.Context, accountID, documentID int64) (*models.Document, error) {
	return s.documents.GetByID(ctx, documentID, accountID)
}
