package repositories

import (
	"context"

	"textscan/internal/domain/models"
)

// DocumentRepository stores document records.
type DocumentRepository interface {
	// Create inserts a new document and assigns its ID
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document scoped to its owning account
	GetByID(ctx context.Context, id, accountID int64) (*models.Document, error)

	// ListProcessed returns the account's processed documents in creation
	// order; these form the comparison corpus
	ListProcessed(ctx context.Context, accountID int64) ([]models.Document, error)

	// UpdateStatus transitions a document's processing status
	UpdateStatus(ctx context.Context, id int64, status models.ProcessingStatus) error
}
