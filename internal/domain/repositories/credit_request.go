package repositories

import (
	"context"

	"textscan/internal/domain/models"
)

// CreditRequestRepository stores credit top-up requests.
type CreditRequestRepository interface {
	// Create inserts a new pending request and assigns its ID
	Create(ctx context.Context, req *models.CreditRequest) error

	// GetByID retrieves a request
	GetByID(ctx context.Context, id int64) (*models.CreditRequest, error)

	// ListPending returns pending requests, oldest first
	ListPending(ctx context.Context) ([]models.CreditRequest, error)

	// UpdateDecision records an admin decision on a request
	UpdateDecision(ctx context.Context, id int64, status models.RequestStatus, processedBy int64, adminResponse *string) error
}
