package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"textscan/internal/domain"
	"textscan/internal/domain/models"
	"textscan/internal/domain/repositories"
)

// PostgresCreditRequestRepository implements the CreditRequestRepository interface
type PostgresCreditRequestRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewCreditRequestRepository creates a new credit request repository
func NewCreditRequestRepository(config *RepositoryConfig) repositories.CreditRequestRepository {
	return &PostgresCreditRequestRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new pending request and assigns its ID
func (r *PostgresCreditRequestRepository) Create(ctx context.Context, req *models.CreditRequest) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (account_id, requested_credits, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.CreditRequests)

	now := time.Now()
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		req.AccountID,
		req.RequestedCredits,
		req.Reason,
		req.Status,
		now,
		now,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("account %d: %w", req.AccountID, domain.ErrNotFound)
		}
		return fmt.Errorf("create credit request: %w", err)
	}

	return nil
}

// GetByID retrieves a request
func (r *PostgresCreditRequestRepository) GetByID(ctx context.Context, id int64) (*models.CreditRequest, error) {
	query := fmt.Sprintf(`
		SELECT id, account_id, requested_credits, reason, status, admin_response, processed_by, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.CreditRequests)

	var req models.CreditRequest
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.AccountID,
		&req.RequestedCredits,
		&req.Reason,
		&req.Status,
		&req.AdminResponse,
		&req.ProcessedBy,
		&req.CreatedAt,
		&req.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("credit request %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get credit request: %w", err)
	}

	return &req, nil
}

// ListPending returns pending requests, oldest first
func (r *PostgresCreditRequestRepository) ListPending(ctx context.Context) ([]models.CreditRequest, error) {
	query := fmt.Sprintf(`
		SELECT id, account_id, requested_credits, reason, status, admin_response, processed_by, created_at, updated_at
		FROM %s
		WHERE status = $1
		ORDER BY created_at
	`, r.tables.CreditRequests)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, models.RequestPending)
	if err != nil {
		return nil, fmt.Errorf("list pending credit requests: %w", err)
	}
	defer rows.Close()

	var reqs []models.CreditRequest
	for rows.Next() {
		var req models.CreditRequest
		if err := rows.Scan(
			&req.ID,
			&req.AccountID,
			&req.RequestedCredits,
			&req.Reason,
			&req.Status,
			&req.AdminResponse,
			&req.ProcessedBy,
			&req.CreatedAt,
			&req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan credit request row: %w", err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credit requests: %w", err)
	}

	return reqs, nil
}

// UpdateDecision records an admin decision on a request. Only pending
// requests can be decided; a second decision reports a conflict.
func (r *PostgresCreditRequestRepository) UpdateDecision(ctx context.Context, id int64, status models.RequestStatus, processedBy int64, adminResponse *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $2, processed_by = $3, admin_response = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`, r.tables.CreditRequests)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, status, processedBy, adminResponse, models.RequestPending)
	if err != nil {
		return fmt.Errorf("update credit request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("credit request %d has already been processed", id),
			ResourceType: "credit_request",
			ResourceID:   fmt.Sprintf("%d", id),
		}
	}

	return nil
}
