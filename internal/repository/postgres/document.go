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

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new document and assigns its ID
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (account_id, filename, locator, file_size, content_hash, processing_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	now := time.Now()
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.AccountID,
		doc.Filename,
		doc.Locator,
		doc.FileSize,
		doc.ContentHash,
		doc.Status,
		now,
		now,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("account %d: %w", doc.AccountID, domain.ErrNotFound)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document scoped to its owning account
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id, accountID int64) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, account_id, filename, locator, file_size, content_hash, processing_status, created_at, updated_at
		FROM %s
		WHERE id = $1 AND account_id = $2
	`, r.tables.Documents)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, accountID).Scan(
		&doc.ID,
		&doc.AccountID,
		&doc.Filename,
		&doc.Locator,
		&doc.FileSize,
		&doc.ContentHash,
		&doc.Status,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// ListProcessed returns the account's processed documents in creation order
func (r *PostgresDocumentRepository) ListProcessed(ctx context.Context, accountID int64) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, account_id, filename, locator, file_size, content_hash, processing_status, created_at, updated_at
		FROM %s
		WHERE account_id = $1 AND processing_status = $2
		ORDER BY created_at, id
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, accountID, models.StatusProcessed)
	if err != nil {
		return nil, fmt.Errorf("list processed documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.AccountID,
			&doc.Filename,
			&doc.Locator,
			&doc.FileSize,
			&doc.ContentHash,
			&doc.Status,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// UpdateStatus transitions a document's processing status
func (r *PostgresDocumentRepository) UpdateStatus(ctx context.Context, id int64, status models.ProcessingStatus) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET processing_status = $2, updated_at = NOW()
		WHERE id = $1
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
