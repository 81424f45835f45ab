package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"textscan/internal/domain"
	"textscan/internal/domain/models"
	"textscan/internal/domain/repositories"
)

// PostgresAccountRepository implements the AccountRepository interface
type PostgresAccountRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(config *RepositoryConfig) repositories.AccountRepository {
	return &PostgresAccountRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByID retrieves an account by ID
func (r *PostgresAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, username, role, credits, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Accounts)

	var account models.Account
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Username,
		&account.Role,
		&account.Credits,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &account, nil
}

// GetBalance returns the account's current credit balance
func (r *PostgresAccountRepository) GetBalance(ctx context.Context, id int64) (int, error) {
	query := fmt.Sprintf(`SELECT credits FROM %s WHERE id = $1`, r.tables.Accounts)

	var credits int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&credits); err != nil {
		if IsPgNoRowsError(err) {
			return 0, fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return credits, nil
}

// Reserve atomically takes one credit if the balance is positive. The guard
// in the WHERE clause serializes concurrent reservations on the account row:
// a plain read-then-write here would lose updates.
func (r *PostgresAccountRepository) Reserve(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET credits = credits - 1, updated_at = NOW()
		WHERE id = $1 AND credits > 0
	`, r.tables.Accounts)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("reserve credit: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Release returns one previously reserved credit
func (r *PostgresAccountRepository) Release(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET credits = credits + 1, updated_at = NOW()
		WHERE id = $1
	`, r.tables.Accounts)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("release credit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AddCredits grants extra credits to an account
func (r *PostgresAccountRepository) AddCredits(ctx context.Context, id int64, amount int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET credits = credits + $2, updated_at = NOW()
		WHERE id = $1
	`, r.tables.Accounts)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("add credits: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ResetCredits sets every account's balance to amount, skipping the exempt
// role. Returns the number of accounts touched.
func (r *PostgresAccountRepository) ResetCredits(ctx context.Context, amount int, exempt models.Role) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET credits = $1, updated_at = NOW()
		WHERE role <> $2
	`, r.tables.Accounts)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, amount, exempt)
	if err != nil {
		return 0, fmt.Errorf("reset credits: %w", err)
	}

	return tag.RowsAffected(), nil
}
