package repositories

import (
	"context"

	"textscan/internal/domain/models"
)

// AccountRepository stores credit-bearing accounts. Reserve and Release must
// be safe under concurrent invocation for the same account: two concurrent
// reservations against a balance of one yield exactly one success.
type AccountRepository interface {
	// GetByID retrieves an account
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// GetBalance returns the account's current credit balance
	GetBalance(ctx context.Context, id int64) (int, error)

	// Reserve atomically takes one credit if the balance is positive.
	// Returns false, without error, when the balance is exhausted.
	Reserve(ctx context.Context, id int64) (bool, error)

	// Release returns one previously reserved credit
	Release(ctx context.Context, id int64) error

	// AddCredits grants extra credits to an account
	AddCredits(ctx context.Context, id int64, amount int) error

	// ResetCredits sets every account's balance to amount, skipping the
	// exempt role. Returns the number of accounts touched.
	ResetCredits(ctx context.Context, amount int, exempt models.Role) (int64, error)
}
