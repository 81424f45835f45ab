package service

import (
	"context"
	"fmt"

	"textscan/internal/domain/repositories"
)

// admissionState tracks one ingestion attempt through its lifecycle:
// pending -> admitted -> (committed | released).
type admissionState int

const (
	admissionPending admissionState = iota
	admissionAdmitted
	admissionCommitted
	admissionReleased
)

// admission controls the credit reservation for a single ingestion attempt.
// The reservation itself is an atomic guarded decrement in the account
// store, which serializes concurrent attempts on the account row; this type
// tracks the attempt's lifecycle and guards double commits and releases.
type admission struct {
	accounts  repositories.AccountRepository
	accountID int64
	state     admissionState
}

func newAdmission(accounts repositories.AccountRepository, accountID int64) *admission {
	return &admission{
		accounts:  accounts,
		accountID: accountID,
		state:     admissionPending,
	}
}

// tryAdmit reserves one credit. Returns false, without error, when the
// balance is exhausted; the pipeline must not proceed in that case.
func (a *admission) tryAdmit(ctx context.Context) (bool, error) {
	if a.state != admissionPending {
		return false, fmt.Errorf("admission for account %d already decided", a.accountID)
	}

	ok, err := a.accounts.Reserve(ctx, a.accountID)
	if err != nil {
		return false, fmt.Errorf("reserve credit: %w", err)
	}
	if ok {
		a.state = admissionAdmitted
	}
	return ok, nil
}

// commit finalizes the reservation and reports the post-decrement balance.
func (a *admission) commit(ctx context.Context) (int, error) {
	if a.state != admissionAdmitted {
		return 0, fmt.Errorf("commit without admission for account %d", a.accountID)
	}

	balance, err := a.accounts.GetBalance(ctx, a.accountID)
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}

	a.state = admissionCommitted
	return balance, nil
}

// release returns the reserved credit after a failed ingestion. Calling it
// when nothing was reserved, or after a commit, is a no-op.
func (a *admission) release(ctx context.Context) error {
	if a.state != admissionAdmitted {
		return nil
	}

	if err := a.accounts.Release(ctx, a.accountID); err != nil {
		return fmt.Errorf("release credit: %w", err)
	}

	a.state = admissionReleased
	return nil
}
