package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textscan/internal/config"
	"textscan/internal/domain/models"
)

func TestCreditResetRestoresNonExemptAccounts(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := newFakeAccounts(
		&models.Account{ID: 1, Role: models.RoleUser, Credits: 0},
		&models.Account{ID: 2, Role: models.RoleUser, Credits: 37},
		&models.Account{ID: 3, Role: models.RoleAdmin, Credits: 5},
	)
	policy := &config.CreditPolicy{
		DefaultCredits: 20,
		ResetSchedule:  "0 0 * * *",
		ExemptRole:     "admin",
	}

	job := NewCreditResetJob(accounts, policy, logger)
	job.runReset()

	balance, _ := accounts.GetBalance(context.Background(), 1)
	assert.Equal(t, 20, balance)
	balance, _ = accounts.GetBalance(context.Background(), 2)
	assert.Equal(t, 20, balance)

	// Admins keep whatever they have.
	balance, _ = accounts.GetBalance(context.Background(), 3)
	assert.Equal(t, 5, balance)
}

func TestCreditResetJobStartValidatesSchedule(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := newFakeAccounts()
	policy := &config.CreditPolicy{
		DefaultCredits: 20,
		ResetSchedule:  "not a cron expression",
		ExemptRole:     "admin",
	}

	job := NewCreditResetJob(accounts, policy, logger)
	assert.Error(t, job.Start())
}

func TestCreditResetJobStartAndStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := newFakeAccounts()
	policy, err := config.LoadCreditPolicy()
	require.NoError(t, err)

	job := NewCreditResetJob(accounts, policy, logger)
	require.NoError(t, job.Start())
	job.Stop()
}
