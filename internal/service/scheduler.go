package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"textscan/internal/config"
	"textscan/internal/domain/models"
	"textscan/internal/domain/repositories"
)

// CreditResetJob periodically restores every non-exempt account to the
// policy's default balance. The handle is owned by the caller: main starts
// it after wiring and stops it on shutdown.
type CreditResetJob struct {
	cron     *cron.Cron
	accounts repositories.AccountRepository
	policy   *config.CreditPolicy
	logger   *slog.Logger
}

// NewCreditResetJob creates the job without scheduling anything.
func NewCreditResetJob(accounts repositories.AccountRepository, policy *config.CreditPolicy, logger *slog.Logger) *CreditResetJob {
	return &CreditResetJob{
		cron:     cron.New(),
		accounts: accounts,
		policy:   policy,
		logger:   logger,
	}
}

// Start schedules the reset per the policy's cron expression.
func (j *CreditResetJob) Start() error {
	if _, err := j.cron.AddFunc(j.policy.ResetSchedule, j.runReset); err != nil {
		return fmt.Errorf("schedule credit reset: %w", err)
	}
	j.cron.Start()

	j.logger.Info("credit reset scheduled",
		"schedule", j.policy.ResetSchedule,
		"default_credits", j.policy.DefaultCredits,
	)
	return nil
}

// Stop halts scheduling and waits for a running reset to finish.
func (j *CreditResetJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("credit reset stopped")
}

func (j *CreditResetJob) runReset() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	touched, err := j.accounts.ResetCredits(ctx, j.policy.DefaultCredits, models.Role(j.policy.ExemptRole))
	if err != nil {
		j.logger.Error("credit reset failed", "error", err)
		return
	}

	j.logger.Info("credit reset completed", "accounts", touched)
}
