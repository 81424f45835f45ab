package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"textscan/internal/config"
	"textscan/internal/domain"
	"textscan/internal/domain/models"
	"textscan/internal/domain/repositories"
)

// CreditRequestInput is an actor's petition for additional credits.
type CreditRequestInput struct {
	RequestedCredits int    `json:"requested_credits"`
	Reason           string `json:"reason"`
}

// Validate checks the request fields.
func (r *CreditRequestInput) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RequestedCredits, validation.Required, validation.Min(1)),
		validation.Field(&r.Reason, validation.Length(0, config.MaxReasonLength)),
	)
}

// CreditService manages balances and top-up requests.
type CreditService interface {
	// GetBalance returns the account's current credit balance
	GetBalance(ctx context.Context, accountID int64) (int, error)

	// RequestCredits files a pending top-up request
	RequestCredits(ctx context.Context, accountID int64, input *CreditRequestInput) (*models.CreditRequest, error)

	// ListPendingRequests returns pending requests; admin only
	ListPendingRequests(ctx context.Context, adminID int64) ([]models.CreditRequest, error)

	// Approve grants the requested credits and closes the request; the two
	// writes happen in one transaction. Admin only.
	Approve(ctx context.Context, adminID, requestID int64) error

	// Deny closes the request with the admin's response. Admin only.
	Deny(ctx context.Context, adminID, requestID int64, reason string) error
}

// creditService implements the CreditService interface
type creditService struct {
	accounts  repositories.AccountRepository
	requests  repositories.CreditRequestRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewCreditService creates a new credit service
func NewCreditService(
	accounts repositories.AccountRepository,
	requests repositories.CreditRequestRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) CreditService {
	return &creditService{
		accounts:  accounts,
		requests:  requests,
		txManager: txManager,
		logger:    logger,
	}
}

func (s *creditService) GetBalance(ctx context.Context, accountID int64) (int, error) {
	return s.accounts.GetBalance(ctx, accountID)
}

func (s *creditService) RequestCredits(ctx context.Context, accountID int64, input *CreditRequestInput) (*models.CreditRequest, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	req := &models.CreditRequest{
		AccountID:        accountID,
		RequestedCredits: input.RequestedCredits,
		Reason:           input.Reason,
		Status:           models.RequestPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("credit request filed",
		"request_id", req.ID,
		"account_id", accountID,
		"requested_credits", input.RequestedCredits,
	)

	return req, nil
}

func (s *creditService) ListPendingRequests(ctx context.Context, adminID int64) ([]models.CreditRequest, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.requests.ListPending(ctx)
}

func (s *creditService) Approve(ctx context.Context, adminID, requestID int64) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != models.RequestPending {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("credit request %d has already been processed", requestID),
			ResourceType: "credit_request",
			ResourceID:   fmt.Sprintf("%d", requestID),
		}
	}

	// Closing the request and granting the credits are one logical change;
	// neither write may land without the other.
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.requests.UpdateDecision(txCtx, requestID, models.RequestApproved, adminID, nil); err != nil {
			return err
		}
		return s.accounts.AddCredits(txCtx, req.AccountID, req.RequestedCredits)
	})
	if err != nil {
		return err
	}

	s.logger.Info("credit request approved",
		"request_id", requestID,
		"account_id", req.AccountID,
		"granted_credits", req.RequestedCredits,
		"admin_id", adminID,
	)

	return nil
}

func (s *creditService) Deny(ctx context.Context, adminID, requestID int64, reason string) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if err := validation.Validate(reason, validation.Length(0, config.MaxReasonLength)); err != nil {
		return fmt.Errorf("%w: reason: %v", domain.ErrValidation, err)
	}

	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		return err
	}

	var response *string
	if reason != "" {
		response = &reason
	}
	if err := s.requests.UpdateDecision(ctx, requestID, models.RequestDenied, adminID, response); err != nil {
		return err
	}

	s.logger.Info("credit request denied",
		"request_id", requestID,
		"admin_id", adminID,
	)

	return nil
}

// requireAdmin verifies the acting account holds the admin role.
func (s *creditService) requireAdmin(ctx context.Context, adminID int64) error {
	account, err := s.accounts.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if !account.IsAdmin() {
		return &domain.ForbiddenError{Message: "administrator role required"}
	}
	return nil
}
