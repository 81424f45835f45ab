package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"textscan/internal/httputil"
	"textscan/internal/service"
)

// CreditHandler handles credit balance and top-up request HTTP requests
type CreditHandler struct {
	service service.CreditService
	logger  *slog.Logger
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(service service.CreditService, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{
		service: service,
		logger:  logger,
	}
}

// GetBalance reports the account's current credit balance
// GET /api/credits/balance
func (h *CreditHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r)
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), accountID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"credits": balance})
}

// RequestCredits files a pending top-up request
// POST /api/credits/request
func (h *CreditHandler) RequestCredits(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r)
	if !ok {
		return
	}

	var input service.CreditRequestInput
	if err := httputil.ParseJSON(w, r, &input); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.service.RequestCredits(r.Context(), accountID, &input)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, req)
}

// ListPendingRequests returns all pending top-up requests; admin only
// GET /api/credits/requests
func (h *CreditHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r)
	if !ok {
		return
	}

	pending, err := h.service.ListPendingRequests(r.Context(), accountID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pending)
}

// Approve grants a pending request; admin only
// POST /api/credits/requests/{id}/approve
func (h *CreditHandler) Approve(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r)
	if !ok {
		return
	}

	requestID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	if err := h.service.Approve(r.Context(), accountID, requestID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

// denyInput is the admin's optional response attached to a denial.
type denyInput struct {
	Reason string `json:"reason"`
}

// Deny closes a pending request without granting credits; admin only
// POST /api/credits/requests/{id}/deny
func (h *CreditHandler) Deny(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r)
	if !ok {
		return
	}

	requestID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var input denyInput
	if r.ContentLength > 0 {
		if err := httputil.ParseJSON(w, r, &input); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := h.service.Deny(r.Context(), accountID, requestID, input.Reason); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "denied"})
}
