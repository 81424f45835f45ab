package handler

import (
	"errors"
	"net/http"

	"textscan/internal/domain"
	"textscan/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var (
		conflictErr     *domain.ConflictError
		insufficientErr *domain.InsufficientCreditError
	)

	switch {
	case errors.As(err, &insufficientErr):
		httputil.RespondErrorWithExtras(w, http.StatusForbidden, insufficientErr.Error(), map[string]interface{}{
			"credits_required": true,
		})
	case errors.Is(err, domain.ErrInvalidEncoding):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	default:
		var httpErr domain.HTTPError
		if errors.As(err, &httpErr) {
			httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireAccount extracts the authenticated account id, rejecting requests
// that somehow bypassed the auth middleware.
func requireAccount(w http.ResponseWriter, r *http.Request) (int64, bool) {
	accountID, ok := httputil.GetAccountID(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return accountID, true
}
