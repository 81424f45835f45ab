package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	accountIDKey contextKey = "accountID"
)

// WithAccountID adds the authenticated account id to the request context
func WithAccountID(r *http.Request, accountID int64) *http.Request {
	ctx := context.WithValue(r.Context(), accountIDKey, accountID)
	return r.WithContext(ctx)
}

// GetAccountID retrieves the account id from context. The second return is
// false when the request never passed authentication.
func GetAccountID(r *http.Request) (int64, bool) {
	accountID, ok := r.Context().Value(accountIDKey).(int64)
	return accountID, ok
}
