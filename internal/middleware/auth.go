package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"textscan/internal/auth"
	"textscan/internal/httputil"
)

// Auth validates the bearer token on every request and stores the account id
// in the request context. Requests without a valid token are rejected before
// reaching any handler.
func Auth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid subject claim")
				return
			}

			next.ServeHTTP(w, httputil.WithAccountID(r, accountID))
		})
	}
}
