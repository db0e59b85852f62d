package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"rocketboost-admin/logging"
)

// TokenParser validates a bearer token
type TokenParser interface {
	ParseToken(token string) (*jwt.RegisteredClaims, error)
}

type claimsKey struct{}

// Auth requires a valid bearer token. A nil parser disables the check.
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	if parser == nil {
		logging.Sugar.Warn("⚠️ JWT_SECRET not set, /api routes are NOT authenticated")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if parser == nil || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeError(w, http.StatusUnauthorized, "authorization required")
				return
			}

			claims, err := parser.ParseToken(strings.TrimSpace(token))
			if err != nil {
				logging.Sugar.Debugf("❌ Auth: %v", err)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Claims returns the token claims of an authenticated request
func Claims(ctx context.Context) (*jwt.RegisteredClaims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*jwt.RegisteredClaims)
	return c, ok
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
