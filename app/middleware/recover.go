package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"rocketboost-admin/logging"
)

// Recoverer turns a handler panic into a 500 JSON response
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logging.Logger.Error("❌ panic recovered",
				zap.Any("panic", rec),
				zap.String("path", r.URL.Path),
				zap.String("request_id", GetRequestID(r.Context())),
				zap.ByteString("stack", debug.Stack()),
			)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
