// Package middleware contains HTTP middleware for the controller.
package middleware

import (
	"net/http"

	"launchplane/internal/logger"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID in requests and responses.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a request ID to the context and echoes it in the
// response. A client-supplied X-Request-ID is kept; otherwise a UUID is
// generated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}
