package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mahim2022/websiteAuditTool/internal/platform/requestid"
)

// RequestID attaches a correlation ID to every request. An X-Request-ID
// header supplied by the caller is honored, otherwise a fresh UUID v4 is
// minted. The ID is echoed back on the response so clients can tie a report
// to the server-side log lines that produced it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := requestid.NewContext(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
