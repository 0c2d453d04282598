package restapi

import (
	"log/slog"
	"net/http"

	"viewer.bysykkel.dev/internal/metrics"
)

// WithMiddleware wraps h in the standard middleware chain with the request id
// outermost.
func WithMiddleware(h http.Handler, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	h = MetricsHandler(m)(h)
	h = NewRequestLoggingMiddleware(logger)(h)
	return RequestIDMiddleware(h)
}
