package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/classquiz/internal/api/apierr"
	"github.com/mcoot/classquiz/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// The JSON error carries the request id logged with the stack trace.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewPanicError(middleware.RequestID(r.Context())))
}
