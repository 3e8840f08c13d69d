package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/fx-bank-teller/src/internal/adapter/http/middleware"
	"github.com/api-sage/fx-bank-teller/src/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	logger.Info("http request", logger.Fields{
		"method":    r.Method,
		"path":      requestPath(r),
		"requestId": middleware.RequestIDFromContext(r.Context()),
		"payload":   logger.SanitizePayload(payload),
	})
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"path":       requestPath(r),
		"requestId":  middleware.RequestIDFromContext(r.Context()),
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
		"response":   logger.SanitizePayload(payload),
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method":    r.Method,
		"path":      requestPath(r),
		"requestId": middleware.RequestIDFromContext(r.Context()),
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}

type pathTemplateKey struct{}

// withPathTemplate makes the request log as template instead of its real path, for
// routes whose path carries a credential.
func withPathTemplate(r *http.Request, template string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), pathTemplateKey{}, template))
}

func requestPath(r *http.Request) string {
	if template, ok := r.Context().Value(pathTemplateKey{}).(string); ok {
		return template
	}
	return r.URL.Path
}
