// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/pkg/constants"
)

// RequestIDMiddleware ensures every request carries a request ID. An
// inbound X-REQUEST-ID header is honored so callers can correlate across
// services; otherwise one is generated. The ID is stored in the request
// context, appended to the logging context, and echoed on the response.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := logging.AppendCtx(r.Context(), slog.String("request_id", requestID))
			ctx = context.WithValue(ctx, constants.RequestIDContextID, requestID)

			w.Header().Set(constants.RequestIDHeader, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestIDFromContext returns the request ID set by
// RequestIDMiddleware, or empty when none was set.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(constants.RequestIDContextID).(string); ok {
		return id
	}
	return ""
}
