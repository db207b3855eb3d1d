// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/handlers"
	"github.com/impactops/notetaker-service/internal/infrastructure/notetaker/webhook"
	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/internal/notifier"
	"github.com/impactops/notetaker-service/internal/service"
)

// NotetakerAPI implements the HTTP surface of the notetaker service.
type NotetakerAPI struct {
	webhookService    *service.WebhookService
	sessionService    *service.SessionService
	ingestionService  *service.IngestionService
	processingService *service.ProcessingService
	taskService       *service.TaskService
	insightService    *service.InsightService
	webhookHandler    *handlers.WebhookEventHandler
	webhookValidator  *webhook.Validator
	broadcaster       *notifier.Broadcaster
}

// NewNotetakerAPI creates the API with all of its service dependencies.
func NewNotetakerAPI(
	webhookService *service.WebhookService,
	sessionService *service.SessionService,
	ingestionService *service.IngestionService,
	processingService *service.ProcessingService,
	taskService *service.TaskService,
	insightService *service.InsightService,
	webhookHandler *handlers.WebhookEventHandler,
	webhookValidator *webhook.Validator,
	broadcaster *notifier.Broadcaster,
) *NotetakerAPI {
	return &NotetakerAPI{
		webhookService:    webhookService,
		sessionService:    sessionService,
		ingestionService:  ingestionService,
		processingService: processingService,
		taskService:       taskService,
		insightService:    insightService,
		webhookHandler:    webhookHandler,
		webhookValidator:  webhookValidator,
		broadcaster:       broadcaster,
	}
}

// Ready reports whether every service dependency is wired and usable. It
// backs the /readyz endpoint.
func (api *NotetakerAPI) Ready() bool {
	return api.webhookService.ServiceReady() &&
		api.sessionService.ServiceReady() &&
		api.ingestionService.ServiceReady() &&
		api.processingService.ServiceReady() &&
		api.taskService.ServiceReady() &&
		api.insightService.ServiceReady() &&
		api.webhookHandler.HandlerReady() &&
		api.broadcaster != nil
}

// httpStatusForError maps the domain error taxonomy onto HTTP status codes.
func httpStatusForError(err error) int {
	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		return http.StatusBadRequest
	case domain.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrorTypeNotFound:
		return http.StatusNotFound
	case domain.ErrorTypeConflict:
		return http.StatusConflict
	case domain.ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	case domain.ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.With(logging.ErrKey, err).Error("error encoding response body")
	}
}

// errorResponse is the JSON body for error responses.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError writes a domain error as a JSON error response.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, httpStatusForError(err), errorResponse{Error: err.Error()})
}

// decodeBody decodes a JSON request body into out.
func decodeBody(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return domain.NewValidationError("invalid request body", err)
	}
	return nil
}
