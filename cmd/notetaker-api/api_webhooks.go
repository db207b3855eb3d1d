// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/impactops/notetaker-service/internal/infrastructure/notetaker/webhook"
	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/internal/metrics"
	"github.com/impactops/notetaker-service/internal/middleware"
)

// vendorWebhookRequest is the vendor's webhook delivery envelope:
// {id, type, data: {object: {...}}}. The object inside data is the event
// payload the dispatch pipeline consumes.
type vendorWebhookRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object map[string]any `json:"object"`
	} `json:"data"`
}

// handleVendorWebhook receives a vendor webhook delivery. The signature is
// verified over the raw captured body bytes, so re-serialization differences
// cannot produce spurious rejections. After verification the response is
// always 200: processing failures are recorded on the stored event row, and
// a non-200 here would only trigger a vendor retry storm.
func (api *NotetakerAPI) handleVendorWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := middleware.GetRawBodyFromContext(ctx)
	if !ok {
		slog.ErrorContext(ctx, "webhook body was not captured")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "body not captured"})
		return
	}

	signature := r.Header.Get(webhook.SignatureHeader)
	if err := api.webhookValidator.ValidateSignature(body, signature); err != nil {
		slog.WarnContext(ctx, "webhook signature verification failed", logging.ErrKey, err)
		metrics.WebhookSignatureFailuresTotal.Inc()
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid signature"})
		return
	}

	var req vendorWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		slog.WarnContext(ctx, "error parsing webhook body", logging.ErrKey, err)
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	// Some vendor deliveries omit the delivery ID. A generated one keeps the
	// row unique at the cost of dedup for that delivery.
	if req.ID == "" {
		req.ID = uuid.New().String()
		slog.WarnContext(ctx, "webhook delivery has no delivery ID, generated one",
			"event_id", req.ID, "event_type", req.Type)
	}

	metrics.WebhookEventsTotal.WithLabelValues(req.Type).Inc()

	if err := api.webhookService.ReceiveEvent(ctx, req.ID, req.Type, req.Data.Object); err != nil {
		// Logged and recorded upstream; the vendor still gets a success.
		slog.ErrorContext(ctx, "error receiving webhook event", logging.ErrKey, err,
			"event_id", req.ID, "event_type", req.Type)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// handleListWebhookEvents lists the stored webhook event rows, the audit
// log of every vendor delivery.
func (api *NotetakerAPI) handleListWebhookEvents(w http.ResponseWriter, r *http.Request) {
	events, err := api.webhookService.ListEvents(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
