// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/internal/metrics"
)

// heartbeatInterval keeps intermediaries from closing an idle stream.
const heartbeatInterval = 30 * time.Second

// streamFrame is one newline-delimited JSON frame on the event stream.
type streamFrame struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// handleEventStream serves the dashboard's long-lived push stream. Frames
// are newline-delimited JSON; the stream opens with a connected frame and
// carries a heartbeat every 30 seconds. The subscription is torn down when
// the client disconnects.
func (api *NotetakerAPI) handleEventStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sub := api.broadcaster.Subscribe()
	defer sub.Close()

	metrics.StreamSubscribers.Inc()
	defer metrics.StreamSubscribers.Dec()

	encoder := json.NewEncoder(w)
	writeFrame := func(frame streamFrame) bool {
		if err := encoder.Encode(frame); err != nil {
			slog.DebugContext(ctx, "error writing stream frame", logging.ErrKey, err)
			return false
		}
		flusher.Flush()
		return true
	}

	if !writeFrame(streamFrame{Type: "connected", Timestamp: time.Now().UTC()}) {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case notification, ok := <-sub.Events():
			if !ok {
				return
			}
			if !writeFrame(streamFrame{
				Type:      notification.Kind,
				Data:      notification.Data,
				Timestamp: notification.At,
			}) {
				return
			}
		case <-heartbeat.C:
			if !writeFrame(streamFrame{Type: "heartbeat", Timestamp: time.Now().UTC()}) {
				return
			}
		}
	}
}
