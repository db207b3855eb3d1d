// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notetaker_webhook_events_total",
			Help: "Total number of webhook deliveries received, by event type",
		},
		[]string{"event_type"},
	)

	WebhookSignatureFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notetaker_webhook_signature_failures_total",
			Help: "Total number of webhook deliveries rejected for a bad signature",
		},
	)

	WebhookDispatchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notetaker_webhook_dispatch_failures_total",
			Help: "Total number of webhook events whose handler failed, by subject",
		},
		[]string{"subject"},
	)

	MediaIngestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notetaker_media_ingestions_total",
			Help: "Total number of media artifacts ingested, by media type and outcome",
		},
		[]string{"media_type", "outcome"},
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notetaker_completion_requests_total",
			Help: "Total number of LLM completion attempts, by outcome",
		},
		[]string{"outcome"},
	)

	CompletionRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notetaker_completion_request_duration_seconds",
			Help:    "Duration of LLM completion requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notetaker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests, by route and status code",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)

	StreamSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "notetaker_stream_subscribers",
			Help: "Number of currently connected notification stream clients",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(WebhookEventsTotal)
	prometheus.MustRegister(WebhookSignatureFailuresTotal)
	prometheus.MustRegister(WebhookDispatchFailuresTotal)
	prometheus.MustRegister(MediaIngestionsTotal)
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionRequestDuration)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(StreamSubscribers)
}
