// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/internal/middleware"
)

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(flags flags, env environment, api *NotetakerAPI, gracefulCloseWG *sync.WaitGroup) *http.Server {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{env.CORSAllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(middleware.WebhookBodyCaptureMiddleware())

	router.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !api.Ready() {
			http.Error(w, "service not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Post("/webhooks/notetaker", api.handleVendorWebhook)

	router.Route("/api", func(r chi.Router) {
		r.Get("/events", api.handleEventStream)
		r.Get("/webhook-events", api.handleListWebhookEvents)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", api.handleInviteNotetaker)
			r.Get("/", api.handleListSessions)
			r.Get("/{notetakerID}", api.handleGetSession)
			r.Delete("/{notetakerID}", api.handleCancelNotetaker)
			r.Post("/{notetakerID}/leave", api.handleLeaveMeeting)
			r.Post("/{notetakerID}/sync", api.handleSyncSession)
		})

		r.Route("/transcripts", func(r chi.Router) {
			r.Get("/", api.handleListTranscripts)
			r.Get("/{notetakerID}", api.handleGetTranscript)
			r.Post("/{notetakerID}/process", api.handleProcessTranscript)
			r.Post("/{notetakerID}/tasks", api.handleCreateTasksFromTranscript)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", api.handleCreateTask)
			r.Get("/", api.handleListTasks)
			r.Get("/{taskUID}", api.handleGetTask)
			r.Patch("/{taskUID}", api.handleUpdateTask)
			r.Delete("/{taskUID}", api.handleDeleteTask)
		})

		r.Route("/insights", func(r chi.Router) {
			r.Post("/generate", api.handleGenerateInsights)
			r.Get("/", api.handleListInsights)
			r.Get("/{insightUID}", api.handleGetInsight)
			r.Post("/{insightUID}/solutions", api.handleBrainstormSolutions)
			r.Get("/{insightUID}/solutions", api.handleListSolutions)
		})
	})

	// Set up http listener in a goroutine using provided command line parameters.
	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// ErrServerClosed is returned as soon as Shutdown is called, not when
		// it completes, so the wait group is decremented in gracefulShutdown
		// instead of here.
	}()

	return httpServer
}
