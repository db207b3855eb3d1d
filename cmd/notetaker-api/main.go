// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package main is the notetaker service API that receives meeting-bot vendor
// webhooks, serves the dashboard REST API, and handles NATS messages for the
// notetaker service.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/impactops/notetaker-service/internal/handlers"
	"github.com/impactops/notetaker-service/internal/infrastructure/llm"
	"github.com/impactops/notetaker-service/internal/infrastructure/messaging"
	"github.com/impactops/notetaker-service/internal/infrastructure/notetaker"
	"github.com/impactops/notetaker-service/internal/infrastructure/notetaker/webhook"
	"github.com/impactops/notetaker-service/internal/logging"
	"github.com/impactops/notetaker-service/internal/metrics"
	"github.com/impactops/notetaker-service/internal/notifier"
	"github.com/impactops/notetaker-service/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()
	metrics.Register()

	// Initialize the vendor and LLM clients.
	notetakerClient := notetaker.NewClient(notetaker.Config{
		APIKey:  env.Notetaker.APIKey,
		BaseURL: env.Notetaker.BaseURL,
	})
	webhookValidator := webhook.NewValidator(env.Notetaker.WebhookSecret)
	llmClient := llm.NewClient(llm.Config{
		APIKey:  env.LLM.APIKey,
		BaseURL: env.LLM.BaseURL,
		Model:   env.LLM.Model,
	})

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Setup NATS connection
	natsConn, err := setupNATS(ctx, env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	// Initialize services
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	broadcaster := notifier.NewBroadcaster()
	webhookService := service.NewWebhookService(repos.WebhookEvent, messageBuilder)
	sessionService := service.NewSessionService(
		repos.Session,
		repos.Transcript,
		notetakerClient,
		broadcaster,
	)
	ingestionService := service.NewIngestionService(
		repos.Session,
		repos.Transcript,
		notetakerClient,
		broadcaster,
	)
	aiService := service.NewAIService(llmClient)
	processingService := service.NewProcessingService(
		repos.Transcript,
		aiService,
		broadcaster,
	)
	taskService := service.NewTaskService(
		repos.Task,
		repos.Transcript,
		broadcaster,
	)
	insightService := service.NewInsightService(
		repos.Transcript,
		repos.Insight,
		aiService,
		broadcaster,
	)

	// Initialize handlers
	webhookHandler := handlers.NewWebhookEventHandler(
		webhookService,
		sessionService,
		ingestionService,
	)

	api := NewNotetakerAPI(
		webhookService,
		sessionService,
		ingestionService,
		processingService,
		taskService,
		insightService,
		webhookHandler,
		webhookValidator,
		broadcaster,
	)

	httpServer := setupHTTPServer(flags, env, api, &gracefulCloseWG)

	// Create NATS subscriptions for the service.
	err = createNatsSubcriptions(ctx, webhookHandler, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, &gracefulCloseWG, cancel)
}

// gracefulShutdown drains in-flight HTTP requests and NATS messages before
// the process exits.
func gracefulShutdown(httpServer *http.Server, natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down notetaker service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}
	// The http listener goroutine holds one wait group slot; Shutdown has
	// completed, so release it here.
	gracefulCloseWG.Done()

	// Cancel the service context before draining so the NATS closed handler
	// treats the close as expected.
	cancel()

	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		}
	}

	gracefulCloseWG.Wait()
	slog.Info("notetaker service stopped")
}
