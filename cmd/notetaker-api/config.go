// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/impactops/notetaker-service/internal/logging"
)

// flags are the command line flags for the notetaker service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the notetaker service.
type environment struct {
	Port    string `env:"PORT" env-default:"8080"`
	NatsURL string `env:"NATS_URL" env-default:"nats://localhost:4222"`

	// CORSAllowedOrigin is the dashboard origin allowed to call the API.
	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" env-default:"*"`

	Notetaker notetakerConfig
	LLM       llmConfig
}

// notetakerConfig holds the meeting-bot vendor configuration.
type notetakerConfig struct {
	APIKey        string `env:"NOTETAKER_API_KEY"`
	BaseURL       string `env:"NOTETAKER_BASE_URL"`
	WebhookSecret string `env:"NOTETAKER_WEBHOOK_SECRET"`
}

// llmConfig holds the chat-completion provider configuration.
type llmConfig struct {
	APIKey  string `env:"LLM_API_KEY"`
	BaseURL string `env:"LLM_BASE_URL"`
	Model   string `env:"LLM_MODEL"`
}

// parseFlags parses command line flags for the notetaker service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the notetaker service
func parseEnv() environment {
	var env environment
	if err := cleanenv.ReadEnv(&env); err != nil {
		slog.With(logging.ErrKey, err).Error("error reading environment variables")
		os.Exit(1)
	}

	if env.Notetaker.APIKey == "" {
		slog.Warn("NOTETAKER_API_KEY is not set, vendor API calls will be rejected")
	}
	if env.Notetaker.WebhookSecret == "" {
		slog.Warn("NOTETAKER_WEBHOOK_SECRET is not set, webhook signatures will not be verified")
	}
	if env.LLM.APIKey == "" {
		slog.Warn("LLM_API_KEY is not set, AI processing will be rejected")
	}

	return env
}
