// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the meeting service API that provides a RESTful API for the
// mentorship session lifecycle and reconciles provider webhook events over NATS.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mosharaf6/Disha/cmd/meeting-api/platforms"
	"github.com/mosharaf6/Disha/internal/handlers"
	"github.com/mosharaf6/Disha/internal/infrastructure/messaging"
	"github.com/mosharaf6/Disha/internal/infrastructure/platform"
	"github.com/mosharaf6/Disha/internal/logging"
	"github.com/mosharaf6/Disha/internal/service"
	"github.com/mosharaf6/Disha/pkg/utils"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	// Set up JWT validator for the bearer-token routes.
	jwtAuth, err := setupJWTAuth()
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up JWT authentication")
		os.Exit(1)
	}

	// Initialize platform providers.
	platformRegistry := platform.NewRegistry()
	webhookValidator := platforms.SetupZoom(platformRegistry, platforms.NewZoomConfigFromEnv())

	// Setup graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Tracing is a no-op unless enabled via OTEL_* environment variables.
	otelShutdown, err := utils.SetupOTelSDK(ctx)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up OpenTelemetry")
		return
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.With(logging.ErrKey, err).Error("error shutting down OpenTelemetry")
		}
	}()

	// Setup NATS connection.
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

	// Initialize services.
	serviceConfig := service.ServiceConfig{}
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	meetingService := service.NewMeetingService(
		repos.Meeting,
		repos.Booking,
		repos.Participant,
		repos.Notification,
		repos.Availability,
		messageBuilder,
		platformRegistry,
		serviceConfig,
	)
	bookingService := service.NewBookingService(
		repos.Booking,
		repos.Availability,
		serviceConfig,
	)
	availabilityService := service.NewAvailabilityService(
		repos.Availability,
		serviceConfig,
	)
	webhookService := service.NewZoomWebhookService(
		messageBuilder,
		webhookValidator,
	)

	// Initialize the webhook reconciler consuming the NATS subjects.
	zoomWebhookHandler := handlers.NewZoomWebhookHandler(meetingService)

	svc := NewMeetingsAPI(
		jwtAuth,
		meetingService,
		bookingService,
		availabilityService,
		webhookService,
	)

	httpServer := setupHTTPServer(flags, svc, &gracefulCloseWG)

	// Create NATS subscriptions for the service.
	err = createNatsSubscriptions(ctx, zoomWebhookHandler, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, &gracefulCloseWG, cancel)
}
