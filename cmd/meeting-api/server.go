// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mosharaf6/Disha/internal/logging"
	"github.com/mosharaf6/Disha/internal/middleware"
)

// newRouter builds the HTTP routes. The Zoom webhook route sits outside the
// bearer-token group because Zoom authenticates with an HMAC signature; its
// raw body is captured before decoding so the signature verifies the exact
// bytes sent.
func newRouter(svc *MeetingsAPI) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggerMiddleware())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/livez", svc.Livez)
	r.Get("/readyz", svc.Readyz)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.WebhookBodyCaptureMiddleware())
			r.Post("/webhooks/zoom", svc.ZoomWebhook)
		})

		r.Group(func(r chi.Router) {
			r.Use(svc.authorizationMiddleware())

			r.Route("/meetings", func(r chi.Router) {
				r.Post("/", svc.CreateMeeting)
				r.Get("/{uid}", svc.GetMeeting)
				r.Put("/{uid}/status", svc.UpdateMeetingStatus)
				r.Delete("/{uid}", svc.CancelMeeting)
				r.Get("/booking/{bookingId}", svc.GetMeetingForBooking)
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Post("/", svc.CreateBooking)
				r.Get("/", svc.ListBookings)
				r.Get("/{uid}", svc.GetBooking)
			})

			r.Route("/availability", func(r chi.Router) {
				r.Post("/", svc.CreateAvailabilitySlot)
				r.Delete("/{uid}", svc.DeleteAvailabilitySlot)
			})

			r.Get("/mentors/{id}/availability", svc.ListMentorAvailability)
		})
	})

	return otelhttp.NewHandler(r, "meeting-api")
}

// setupHTTPServer configures and starts the HTTP server.
func setupHTTPServer(flags flags, svc *MeetingsAPI, gracefulCloseWG *sync.WaitGroup) *http.Server {
	handler := newRouter(svc)

	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
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
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}
