// Command server runs the mentorpath API: career paths, mentor booking with
// TDS payments, session chat and resume checks.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"mentorpath/internal/bootstrap"
	httptransport "mentorpath/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("mentorpath: %v", err)
	}
}

func run() error {
	// Cancelling ctx also stops the balance poller and the session refresher.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("release mentorpath resources failed: %v", err)
		}
	}()

	cfg := app.Config
	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           httptransport.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("mentorpath api listening on %s (env=%s ledger=%s meeting_link=%s shared_payments=%t)",
			server.Addr, cfg.App.Env, cfg.Ledger.Backend, cfg.Ledger.MeetingLink, cfg.PaymentsConfigured())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Printf("mentorpath api shutting down, draining requests for up to %s", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
