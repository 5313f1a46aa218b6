// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unclebandit/customer-service/internal/config"
	"github.com/unclebandit/customer-service/internal/controller"
	"github.com/unclebandit/customer-service/internal/db"
	"github.com/unclebandit/customer-service/internal/handler"
	"github.com/unclebandit/customer-service/internal/logger"
	"github.com/unclebandit/customer-service/internal/model"
	"github.com/unclebandit/customer-service/internal/queue"
	"github.com/unclebandit/customer-service/internal/repository"
	"github.com/unclebandit/customer-service/internal/service"
)

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred cleanup happens before os.Exit.
func run() int {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.NewLogger("server", "info").Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.NewLogger("server", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Error().Err(err).Msg("database unavailable")
		return 1
	}
	defer conn.Close()

	if cfg.Storage.DB.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			log.Error().Err(err).Msg("failed to apply migrations")
			return 1
		}
		log.Info().Msg("migrations applied")
	}

	publisher, closePublisher := newPublisher(cfg.Queue, log)
	defer closePublisher()

	customerRepo := repository.NewCustomerRepository(conn)
	customerService := service.NewCustomerService(customerRepo, publisher, log)
	customerController := controller.NewCustomerController(customerService)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler.NewRouter(log, conn, customerController),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if err := serve(ctx, srv, cfg.Server.ShutdownTimeout, log); err != nil {
		log.Error().Err(err).Msg("server failed")
		return 1
	}
	return 0
}

// serve runs srv until ctx is done or the listener fails, then shuts it down.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log *logger.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newPublisher prefers the broker. Without one, change notifications go to an
// in-process queue whose only subscriber writes them to the log.
func newPublisher(cfg config.Queue, log *logger.Logger) (queue.Publisher, func()) {
	if cfg.AMQPURL != "" {
		p, err := queue.NewAMQPPublisher(cfg.AMQPURL)
		if err == nil {
			log.Info().Msg("publishing customer events to broker")
			return p, func() {
				if err := p.Close(); err != nil {
					log.Warn().Err(err).Msg("failed to close broker connection")
				}
			}
		}
		log.Warn().Err(err).Msg("broker unavailable, customer events stay in process")
	}

	q := queue.NewInMemoryQueue(log)
	_ = q.Subscribe(service.CustomerEventsTopic, func(payload any) error {
		if ev, ok := payload.(model.CustomerEvent); ok {
			log.Info().Str("event", ev.Type).Str("id", ev.ID).Msg("customer changed")
		}
		return nil
	})
	return q, func() {}
}
