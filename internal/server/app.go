// Package server runs the mock election service: it builds the election
// from configuration, serves it over HTTP and shuts down gracefully on
// SIGINT, SIGTERM or SIGQUIT.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophvote/internal/logging"
	"github.com/dmitrijs2005/gophvote/internal/server/config"
	"github.com/dmitrijs2005/gophvote/internal/server/election"
	"github.com/dmitrijs2005/gophvote/internal/server/handlers"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

func NewApp(c *config.Config) *App {
	logger := logging.New(c.LogFormat, "info", os.Stdout)

	store := election.New(election.DemoCandidates(), election.ParseRoster(c.Roster))
	h := handlers.NewHandler(store, []byte(c.SecretKey), c.TokenValidity, logger)

	return &App{
		config: c,
		logger: logger,
		server: &http.Server{
			Addr:              c.Address,
			Handler:           handlers.NewRouter(h),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Serve runs the HTTP server on l until ctx is cancelled.
func (app *App) Serve(ctx context.Context, l net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		errc <- app.server.Serve(l)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	l, err := net.Listen("tcp", app.config.Address)
	if err != nil {
		return err
	}
	app.logger.Info(ctx, "Starting election service...", "address", l.Addr().String())

	var (
		wg     sync.WaitGroup
		runErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.Serve(ctx, l)
	}()
	wg.Wait()

	if runErr != nil {
		app.logger.Error(ctx, "server stopped", "error", runErr)
		return runErr
	}
	app.logger.Info(ctx, "Server stopped")
	return nil
}
