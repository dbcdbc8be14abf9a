// Package server initializes and runs the usernotes server.
// It opens the database, applies migrations, wires services and the
// rate governor, and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ipeonte/usernotes/internal/logging"
	"github.com/ipeonte/usernotes/internal/server/config"
	"github.com/ipeonte/usernotes/internal/server/httpapi"
	"github.com/ipeonte/usernotes/internal/server/notes"
	"github.com/ipeonte/usernotes/internal/server/ratelimit"
	"github.com/ipeonte/usernotes/internal/server/repositories/repomanager"
	"github.com/ipeonte/usernotes/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	noteService *notes.Service
	governor    *ratelimit.Governor
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := repomanager.OpenDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	us := users.NewService(db, rm, c, logger)
	ns := notes.NewService(db, rm, logger)

	g := ratelimit.New(map[string]ratelimit.Config{
		"api":   {Window: c.APIRateWindow, Limit: c.APIRateLimit},
		"login": {Window: c.LoginRateWindow, Limit: c.LoginRateLimit},
	})

	return &App{config: c, logger: logger, userService: us, noteService: ns, governor: g}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.noteService, app.governor, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
