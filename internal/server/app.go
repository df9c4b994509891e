// Package server initializes and runs the ProgressPilot server: it picks the
// storage backend, wires the services, and starts the HTTP API with graceful
// shutdown on OS signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/progresspilot/internal/common"
	"github.com/dmitrijs2005/progresspilot/internal/logging"
	"github.com/dmitrijs2005/progresspilot/internal/server/config"
	"github.com/dmitrijs2005/progresspilot/internal/server/httpapi"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/progresspilot/internal/server/services"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "password123"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	repomanager    repomanager.RepositoryManager
	userService    *services.UserService
	projectService *services.ProjectService
	taskService    *services.TaskService
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var m repomanager.RepositoryManager
	if cfg.DatabaseDSN == "" {
		m = repomanager.NewMemoryManager()
	} else {
		pm, err := repomanager.NewPostgresManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		m = pm
	}

	return &App{
		config:         cfg,
		logger:         logger,
		repomanager:    m,
		userService:    services.NewUserService(m, cfg),
		projectService: services.NewProjectService(m),
		taskService:    services.NewTaskService(m),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// seedDemoUser creates the demo account so a fresh in-memory server is usable
// without registering first. An already existing account is not an error.
func (app *App) seedDemoUser(ctx context.Context) {
	_, err := app.userService.Register(ctx, demoEmail, demoPassword, "Demo User", "USA")
	if err != nil && !errors.Is(err, common.ErrorConflict) {
		app.logger.Warn(ctx, "demo user seeding failed", "error", err.Error())
		return
	}
	app.logger.Info(ctx, "Demo user available", "email", demoEmail)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(
		app.config.EndpointAddr,
		app.logger,
		app.userService,
		app.projectService,
		app.taskService,
		app.config.SecretKey,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if app.config.SeedDemoUser {
		app.seedDemoUser(ctx)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if closer, ok := app.repomanager.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}
}
