// Package httpapi exposes the tracker services over an HTTP/JSON API.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/progresspilot/internal/logging"
	"github.com/dmitrijs2005/progresspilot/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	projects  *services.ProjectService
	tasks     *services.TaskService
	jwtSecret []byte
	app       *fiber.App
}

func NewServer(address string, l logging.Logger, us *services.UserService, ps *services.ProjectService, ts *services.TaskService, secretKey string) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		projects:  ps,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "progresspilot",
		DisableStartupMessage: true,
	})
	s.routes()

	return s
}

func (s *Server) routes() {
	s.app.Use(s.requestIDMiddleware)

	api := s.app.Group("/api")

	api.Get("/ping", s.Ping)
	api.Post("/auth/register", s.Register)
	api.Post("/auth/login", s.Login)

	protected := api.Group("", s.accessTokenMiddleware)
	protected.Get("/me", s.Me)
	protected.Get("/projects", s.ListProjects)
	protected.Post("/projects", s.CreateProject)
	protected.Get("/projects/:id", s.GetProject)
	protected.Patch("/projects/:id", s.UpdateProject)
	protected.Delete("/projects/:id", s.DeleteProject)
	protected.Get("/projects/:id/tasks", s.ListTasks)
	protected.Post("/projects/:id/tasks", s.CreateTask)
	protected.Get("/tasks/:id", s.GetTask)
	protected.Patch("/tasks/:id", s.UpdateTask)
	protected.Delete("/tasks/:id", s.DeleteTask)
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = s.app.ShutdownWithTimeout(shutdownTimeout)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}
