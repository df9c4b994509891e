package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/progresspilot/internal/common"
	"github.com/dmitrijs2005/progresspilot/internal/server/models"
	"github.com/dmitrijs2005/progresspilot/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK"})
}

func (s *Server) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx := c.UserContext()

	user, err := s.users.Register(ctx, req.Email, req.Password, req.Name, req.Country)
	if err != nil {
		return s.writeError(c, err)
	}

	_, token, err := s.users.Login(ctx, user.Email, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	s.logger.Info(ctx, "Registered", "email", user.Email)
	return c.Status(fiber.StatusCreated).JSON(AuthResponse{Token: token, User: toUserResponse(user)})
}

func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, token, err := s.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(AuthResponse{Token: token, User: toUserResponse(user)})
}

// Me returns the account behind the presented token.
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.users.GetByID(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(toUserResponse(user))
}

func (s *Server) ListProjects(c *fiber.Ctx) error {
	projects, err := s.projects.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(toProjectResponses(projects))
}

func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	project, err := s.projects.Create(c.UserContext(), currentUserID(c), req.Name, req.Description)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toProjectResponse(project))
}

func (s *Server) GetProject(c *fiber.Ctx) error {
	project, err := s.projects.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(toProjectResponse(project))
}

func (s *Server) UpdateProject(c *fiber.Ctx) error {
	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	project, err := s.projects.Update(c.UserContext(), c.Params("id"), services.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(toProjectResponse(project))
}

func (s *Server) DeleteProject(c *fiber.Ctx) error {
	if err := s.projects.Delete(c.UserContext(), c.Params("id")); err != nil {
		return s.writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) ListTasks(c *fiber.Ctx) error {
	tasks, err := s.tasks.List(c.UserContext(), c.Params("id"), c.Query("status"), c.Query("q"))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(toTaskResponses(tasks))
}

func (s *Server) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	task, err := s.tasks.Create(c.UserContext(), c.Params("id"), req.Title, req.Description)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(task))
}

func (s *Server) GetTask(c *fiber.Ctx) error {
	task, err := s.tasks.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(toTaskResponse(task))
}

func (s *Server) UpdateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	upd := services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		upd.Status = &status
	}

	task, err := s.tasks.Update(c.UserContext(), c.Params("id"), upd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(toTaskResponse(task))
}

func (s *Server) DeleteTask(c *fiber.Ctx) error {
	if err := s.tasks.Delete(c.UserContext(), c.Params("id")); err != nil {
		return s.writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "bad_request", Message: message})
}

// writeError translates domain errors into HTTP responses. Anything
// unrecognized is logged and reported as a 500 without leaking internals.
func (s *Server) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "validation_error", Message: "required field is missing or invalid"})
	case errors.Is(err, common.ErrorUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "unauthorized", Message: "invalid credentials"})
	case errors.Is(err, common.ErrorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "not_found", Message: "resource does not exist"})
	case errors.Is(err, common.ErrorConflict):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: "already_exists", Message: "user already exists"})
	case errors.Is(err, common.ErrorLimitExceeded):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: "limit_exceeded", Message: "you can only have up to 4 projects"})
	default:
		s.logger.Error(c.UserContext(), err.Error(), "request_id", requestID(c))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal_error", Message: "internal error"})
	}
}
