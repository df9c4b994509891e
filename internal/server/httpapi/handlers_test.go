package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/progresspilot/internal/logging"
	"github.com/dmitrijs2005/progresspilot/internal/server/config"
	"github.com/dmitrijs2005/progresspilot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/progresspilot/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
	}
	m := repomanager.NewMemoryManager()

	return NewServer(
		"127.0.0.1:0",
		nopLogger{},
		services.NewUserService(m, cfg),
		services.NewProjectService(m),
		services.NewTaskService(m),
		cfg.SecretKey,
	)
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	_ = resp.Body.Close()
	return out
}

func registerAndLogin(t *testing.T, s *Server, email string) string {
	t.Helper()

	resp := doJSON(t, s, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email:    email,
		Password: "pw12345",
		Name:     "Test User",
		Country:  "LV",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	auth := decode[AuthResponse](t, resp)
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func TestPing(t *testing.T) {
	s := newTestServer(t)

	resp := doJSON(t, s, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterAndLoginFlow(t *testing.T) {
	s := newTestServer(t)

	resp := doJSON(t, s, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email: "flow@example.com", Password: "pw", Name: "Flow",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	auth := decode[AuthResponse](t, resp)
	assert.Equal(t, "flow@example.com", auth.User.Email)
	assert.NotEmpty(t, auth.Token)

	// duplicate registration conflicts
	resp = doJSON(t, s, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email: "flow@example.com", Password: "pw", Name: "Again",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// wrong password is unauthorized
	resp = doJSON(t, s, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email: "flow@example.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, s, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email: "flow@example.com", Password: "pw",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	auth = decode[AuthResponse](t, resp)
	assert.NotEmpty(t, auth.Token)
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "me@example.com")

	resp := doJSON(t, s, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	user := decode[UserResponse](t, resp)
	assert.Equal(t, "me@example.com", user.Email)
	assert.Equal(t, "Test User", user.Name)
}

func TestProjectEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "projects@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/projects", token, CreateProjectRequest{
		Name: "  Launch  ", Description: "first",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	project := decode[ProjectResponse](t, resp)
	assert.Equal(t, "Launch", project.Name)

	// blank name is a validation error
	resp = doJSON(t, s, http.MethodPost, "/api/projects", token, CreateProjectRequest{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// cap at four projects
	for i := 0; i < 3; i++ {
		resp = doJSON(t, s, http.MethodPost, "/api/projects", token, CreateProjectRequest{
			Name: fmt.Sprintf("P%d", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp = doJSON(t, s, http.MethodPost, "/api/projects", token, CreateProjectRequest{Name: "Fifth"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = doJSON(t, s, http.MethodGet, "/api/projects", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]ProjectResponse](t, resp)
	assert.Len(t, list, 4)
	assert.Equal(t, "Launch", list[0].Name)

	resp = doJSON(t, s, http.MethodPatch, "/api/projects/"+project.ID, token, UpdateProjectRequest{
		Name: strptr("Renamed"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed", decode[ProjectResponse](t, resp).Name)

	resp = doJSON(t, s, http.MethodDelete, "/api/projects/"+project.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, s, http.MethodGet, "/api/projects/"+project.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTaskEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := registerAndLogin(t, s, "tasks@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/projects", token, CreateProjectRequest{Name: "Board"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	project := decode[ProjectResponse](t, resp)

	resp = doJSON(t, s, http.MethodPost, "/api/projects/"+project.ID+"/tasks", token, CreateTaskRequest{
		Title: "Report bug", Description: "crash on save",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := decode[TaskResponse](t, resp)
	assert.Equal(t, "todo", task.Status)
	assert.Nil(t, task.CompletedAt)

	// task under a missing project
	resp = doJSON(t, s, http.MethodPost, "/api/projects/missing/tasks", token, CreateTaskRequest{Title: "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// completing sets the timestamp
	resp = doJSON(t, s, http.MethodPatch, "/api/tasks/"+task.ID, token, UpdateTaskRequest{
		Status: strptr("completed"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	completed := decode[TaskResponse](t, resp)
	assert.Equal(t, "completed", completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	// unknown status is a validation error
	resp = doJSON(t, s, http.MethodPatch, "/api/tasks/"+task.ID, token, UpdateTaskRequest{
		Status: strptr("cancelled"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// filter by status and search text
	resp = doJSON(t, s, http.MethodPost, "/api/projects/"+project.ID+"/tasks", token, CreateTaskRequest{
		Title: "Ship release",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, s, http.MethodGet, "/api/projects/"+project.ID+"/tasks?status=completed", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	filtered := decode[[]TaskResponse](t, resp)
	require.Len(t, filtered, 1)
	assert.Equal(t, task.ID, filtered[0].ID)

	resp = doJSON(t, s, http.MethodGet, "/api/projects/"+project.ID+"/tasks?status=all&q=report", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	filtered = decode[[]TaskResponse](t, resp)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Report bug", filtered[0].Title)

	// project view carries its tasks
	resp = doJSON(t, s, http.MethodGet, "/api/projects/"+project.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[ProjectResponse](t, resp).Tasks, 2)

	resp = doJSON(t, s, http.MethodDelete, "/api/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, s, http.MethodDelete, "/api/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func strptr(s string) *string { return &s }
