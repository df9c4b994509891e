// Package api is the HTTP client for the ProgressPilot server. It hides the
// wire details behind typed methods and translates HTTP error responses back
// into the shared sentinel errors, so callers can use errors.Is the same way
// they would against the services directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/progresspilot/internal/common"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken installs the session token sent as a Bearer credential on every
// subsequent request. An empty token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

func (c *Client) Register(ctx context.Context, email, password, name, country string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register", registerRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Country:  country,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var result User
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var result []Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateProject(ctx context.Context, name, description string) (*Project, error) {
	var result Project
	err := c.do(ctx, http.MethodPost, "/api/projects", createProjectRequest{
		Name:        name,
		Description: description,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var result Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, upd ProjectUpdate) (*Project, error) {
	var result Project
	if err := c.do(ctx, http.MethodPatch, "/api/projects/"+url.PathEscape(id), upd, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil)
}

// ListTasks returns the tasks of a project, optionally narrowed by status
// ("all" or empty disables the status filter) and a free-text search.
func (c *Client) ListTasks(ctx context.Context, projectID, status, search string) ([]Task, error) {
	path := "/api/projects/" + url.PathEscape(projectID) + "/tasks"

	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if search != "" {
		q.Set("q", search)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result []Task
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateTask(ctx context.Context, projectID, title, description string) (*Task, error) {
	var result Task
	err := c.do(ctx, http.MethodPost, "/api/projects/"+url.PathEscape(projectID)+"/tasks", createTaskRequest{
		Title:       title,
		Description: description,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	var result Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (*Task, error) {
	var result Task
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), upd, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

// do performs one request/response cycle: marshals body (if any), sets the
// Bearer header, and on a non-2xx status decodes the error envelope and maps
// it to a sentinel error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) mapError(resp *http.Response) error {
	var envelope errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	message := envelope.Message
	if message == "" {
		message = resp.Status
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrorValidation
	case http.StatusUnauthorized:
		sentinel = common.ErrorUnauthorized
	case http.StatusNotFound:
		sentinel = common.ErrorNotFound
	case http.StatusConflict:
		sentinel = common.ErrorConflict
	case http.StatusUnprocessableEntity:
		sentinel = common.ErrorLimitExceeded
	default:
		sentinel = common.ErrorInternal
	}

	return fmt.Errorf("%s: %w", message, sentinel)
}
