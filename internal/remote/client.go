// Package remote talks to the to-do/profile REST backend. Each operation
// issues exactly one HTTP call; nothing is retried, cached or deduplicated.
package remote

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

	"github.com/charmbracelet/log"

	"momentum/internal/model"
)

const maxErrorBody = 512

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *log.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("backend url is empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) FetchLists(ctx context.Context) ([]model.TodoList, error) {
	var lists []model.TodoList
	if err := c.do(ctx, http.MethodGet, []string{"todos"}, nil, &lists); err != nil {
		return nil, fmt.Errorf("fetch lists: %w", err)
	}
	if lists == nil {
		lists = []model.TodoList{}
	}
	for i := range lists {
		lists[i] = lists[i].Clone()
	}
	return lists, nil
}

func (c *Client) FetchProfile(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	if err := c.do(ctx, http.MethodGet, []string{"userprofile"}, nil, &p); err != nil {
		return model.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	return p.Normalize(), nil
}

// AddList posts the draft and returns the list as stored by the server,
// including its server-assigned id.
func (c *Client) AddList(ctx context.Context, draft model.TodoList) (model.TodoList, error) {
	body := struct {
		Title string   `json:"title"`
		Todos []string `json:"todos"`
	}{Title: draft.Title, Todos: draft.Clone().Todos}

	var created model.TodoList
	if err := c.do(ctx, http.MethodPost, []string{"todos"}, body, &created); err != nil {
		return model.TodoList{}, fmt.Errorf("add list: %w", err)
	}
	return created.Clone(), nil
}

func (c *Client) RemoveList(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("remove list: id is empty")
	}
	if err := c.do(ctx, http.MethodDelete, []string{"todos", id}, nil, nil); err != nil {
		return fmt.Errorf("remove list %s: %w", id, err)
	}
	return nil
}

func (c *Client) UpdateBackground(ctx context.Context, typ model.BackgroundType, value string) (model.Profile, error) {
	body := struct {
		Type  model.BackgroundType `json:"type"`
		Value string               `json:"value"`
	}{Type: typ, Value: value}
	return c.updateProfile(ctx, "background", body)
}

func (c *Client) UpdateCustomBackgroundColors(ctx context.Context, colors []string) (model.Profile, error) {
	if colors == nil {
		colors = []string{}
	}
	body := struct {
		CustomBackgroundColors []string `json:"customBackgroundColors"`
	}{CustomBackgroundColors: colors}
	return c.updateProfile(ctx, "custombackgroundcolors", body)
}

func (c *Client) UpdateUsername(ctx context.Context, username string) (model.Profile, error) {
	body := struct {
		Username string `json:"username"`
	}{Username: username}
	return c.updateProfile(ctx, "username", body)
}

func (c *Client) updateProfile(ctx context.Context, field string, body any) (model.Profile, error) {
	var p model.Profile
	if err := c.do(ctx, http.MethodPut, []string{"userprofile", field}, body, &p); err != nil {
		return model.Profile{}, fmt.Errorf("update %s: %w", field, err)
	}
	return p.Normalize(), nil
}

func (c *Client) do(ctx context.Context, method string, path []string, in, out any) error {
	endpoint := c.baseURL.JoinPath(path...)

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", endpoint.Path, "err", err)
		return err
	}
	defer resp.Body.Close()
	c.logger.Debug("request", "method", method, "path", endpoint.Path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       endpoint.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
