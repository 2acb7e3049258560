package memberapi

// Package memberapi is the HTTP client for the remote membership REST
// API. It delivers raw responses; interpretation belongs to the
// response classifier.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/domain/session"
	"github.com/Charlie119256/kramzfitnesshub-sub001/internal/ports"
)

// maxBodyBytes bounds how much of an upstream body is read. Dashboard
// payloads and diagnostic bodies are small; anything larger is
// truncated rather than buffered.
const maxBodyBytes = 1 << 20

// Config captures the subset of remote API behaviour the gateway needs.
type Config struct {
	BaseURL string
	// Timeout bounds every upstream call. The upstream contract imposes
	// none, so a hung request would otherwise pin a view in its checking
	// state forever.
	Timeout time.Duration
	Client  *http.Client

	// Role-scoped dashboard endpoints, relative to BaseURL.
	MemberPath string
	ClerkPath  string
	AdminPath  string
	LoginPath  string
}

// Client issues role-scoped data requests and login forwards against
// the membership API.
type Client struct {
	base   string
	client *http.Client
	paths  map[session.Role]string
	login  string
}

// NewClient builds a membership API client. Callers should pass a
// validated config.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("membership API base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		base:   base,
		client: hc,
		paths: map[session.Role]string{
			session.RoleMember: fallbackString(cfg.MemberPath, "/api/member/dashboard"),
			session.RoleClerk:  fallbackString(cfg.ClerkPath, "/api/clerk/dashboard"),
			session.RoleAdmin:  fallbackString(cfg.AdminPath, "/api/admin/dashboard"),
		},
		login: fallbackString(cfg.LoginPath, "/api/auth/login"),
	}, nil
}

// FetchRoleData issues the view's role-scoped GET carrying the token as
// a bearer credential. The response is returned untouched whatever its
// status; only transport failures (including the bounded timeout)
// return an error.
func (c *Client) FetchRoleData(ctx context.Context, in ports.FetchInput) (ports.APIResponse, error) {
	path, ok := c.paths[in.Role]
	if !ok {
		return ports.APIResponse{}, fmt.Errorf("no endpoint for role %q", in.Role)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return ports.APIResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+in.Token)
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// Login forwards sign-in credentials to the remote API. The gateway
// never issues or signs tokens itself.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (ports.APIResponse, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    in.Email,
		"password": in.Password,
	})
	if err != nil {
		return ports.APIResponse{}, fmt.Errorf("marshal login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+c.login, bytes.NewReader(payload))
	if err != nil {
		return ports.APIResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (ports.APIResponse, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return ports.APIResponse{}, fmt.Errorf("membership API request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ports.APIResponse{}, fmt.Errorf("read response body: %w", err)
	}

	return ports.APIResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

func fallbackString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Ensure compile-time conformance to the port.
var _ ports.MemberAPI = (*Client)(nil)
