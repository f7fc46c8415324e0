// Package backend talks to the model analysis service over JSON/HTTP.
package backend

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

	"github.com/google/uuid"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/ports"
)

const (
	pathLogin     = "/api/auth/login"
	pathLogout    = "/api/auth/logout"
	pathHistory   = "/api/history/"
	pathAnalyze   = "/analyze"
	pathAuto      = "/auto"
	pathOptimize  = "/api/optimize"
	pathDashboard = "/api/dashboard-data"
	pathHealth    = "/health"

	// maxErrorBody bounds how much of a failed response is read for its {error} text.
	maxErrorBody = 64 << 10
)

// Client implements every backend-facing port.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    ports.MetricsRecorder
	logger     ports.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithMetrics records one sample per request.
func WithMetrics(m ports.MetricsRecorder) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// WithLogger routes request logging.
func WithLogger(l ports.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// NewClient builds a client for settings.BaseURL.
func NewClient(settings domain.BackendSettings, opts ...Option) *Client {
	base := strings.TrimRight(settings.BaseURL, "/")
	if base == "" {
		base = domain.DefaultBaseURL
	}
	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: settings.Timeout()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges a username for a session.
func (c *Client) Login(ctx context.Context, username string) (domain.LoginResult, error) {
	var resp loginResponse
	if err := c.do(ctx, "login", http.MethodPost, pathLogin, "", loginRequest{Username: username}, &resp); err != nil {
		return domain.LoginResult{}, err
	}
	return resp.toDomain()
}

// Logout tells the backend to drop the session. The response body is ignored.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "logout", http.MethodPost, pathLogout, "", logoutRequest{SessionID: token}, nil)
}

// History fetches the user's past interactions.
func (c *Client) History(ctx context.Context, session domain.Session) ([]domain.HistoryEntry, error) {
	var resp historyResponse
	path := pathHistory + url.PathEscape(session.UserID)
	if err := c.do(ctx, "history", http.MethodGet, path, session.Token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Chats, nil
}

// Analyze posts the prompt to /auto or /analyze depending on the mode.
func (c *Client) Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	path := pathAnalyze
	if req.Mode == domain.ModeAuto {
		path = pathAuto
	}
	var resp analysisResponse
	body := analyzeRequest{Prompt: req.PromptText, UserID: req.UserID}
	if err := c.do(ctx, "analyze", http.MethodPost, path, "", body, &resp); err != nil {
		return domain.AnalysisResult{}, err
	}
	return resp.toDomain(req.Mode)
}

// Optimize requests a model-switch recommendation.
func (c *Client) Optimize(ctx context.Context, userID string) (domain.OptimizationRecommendation, error) {
	var resp optimizeResponse
	if err := c.do(ctx, "optimize", http.MethodPost, pathOptimize, "", optimizeRequest{UserID: userID}, &resp); err != nil {
		return domain.OptimizationRecommendation{}, err
	}
	return resp.toDomain()
}

// DashboardData fetches the aggregate snapshot.
func (c *Client) DashboardData(ctx context.Context) (domain.DashboardSnapshot, error) {
	var snap domain.DashboardSnapshot
	if err := c.do(ctx, "dashboard", http.MethodGet, pathDashboard, "", nil, &snap); err != nil {
		return domain.DashboardSnapshot{}, err
	}
	return snap, nil
}

// Health returns nil when the backend answers /health with 2xx.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, pathHealth, "", nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path, bearer string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(ctx, op, 0, start)
		c.debug("backend request failed", op, requestID, 0, err)
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.record(ctx, op, resp.StatusCode, start)
	c.debug("backend request", op, requestID, resp.StatusCode, nil)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.BackendError{Op: op, Status: resp.StatusCode, Message: errorText(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) record(ctx context.Context, op string, status int, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordRequest(ctx, op, status, time.Since(start))
}

func (c *Client) debug(msg, op, requestID string, status int, err error) {
	if c.logger == nil {
		return
	}
	fields := map[string]interface{}{"op": op, "request_id": requestID}
	if status != 0 {
		fields["status"] = status
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	c.logger.Debug(msg, fields)
}

// errorText pulls "error" out of a JSON body; anything else yields "".
func errorText(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}

var (
	_ ports.AuthClient      = (*Client)(nil)
	_ ports.AnalysisClient  = (*Client)(nil)
	_ ports.HistoryClient   = (*Client)(nil)
	_ ports.OptimizerClient = (*Client)(nil)
	_ ports.DashboardClient = (*Client)(nil)
	_ ports.HealthChecker   = (*Client)(nil)
)
