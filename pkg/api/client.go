// Package api is the typed request/response boundary to the HealthAI
// backend. Every operation attaches the current credential, performs a
// single request with no retries, and normalizes failures into *Error.
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

	"github.com/google/uuid"
)

// Client issues authenticated requests against the backend REST API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a Client rooted at baseURL (the API root, without a
// trailing slash). Bearer tokens are read from tokens per request.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// do performs one request. If authed is true the current bearer token is
// attached; a missing token short-circuits with Unauthorized before any
// network traffic. The response body is decoded into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, authed bool) error {
	var token string
	if authed {
		token = c.tokens.Token()
		if token == "" {
			return &Error{Kind: Unauthorized, Detail: "no credential"}
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: Transport, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &Error{Kind: Transport, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: Transport, Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: Transport, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		json.Unmarshal(respBody, &eb)
		return fromStatus(resp.StatusCode, eb.Detail)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Kind: Transport, Err: fmt.Errorf("parse response: %w", err)}
		}
	}
	return nil
}

// Login exchanges credentials for a token and profile. A rejection from
// the backend surfaces as Unauthorized.
func (c *Client) Login(ctx context.Context, email, password string) (*Credential, error) {
	var cred Credential
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &cred, false); err != nil {
		return nil, err
	}
	return &cred, nil
}

// Register creates an account and returns its first credential.
func (c *Client) Register(ctx context.Context, email, password, name string) (*Credential, error) {
	var cred Credential
	body := map[string]string{"email": email, "password": password, "name": name}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &cred, false); err != nil {
		return nil, err
	}
	return &cred, nil
}

// SendChatMessage submits one user message within a session and returns
// the completed exchange.
func (c *Client) SendChatMessage(ctx context.Context, message, sessionID string) (*Exchange, error) {
	var ex Exchange
	body := map[string]string{"message": message, "session_id": sessionID}
	if err := c.do(ctx, http.MethodPost, "/chat/message", nil, body, &ex, true); err != nil {
		return nil, err
	}
	return &ex, nil
}

// ChatHistory returns the ordered exchanges recorded for a session.
func (c *Client) ChatHistory(ctx context.Context, sessionID string) ([]*Exchange, error) {
	query := url.Values{}
	if sessionID != "" {
		query.Set("session_id", sessionID)
	}
	var exchanges []*Exchange
	if err := c.do(ctx, http.MethodGet, "/chat/history", query, nil, &exchanges, true); err != nil {
		return nil, err
	}
	return exchanges, nil
}

// AnalyzeSymptoms submits a symptom report for AI assessment.
func (c *Client) AnalyzeSymptoms(ctx context.Context, report SymptomReport) (*SymptomAnalysis, error) {
	var analysis SymptomAnalysis
	if err := c.do(ctx, http.MethodPost, "/symptoms/analyze", nil, report, &analysis, true); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// SymptomHistory returns past symptom analyses, newest first.
func (c *Client) SymptomHistory(ctx context.Context) ([]*SymptomAnalysis, error) {
	var analyses []*SymptomAnalysis
	if err := c.do(ctx, http.MethodGet, "/symptoms/history", nil, nil, &analyses, true); err != nil {
		return nil, err
	}
	return analyses, nil
}

// Metrics lists recorded metrics, optionally filtered by type server-side.
func (c *Client) Metrics(ctx context.Context, metricType MetricType) ([]*Metric, error) {
	query := url.Values{}
	if metricType != "" {
		query.Set("metric_type", string(metricType))
	}
	var metrics []*Metric
	if err := c.do(ctx, http.MethodGet, "/metrics", query, nil, &metrics, true); err != nil {
		return nil, err
	}
	return metrics, nil
}

// CreateMetric records a new measurement and returns it with
// server-assigned fields populated.
func (c *Client) CreateMetric(ctx context.Context, input MetricInput) (*Metric, error) {
	var metric Metric
	if err := c.do(ctx, http.MethodPost, "/metrics", nil, input, &metric, true); err != nil {
		return nil, err
	}
	return &metric, nil
}

// DeleteMetric removes a metric by id.
func (c *Client) DeleteMetric(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/metrics/"+id, nil, nil, nil, true)
}

// Reminders lists all reminders, ordered by scheduled time.
func (c *Client) Reminders(ctx context.Context) ([]*Reminder, error) {
	var reminders []*Reminder
	if err := c.do(ctx, http.MethodGet, "/reminders", nil, nil, &reminders, true); err != nil {
		return nil, err
	}
	return reminders, nil
}

// CreateReminder creates a reminder and returns it with server-assigned
// fields populated.
func (c *Client) CreateReminder(ctx context.Context, input ReminderInput) (*Reminder, error) {
	var reminder Reminder
	if err := c.do(ctx, http.MethodPost, "/reminders", nil, input, &reminder, true); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// CompleteReminder marks a reminder completed. The call is not
// idempotent-guarded here; callers check the cached state first.
func (c *Client) CompleteReminder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/reminders/"+id+"/complete", nil, struct{}{}, nil, true)
}

// DeleteReminder removes a reminder by id.
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reminders/"+id, nil, nil, nil, true)
}
