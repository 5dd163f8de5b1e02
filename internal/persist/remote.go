package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/intervia/intervia-backend/internal/model"
)

// RemoteClient talks to the Intervia HTTP API — the remote tier of the
// persistence adapter. Every call is a single synchronous attempt; the
// adapter handles fallback, so no retries happen here.
type RemoteClient struct {
	baseURL string
	http    *http.Client
}

// NewRemoteClient creates a client for the API at baseURL.
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// answerResult is the payload of a graded answer submission.
type answerResult struct {
	Answer  model.Answer      `json:"answer"`
	Session model.SessionView `json:"session"`
}

// completeResult is the payload of a session completion.
type completeResult struct {
	Session model.SessionView    `json:"session"`
	Summary model.SessionSummary `json:"summary"`
}

func (c *RemoteClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote call: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if env.Error != nil {
			return fmt.Errorf("remote status %d: %s", resp.StatusCode, env.Error.Code)
		}
		return fmt.Errorf("remote status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}

// Health checks the liveness endpoint.
func (c *RemoteClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// CreateSession starts a session on the remote store.
func (c *RemoteClient) CreateSession(ctx context.Context, level model.Level, domain string) (model.SessionView, error) {
	var view model.SessionView
	err := c.do(ctx, http.MethodPost, "/api/v1/sessions",
		model.CreateSessionRequest{Level: string(level), Domain: domain}, &view)
	return view, err
}

// GetSession fetches a session by id.
func (c *RemoteClient) GetSession(ctx context.Context, id uuid.UUID) (model.SessionView, error) {
	var view model.SessionView
	err := c.do(ctx, http.MethodGet, "/api/v1/sessions/"+id.String(), nil, &view)
	return view, err
}

// SubmitAnswer submits an answer for remote grading.
func (c *RemoteClient) SubmitAnswer(ctx context.Context, id uuid.UUID, req model.SubmitAnswerRequest) (model.Answer, model.SessionView, error) {
	var result answerResult
	err := c.do(ctx, http.MethodPost, "/api/v1/sessions/"+id.String()+"/answers", req, &result)
	return result.Answer, result.Session, err
}

// CompleteSession marks a session finished and returns its summary.
func (c *RemoteClient) CompleteSession(ctx context.Context, id uuid.UUID) (model.SessionView, model.SessionSummary, error) {
	var result completeResult
	err := c.do(ctx, http.MethodPut, "/api/v1/sessions/"+id.String(), nil, &result)
	return result.Session, result.Summary, err
}

// Questions fetches bank questions with optional level and domain
// filters passed through as query parameters.
func (c *RemoteClient) Questions(ctx context.Context, level, domain string) ([]model.Question, error) {
	params := url.Values{}
	if level != "" {
		params.Set("level", level)
	}
	if domain != "" {
		params.Set("domain", domain)
	}
	path := "/api/v1/questions"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var questions []model.Question
	err := c.do(ctx, http.MethodGet, path, nil, &questions)
	return questions, err
}
