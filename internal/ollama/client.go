// Package ollama is a client for a locally running Ollama instance. It
// covers the four endpoints the app needs: connection probing, model
// listing, model pulls with streaming progress, and text generation.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
)

// Client talks to an Ollama-compatible HTTP API
type Client struct {
	baseURL string
	model   string
	client  *http.Client

	retry          RetryConfig
	circuitBreaker *CircuitBreaker
	concurrencySem *semaphore.Weighted
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL sets the Ollama root URL, e.g. "http://localhost:11434"
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithModel sets the default model for Generate calls
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRetryConfig replaces the retry/circuit-breaker configuration
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// NewClient creates an Ollama client. Defaults to localhost:11434 with the
// standard retry policy.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: "http://localhost:11434",
		client:  &http.Client{},
		retry:   DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retry.CircuitBreakerEnabled {
		c.circuitBreaker = NewCircuitBreaker(
			c.retry.FailureThreshold, c.retry.SuccessThreshold, c.retry.OpenTimeout)
	}
	if c.retry.MaxConcurrentCalls > 0 {
		c.concurrencySem = semaphore.NewWeighted(int64(c.retry.MaxConcurrentCalls))
	}
	return c
}

// BaseURL returns the configured Ollama root URL
func (c *Client) BaseURL() string { return c.baseURL }

// Model returns the configured default model
func (c *Client) Model() string { return c.model }

// ConnectionResult is the outcome of a connection probe
type ConnectionResult struct {
	Success bool
	Models  []string
}

// tagsResponse is the /api/tags response body
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// CheckConnection probes the /api/tags endpoint. A non-200 response or a
// transport error yields Success=false without an error; callers treat an
// unreachable engine as a state, not a failure.
func (c *Client) CheckConnection(ctx context.Context) ConnectionResult {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return ConnectionResult{}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return ConnectionResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ConnectionResult{}
	}
	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return ConnectionResult{}
	}
	models := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, m.Name)
	}
	return ConnectionResult{Success: true, Models: models}
}

// ListModels returns the model names available on the server
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	result := c.CheckConnection(ctx)
	if !result.Success {
		return nil, fmt.Errorf("ollama is not reachable at %s", c.baseURL)
	}
	return result.Models, nil
}

// HasModel reports whether a model matching name is present on the server.
// Matching is by substring so a bare name matches any tag of that model
// ("llama3.2" matches "llama3.2:3b").
func HasModel(available []string, name string) bool {
	for _, m := range available {
		if strings.Contains(m, name) {
			return true
		}
	}
	return false
}

// PullProgress is one parsed line of the streaming pull response
type PullProgress struct {
	Status    string `json:"status"`
	Completed int64  `json:"completed"`
	Total     int64  `json:"total"`
}

// ProgressFunc receives streaming pull updates
type ProgressFunc func(PullProgress)

// Pull downloads a model from the Ollama registry. The /api/pull endpoint
// streams newline-delimited JSON; each parsed line is passed to progress
// (which may be nil). Pull returns once a "success" status arrives or the
// stream ends cleanly.
func (c *Client) Pull(ctx context.Context, model string, progress ProgressFunc) error {
	body, err := json.Marshal(map[string]string{"name": model})
	if err != nil {
		return fmt.Errorf("failed to marshal pull request: %w", err)
	}

	// No client-side timeout: large models legitimately take a long time.
	// Cancellation comes from ctx.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create pull request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("pull request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("pull failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var p PullProgress
		if err := json.Unmarshal(line, &p); err != nil {
			continue // tolerate partial/garbled lines
		}
		if progress != nil {
			progress(p)
		}
		if p.Status == "success" {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("pull stream failed: %w", err)
	}
	return nil
}

// generateRequest is the /api/generate request body
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the non-streaming /api/generate response body
type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate sends a prompt to /api/generate and returns the response text.
// Model defaults to the client's configured model. Calls go through the
// retry/circuit-breaker path.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = c.model
	}
	if model == "" {
		return "", fmt.Errorf("no model configured")
	}

	body, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	var text string
	err = c.retryWithBackoff(ctx, "generate", func(attemptCtx context.Context) error {
		req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("generate error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}

		var gen generateResponse
		if err := json.Unmarshal(respBody, &gen); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		if gen.Error != "" {
			return fmt.Errorf("generate error: %s", gen.Error)
		}
		text = strings.TrimSpace(gen.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}
	return text, nil
}
