// Package ollama adapts a local Ollama server to the profile extraction
// port. Model output is schema-checked before it is handed to the core, so
// callers see a structured violation instead of a decoding failure.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gridrez/resume-parser/internal/core/domain"
	"github.com/gridrez/resume-parser/internal/infrastructure/resilience"
	"github.com/gridrez/resume-parser/internal/observability/metrics"
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
	metrics    *metrics.Metrics
}

func New(baseURL, model string, timeout time.Duration, m *metrics.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		executor:   resilience.New("ollama", resilience.InferencePolicy(), transportOutcome, logger),
		metrics:    m,
	}
}

// ExtractProfile runs one schema-constrained generation. Retries apply to
// the transport call only; a response that fails the schema check is a
// final answer about this document, not a transient fault.
func (c *Client) ExtractProfile(ctx context.Context, text string) (*domain.ExtractedProfile, error) {
	start := time.Now()

	raw, err := c.generateJSON(ctx, buildProfilePrompt(text))
	if err != nil {
		c.metrics.RecordInference("transport_error", time.Since(start))
		return nil, wrapTemporary("extract profile", err)
	}

	payload := []byte(extractJSONObject(raw))
	if err := validateProfileJSON(payload); err != nil {
		c.metrics.RecordInference("schema_violation", time.Since(start))
		return nil, err
	}

	var profile domain.ExtractedProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		c.metrics.RecordInference("decode_error", time.Since(start))
		return nil, fmt.Errorf("decode profile json: %w", err)
	}

	c.metrics.RecordInference("ok", time.Since(start))
	return &profile, nil
}

func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
		"format": "json",
	}

	var response struct {
		Response string `json:"response"`
	}
	err := c.executor.Do(ctx, func(ctx context.Context) error {
		return c.postJSON(ctx, "/api/generate", reqBody, &response, "generate")
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}

// extractJSONObject trims any stray prose the model wraps around the JSON
// body. With format=json this is rarely needed, but some models still emit
// a leading sentence.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
