package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"coin-concierge/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Client talks to a configurable OpenAI-compatible text-generation endpoint.
// The request shape is fixed; the response shape is probed via
// ReplyStrategies because providers disagree on where the text lives.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	tracer  trace.Tracer
}

func NewClient(tracer trace.Tracer, baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		tracer:  tracer,
	}
}

// Configured reports whether a credential is present. Without one the
// adapter must short-circuit to its fallback without any network call.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GenerateInsight builds the prompt from preferences, calls the model, and
// parses the reply into a validated InsightResult.
func (c *Client) GenerateInsight(ctx context.Context, prefs domain.UserPreferences) (domain.InsightResult, error) {
	ctx, span := c.tracer.Start(ctx, "insight.generate")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", c.model))

	if !c.Configured() {
		return domain.InsightResult{}, fmt.Errorf("insight API key not configured")
	}

	system, user := BuildPrompt(prefs)
	body, err := c.complete(ctx, system, user)
	if err != nil {
		return domain.InsightResult{}, err
	}

	reply := ExtractReplyText(body)
	result, err := ParseInsight(reply)
	if err != nil {
		return domain.InsightResult{}, fmt.Errorf("model reply invalid: %w", err)
	}
	return result, nil
}

func (c *Client) complete(ctx context.Context, system, user string) ([]byte, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("insight API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
