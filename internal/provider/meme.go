package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"coin-concierge/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const defaultMemeUA = "coin-concierge/1.0 (+https://github.com/scaryPonens/coin-concierge)"

// MemeProvider fetches one meme from a meme-api style endpoint.
type MemeProvider struct {
	client    *http.Client
	baseURL   string
	userAgent string
	tracer    trace.Tracer
}

func NewMemeProvider(tracer trace.Tracer, baseURL string) *MemeProvider {
	if baseURL == "" {
		baseURL = "https://meme-api.com"
	}
	return &MemeProvider{
		client:    &http.Client{Timeout: 20 * time.Second},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultMemeUA,
		tracer:    tracer,
	}
}

// FetchMeme returns the meme of the moment.
func (p *MemeProvider) FetchMeme(ctx context.Context) (*domain.MemeItem, error) {
	_, span := p.tracer.Start(ctx, "meme.fetch-meme")
	defer span.End()

	u := p.baseURL + "/gimme/cryptocurrencymemes"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("meme API error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		PostLink  string `json:"postLink"`
		Subreddit string `json:"subreddit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode meme response: %w", err)
	}

	if strings.TrimSpace(payload.URL) == "" {
		return nil, fmt.Errorf("meme response missing url")
	}

	return &domain.MemeItem{
		Title:     sanitizeText(payload.Title, 300),
		URL:       strings.TrimSpace(payload.URL),
		PostLink:  strings.TrimSpace(payload.PostLink),
		Subreddit: sanitizeText(payload.Subreddit, 120),
	}, nil
}
