package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coin-concierge/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const defaultNewsBatchSize = 20

// NewsProvider fetches recent crypto headlines from a newsdata-style API.
// The API key is optional; without it requests go out unauthenticated and
// the upstream decides whether to serve them.
type NewsProvider struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	language string
	tracer   trace.Tracer
}

func NewNewsProvider(tracer trace.Tracer, baseURL, apiKey, language string) *NewsProvider {
	if baseURL == "" {
		baseURL = "https://newsdata.io/api/1"
	}
	if language == "" {
		language = "en"
	}
	return &NewsProvider{
		client:   &http.Client{Timeout: 20 * time.Second},
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		tracer:   tracer,
	}
}

// FetchHeadlines returns up to limit normalized headlines, newest first as
// delivered by the upstream.
func (p *NewsProvider) FetchHeadlines(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	_, span := p.tracer.Start(ctx, "news.fetch-headlines")
	defer span.End()

	if limit <= 0 {
		limit = defaultNewsBatchSize
	}

	u := fmt.Sprintf("%s/latest?category=business&q=%s&language=%s",
		p.baseURL, url.QueryEscape("crypto"), url.QueryEscape(p.language))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("X-ACCESS-KEY", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("news API error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Results []struct {
			Title    string `json:"title"`
			Link     string `json:"link"`
			SourceID string `json:"source_id"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	items := make([]domain.NewsItem, 0, min(limit, len(payload.Results)))
	for _, row := range payload.Results {
		if len(items) >= limit {
			break
		}
		title := sanitizeText(row.Title, 300)
		if title == "" {
			continue
		}
		source := sanitizeText(row.SourceID, 120)
		if source == "" {
			source = "unknown"
		}
		items = append(items, domain.NewsItem{
			Title:  title,
			Source: source,
			URL:    sanitizeText(row.Link, 500),
		})
	}

	return items, nil
}

func sanitizeText(in string, maxLen int) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	in = strings.ReplaceAll(in, "\n", " ")
	in = strings.ReplaceAll(in, "\r", " ")
	in = strings.Join(strings.Fields(in), " ")
	if maxLen > 0 && len(in) > maxLen {
		in = in[:maxLen]
	}
	return in
}
