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

// CoinGeckoProvider fetches spot prices from the CoinGecko free API.
type CoinGeckoProvider struct {
	client   *http.Client
	baseURL  string
	currency string
	symbols  []string
	tracer   trace.Tracer
	limiter  *RateLimiter
}

// NewCoinGeckoProvider creates a provider with built-in rate limiting.
// The free tier allows roughly 8 requests per minute (one token every 7.5s).
// symbols must map through domain.CoinGeckoID; an empty list means the
// default tracked set.
func NewCoinGeckoProvider(tracer trace.Tracer, baseURL, currency string, symbols []string) *CoinGeckoProvider {
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}
	if currency == "" {
		currency = "usd"
	}
	if len(symbols) == 0 {
		symbols = domain.TrackedSymbols
	}
	return &CoinGeckoProvider{
		client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: currency,
		symbols:  symbols,
		tracer:   tracer,
		limiter:  NewRateLimiter(8, 7500*time.Millisecond),
	}
}

// FetchQuotes fetches current prices for all configured coins in one API
// call. Quotes come back in configured order.
func (p *CoinGeckoProvider) FetchQuotes(ctx context.Context) ([]domain.PriceQuote, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-quotes")
	defer span.End()

	ids := make([]string, 0, len(p.symbols))
	for _, sym := range p.symbols {
		ids = append(ids, domain.CoinGeckoID[sym])
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		p.baseURL, strings.Join(ids, ","), p.currency)

	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}

	// Response shape: {"bitcoin": {"usd": 97000}, "ethereum": {"usd": 3500}, ...}
	var raw map[string]map[string]float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse quotes: %w", err)
	}

	quotes := make([]domain.PriceQuote, 0, len(p.symbols))
	for _, sym := range p.symbols {
		data, ok := raw[domain.CoinGeckoID[sym]]
		if !ok {
			return nil, fmt.Errorf("quote missing for %s", sym)
		}
		quotes = append(quotes, domain.PriceQuote{Symbol: sym, USD: data[p.currency]})
	}

	return quotes, nil
}

func (p *CoinGeckoProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("coingecko API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
