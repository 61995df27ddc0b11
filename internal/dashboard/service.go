package dashboard

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"coin-concierge/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrDashboardBuild signals an adapter contract violation. Callers still
// receive a complete fallback payload alongside it.
var ErrDashboardBuild = errors.New("failed to build dashboard")

// PriceSource provides current quotes for the tracked assets.
type PriceSource interface {
	FetchQuotes(ctx context.Context) ([]domain.PriceQuote, error)
}

// NewsSource provides a batch of recent headlines.
type NewsSource interface {
	FetchHeadlines(ctx context.Context, limit int) ([]domain.NewsItem, error)
}

// InsightSource generates the AI market commentary.
type InsightSource interface {
	Configured() bool
	GenerateInsight(ctx context.Context, prefs domain.UserPreferences) (domain.InsightResult, error)
}

// MemeSource provides the meme of the moment.
type MemeSource interface {
	FetchMeme(ctx context.Context) (*domain.MemeItem, error)
}

type Config struct {
	UpstreamTimeout time.Duration
	NewsBatchSize   int
}

// Service assembles the per-user dashboard by fanning out to the four
// upstream adapters. Each adapter flattens its own failures into a static
// fallback, so the join never observes an error.
type Service struct {
	tracer  trace.Tracer
	prices  PriceSource
	news    NewsSource
	insight InsightSource
	memes   MemeSource
	cfg     Config
}

func NewService(
	tracer trace.Tracer,
	prices PriceSource,
	news NewsSource,
	insight InsightSource,
	memes MemeSource,
	cfg Config,
) *Service {
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = 5 * time.Second
	}
	if cfg.NewsBatchSize <= 0 {
		cfg.NewsBatchSize = 20
	}
	return &Service{
		tracer:  tracer,
		prices:  prices,
		news:    news,
		insight: insight,
		memes:   memes,
		cfg:     cfg,
	}
}

// BuildDashboard produces one complete DashboardPayload for the user. The
// four adapter calls run concurrently and independently; none shares state
// with another and completion order does not affect the merged result.
// Adapters run on a detached context so an aborted request does not cancel
// them mid-flight; each call is bounded by the configured upstream timeout.
func (s *Service) BuildDashboard(ctx context.Context, user domain.User) (domain.DashboardPayload, error) {
	_, span := s.tracer.Start(ctx, "dashboard.build")
	defer span.End()
	span.SetAttributes(attribute.Int64("user_id", user.ID))

	identity := domain.DashboardUser{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Preferences: user.Preferences,
	}

	base := context.WithoutCancel(ctx)

	var (
		quotes  []domain.PriceQuote
		news    []domain.NewsItem
		insight domain.InsightResult
		meme    domain.MemeItem
	)

	var mu sync.Mutex
	var violations []any

	recordViolation := func() {
		if r := recover(); r != nil {
			mu.Lock()
			violations = append(violations, r)
			mu.Unlock()
		}
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		defer recordViolation()
		quotes = s.fetchQuotes(base)
	}()
	go func() {
		defer wg.Done()
		defer recordViolation()
		news = s.fetchNews(base, user.Preferences)
	}()
	go func() {
		defer wg.Done()
		defer recordViolation()
		insight = s.fetchInsight(base, user.Preferences)
	}()
	go func() {
		defer wg.Done()
		defer recordViolation()
		meme = s.fetchMeme(base)
	}()
	wg.Wait()

	if len(violations) > 0 {
		log.Printf("dashboard build for user %d: adapter contract violation: %v", user.ID, violations[0])
		span.RecordError(ErrDashboardBuild)
		return minimalBundle(identity), ErrDashboardBuild
	}

	return domain.DashboardPayload{
		User:      identity,
		Prices:    quotes,
		News:      news,
		AIInsight: insight,
		Meme:      meme,
	}, nil
}

// The four adapter seams below are the only places upstream errors exist.
// Each flattens any failure into its static fallback and logs the cause.

func (s *Service) fetchQuotes(ctx context.Context) []domain.PriceQuote {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()

	quotes, err := s.prices.FetchQuotes(ctx)
	if err != nil {
		log.Printf("price adapter falling back: %v", err)
		return fallbackQuotes()
	}
	return quotes
}

func (s *Service) fetchNews(ctx context.Context, prefs domain.UserPreferences) []domain.NewsItem {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()

	batch, err := s.news.FetchHeadlines(ctx, s.cfg.NewsBatchSize)
	if err != nil {
		log.Printf("news adapter falling back: %v", err)
		batch = fallbackNews()
	}
	return SelectNews(prefs.CryptoAssets, batch)
}

func (s *Service) fetchInsight(ctx context.Context, prefs domain.UserPreferences) domain.InsightResult {
	if s.insight == nil || !s.insight.Configured() {
		return fallbackInsight()
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()

	result, err := s.insight.GenerateInsight(ctx, prefs)
	if err != nil {
		log.Printf("Warning: insight adapter falling back: %v", err)
		return fallbackInsight()
	}
	return result
}

func (s *Service) fetchMeme(ctx context.Context) domain.MemeItem {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
	defer cancel()

	meme, err := s.memes.FetchMeme(ctx)
	if err != nil || meme == nil {
		log.Printf("meme adapter falling back: %v", err)
		return fallbackMeme()
	}
	return *meme
}
