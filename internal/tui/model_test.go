package tui

import (
	"context"
	"strings"
	"testing"

	"coin-concierge/internal/dashboard"
	"coin-concierge/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

type stubDashboard struct {
	payload domain.DashboardPayload
	err     error
	calls   int
}

func (s *stubDashboard) BuildDashboard(ctx context.Context, user domain.User) (domain.DashboardPayload, error) {
	s.calls++
	return s.payload, s.err
}

func samplePayload() domain.DashboardPayload {
	return domain.DashboardPayload{
		User:   domain.DashboardUser{ID: 1, Name: "Ada"},
		Prices: []domain.PriceQuote{{Symbol: "BTC", USD: 97000}},
		News:   []domain.NewsItem{{Title: "Bitcoin holds steady", Source: "test"}},
		AIInsight: domain.InsightResult{
			Text: "Markets look calm.", Sentiment: "neutral", FromModel: true,
		},
		Meme: domain.MemeItem{Title: "hodl", URL: "https://example.com/m.png"},
	}
}

func TestViewShowsSpinnerWhileLoading(t *testing.T) {
	m := NewAppModel(Services{
		Dashboard: &stubDashboard{},
		User:      domain.User{Name: "Ada"},
	})

	view := m.View()
	if !strings.Contains(view, "fetching your dashboard") {
		t.Fatalf("expected loading view, got: %s", view)
	}
}

func TestDashboardMsgRendersSections(t *testing.T) {
	m := NewAppModel(Services{
		Dashboard: &stubDashboard{payload: samplePayload()},
		User:      domain.User{Name: "Ada"},
	})

	updated, _ := m.Update(dashboardMsg{payload: samplePayload()})
	view := updated.View()

	for _, want := range []string{"BTC", "97000.00", "Bitcoin holds steady", "Markets look calm.", "hodl", "neutral"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "degraded") {
		t.Error("healthy payload should not render the degraded banner")
	}
}

func TestDegradedPayloadStillRenders(t *testing.T) {
	m := NewAppModel(Services{
		Dashboard: &stubDashboard{},
		User:      domain.User{Name: "Ada"},
	})

	updated, _ := m.Update(dashboardMsg{payload: samplePayload(), err: dashboard.ErrDashboardBuild})
	view := updated.View()
	if !strings.Contains(view, "degraded") {
		t.Fatal("expected degraded banner")
	}
	if !strings.Contains(view, "BTC") {
		t.Fatal("fallback payload sections should still render")
	}
}

func TestRefreshKeyReloads(t *testing.T) {
	stub := &stubDashboard{payload: samplePayload()}
	m := NewAppModel(Services{Dashboard: stub, User: domain.User{Name: "Ada"}})

	updated, _ := m.Update(dashboardMsg{payload: samplePayload()})
	model := updated.(*AppModel)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("expected a reload command on 'r'")
	}
	if !model.loading {
		t.Fatal("expected model back in loading state")
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewAppModel(Services{Dashboard: &stubDashboard{}, User: domain.User{}})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command for 'q'")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Fatalf("expected tea.QuitMsg, got %#v", msg)
	}
}

func TestWrap(t *testing.T) {
	got := wrap("one two three four", 9)
	if !strings.Contains(got, "\n") {
		t.Fatalf("expected wrapped text, got %q", got)
	}
	if wrap("short", 80) != "short" {
		t.Fatal("short text should be unchanged")
	}
}
