package tui

import (
	"context"
	"time"

	"coin-concierge/internal/domain"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const loadTimeout = 15 * time.Second

// DashboardQuerier assembles the dashboard payload for the SSH session's user.
type DashboardQuerier interface {
	BuildDashboard(ctx context.Context, user domain.User) (domain.DashboardPayload, error)
}

// Services bundles everything the terminal dashboard needs.
type Services struct {
	Dashboard DashboardQuerier
	User      domain.User
}

type dashboardMsg struct {
	payload domain.DashboardPayload
	err     error
}

// AppModel is the bubbletea model behind the SSH dashboard. It shows a
// spinner while the aggregation pipeline runs and re-runs it on 'r'.
type AppModel struct {
	svc     Services
	spinner spinner.Model

	payload domain.DashboardPayload
	loaded  bool
	loading bool
	err     error

	width  int
	height int
}

func NewAppModel(svc Services) *AppModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return &AppModel{
		svc:     svc,
		spinner: sp,
		loading: true,
	}
}

func (m *AppModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadDashboard())
}

func (m *AppModel) loadDashboard() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		payload, err := svc.Dashboard.BuildDashboard(ctx, svc.User)
		return dashboardMsg{payload: payload, err: err}
	}
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.loadDashboard())
			}
		}
		return m, nil

	case dashboardMsg:
		m.loading = false
		m.err = msg.err
		// An assembly failure still carries a complete fallback payload.
		m.payload = msg.payload
		m.loaded = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loading {
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	priceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("84"))
)
