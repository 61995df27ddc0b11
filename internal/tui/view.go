package tui

import (
	"fmt"
	"strings"
)

func (m *AppModel) View() string {
	var sb strings.Builder

	name := m.svc.User.Name
	if name == "" {
		name = m.svc.User.Email
	}
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Coin Concierge — %s", name)))
	sb.WriteString("\n")

	if m.loading && !m.loaded {
		sb.WriteString(fmt.Sprintf("%s fetching your dashboard...\n", m.spinner.View()))
		return sb.String()
	}

	if m.err != nil {
		sb.WriteString(errStyle.Render("dashboard degraded: showing fallback data"))
		sb.WriteString("\n\n")
	}

	sb.WriteString(sectionStyle.Render("Prices"))
	sb.WriteString("\n")
	for _, q := range m.payload.Prices {
		sb.WriteString(priceStyle.Render(fmt.Sprintf("  %-5s $%.2f", q.Symbol, q.USD)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(sectionStyle.Render("News"))
	sb.WriteString("\n")
	for _, item := range m.payload.News {
		sb.WriteString("  • " + item.Title + "\n")
		if item.Source != "" {
			sb.WriteString(dimStyle.Render("    " + item.Source))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(sectionStyle.Render(fmt.Sprintf("AI Insight (%s)", m.payload.AIInsight.Sentiment)))
	sb.WriteString("\n  ")
	sb.WriteString(wrap(m.payload.AIInsight.Text, m.contentWidth()))
	sb.WriteString("\n")

	sb.WriteString("\n")
	sb.WriteString(sectionStyle.Render("Meme of the day"))
	sb.WriteString("\n  ")
	sb.WriteString(m.payload.Meme.Title)
	sb.WriteString("\n  ")
	sb.WriteString(dimStyle.Render(m.payload.Meme.URL))
	sb.WriteString("\n")

	status := "r: refresh • q: quit"
	if m.loading {
		status = m.spinner.View() + " refreshing..."
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(status))
	sb.WriteString("\n")

	return sb.String()
}

func (m *AppModel) contentWidth() int {
	if m.width <= 4 {
		return 76
	}
	return m.width - 4
}

// wrap breaks text on word boundaries, indenting continuation lines to match
// the two-space section indent.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	words := strings.Fields(text)
	var sb strings.Builder
	line := 0
	for i, w := range words {
		if line > 0 && line+1+len(w) > width {
			sb.WriteString("\n  ")
			line = 0
		} else if i > 0 {
			sb.WriteString(" ")
			line++
		}
		sb.WriteString(w)
		line += len(w)
	}
	return sb.String()
}
