package advisor

import (
	"fmt"
	"strings"
	"time"

	"coin-concierge/internal/domain"
)

const advisorPhilosophy = `You are a personal crypto advisor for the Coin Concierge app. Your role is to explain market conditions in plain language tailored to the user's profile, NOT to issue trade calls.

Rules:
- Always reference the live prices provided when discussing an asset.
- Never fabricate data. If data is unavailable, say so.
- Tailor tone and depth to the user's investor type: conservative users get capital-preservation framing, aggressive users get opportunity framing with explicit downside notes.
- Only discuss the supported assets (BTC, ETH, SOL, DOGE). Politely decline others.
- Keep responses concise. The user is reading this in a chat pane.
- Do not provide financial advice disclaimers on every message. The user understands this is informational.`

// BuildSystemPrompt composes the advisor system prompt from the user's
// stored preferences and a formatted market context block.
func BuildSystemPrompt(prefs domain.UserPreferences, marketContext string) string {
	var sb strings.Builder
	sb.WriteString(advisorPhilosophy)

	sb.WriteString("\n\n--- USER PROFILE ---\n")
	if len(prefs.CryptoAssets) > 0 {
		sb.WriteString("Tracked assets: ")
		sb.WriteString(strings.Join(prefs.CryptoAssets, ", "))
		sb.WriteString("\n")
	} else {
		sb.WriteString("Tracked assets: none chosen yet\n")
	}
	if prefs.InvestorType != "" {
		sb.WriteString("Investor type: ")
		sb.WriteString(prefs.InvestorType)
		sb.WriteString("\n")
	}
	if len(prefs.ContentTypes) > 0 {
		sb.WriteString("Preferred content: ")
		sb.WriteString(strings.Join(prefs.ContentTypes, ", "))
		sb.WriteString("\n")
	}

	sb.WriteString("\n--- LIVE MARKET DATA (as of ")
	sb.WriteString(time.Now().UTC().Format(time.RFC822))
	sb.WriteString(") ---\n")
	sb.WriteString(marketContext)
	return sb.String()
}

func FormatMarketContext(quotes []domain.PriceQuote) string {
	if len(quotes) == 0 {
		return "No market data currently available."
	}

	var sb strings.Builder
	sb.WriteString("Current Prices:\n")
	for _, q := range quotes {
		sb.WriteString(fmt.Sprintf("  %s: $%.2f\n", q.Symbol, q.USD))
	}
	return sb.String()
}
