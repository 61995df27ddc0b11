package insight

import (
	"fmt"
	"strings"

	"coin-concierge/internal/domain"
)

const systemPrompt = `You are a crypto market analyst writing one short dashboard insight for a retail investor. Follow every rule exactly:
- Discuss ONLY the assets the user listed. Do not mention any other asset.
- Stay under 80 words.
- Pick exactly one sentiment tag from: bullish, bearish, neutral.
- Respond with raw JSON only, shaped {"text": "...", "sentiment": "..."}. No prose before or after, no markdown, no code fences.`

// BuildPrompt renders the system and user instructions for the
// text-generation endpoint from the user's stored preferences.
func BuildPrompt(prefs domain.UserPreferences) (string, string) {
	assets := "the broad crypto market"
	if len(prefs.CryptoAssets) > 0 {
		assets = strings.Join(prefs.CryptoAssets, ", ")
	}

	investorType := strings.TrimSpace(prefs.InvestorType)
	if investorType == "" {
		investorType = "unspecified"
	}

	user := fmt.Sprintf(
		"Write today's insight for an investor tracking: %s. Their risk profile is %q. Tailor the take to that risk profile.",
		assets, investorType,
	)

	return systemPrompt, user
}
