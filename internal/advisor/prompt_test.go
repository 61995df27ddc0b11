package advisor

import (
	"strings"
	"testing"

	"coin-concierge/internal/domain"
)

func TestBuildSystemPromptContainsProfileAndContext(t *testing.T) {
	prefs := domain.UserPreferences{
		CryptoAssets: []string{"BTC", "SOL"},
		InvestorType: "conservative",
		ContentTypes: []string{"news", "memes"},
	}

	prompt := BuildSystemPrompt(prefs, "some context")
	if !strings.Contains(prompt, "personal crypto advisor") {
		t.Fatal("expected advisor philosophy in prompt")
	}
	if !strings.Contains(prompt, "Tracked assets: BTC, SOL") {
		t.Fatal("expected tracked assets in prompt")
	}
	if !strings.Contains(prompt, "Investor type: conservative") {
		t.Fatal("expected investor type in prompt")
	}
	if !strings.Contains(prompt, "Preferred content: news, memes") {
		t.Fatal("expected content preferences in prompt")
	}
	if !strings.Contains(prompt, "LIVE MARKET DATA") {
		t.Fatal("expected market data header in prompt")
	}
	if !strings.Contains(prompt, "some context") {
		t.Fatal("expected market context in prompt")
	}
}

func TestBuildSystemPromptEmptyPreferences(t *testing.T) {
	prompt := BuildSystemPrompt(domain.UserPreferences{}, "ctx")
	if !strings.Contains(prompt, "Tracked assets: none chosen yet") {
		t.Fatal("expected placeholder for empty assets")
	}
	if strings.Contains(prompt, "Investor type:") {
		t.Fatal("empty investor type should be omitted")
	}
}

func TestFormatMarketContext(t *testing.T) {
	quotes := []domain.PriceQuote{
		{Symbol: "BTC", USD: 50000},
		{Symbol: "ETH", USD: 3000},
	}

	ctx := FormatMarketContext(quotes)
	if !strings.Contains(ctx, "BTC: $50000.00") {
		t.Fatal("expected BTC price in context")
	}
	if !strings.Contains(ctx, "ETH: $3000.00") {
		t.Fatal("expected ETH price in context")
	}
}

func TestFormatMarketContextEmpty(t *testing.T) {
	ctx := FormatMarketContext(nil)
	if ctx != "No market data currently available." {
		t.Fatalf("expected fallback text, got: %s", ctx)
	}
}
