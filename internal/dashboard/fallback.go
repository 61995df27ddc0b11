package dashboard

import "coin-concierge/internal/domain"

// Static fallback values, one per upstream. Each matches the shape of a
// successful result so consumers never branch on failure.

func fallbackQuotes() []domain.PriceQuote {
	return []domain.PriceQuote{
		{Symbol: "BTC", USD: 65000},
		{Symbol: "ETH", USD: 3200},
		{Symbol: "SOL", USD: 150},
		{Symbol: "DOGE", USD: 0.12},
	}
}

func fallbackNews() []domain.NewsItem {
	return []domain.NewsItem{
		{
			Title:  "Bitcoin steadies as markets await macro data",
			Source: "coin-concierge",
			URL:    "https://www.coindesk.com",
		},
		{
			Title:  "Ethereum developers lock in next upgrade window",
			Source: "coin-concierge",
			URL:    "https://cointelegraph.com",
		},
	}
}

func fallbackInsight() domain.InsightResult {
	return domain.InsightResult{
		Text:      "Markets are moving sideways today. Keep positions sized to your risk profile, favor the majors, and avoid chasing short-term spikes.",
		Sentiment: "cautious-bullish",
		FromModel: false,
	}
}

func fallbackMeme() domain.MemeItem {
	return domain.MemeItem{
		Title:     "When you check the charts for the tenth time today",
		URL:       "https://i.imgur.com/6o1NQ9h.jpeg",
		PostLink:  "https://www.reddit.com/r/cryptocurrencymemes",
		Subreddit: "cryptocurrencymemes",
	}
}

// minimalBundle is the degraded-but-complete payload returned alongside an
// assembly failure: a trimmed quote list, one headline, and the fallback
// insight and meme. Every section stays populated.
func minimalBundle(user domain.DashboardUser) domain.DashboardPayload {
	return domain.DashboardPayload{
		User:      user,
		Prices:    fallbackQuotes()[:2],
		News:      fallbackNews()[:1],
		AIInsight: fallbackInsight(),
		Meme:      fallbackMeme(),
	}
}
