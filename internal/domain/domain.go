package domain

import "time"

// UserPreferences holds the onboarding choices that personalize the
// dashboard: tracked assets, risk profile, and preferred content categories.
type UserPreferences struct {
	CryptoAssets []string `json:"cryptoAssets"`
	InvestorType string   `json:"investorType"`
	ContentTypes []string `json:"contentTypes"`
}

// User is a registered account with resolved preferences.
type User struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Preferences  UserPreferences `json:"preferences"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PriceQuote is one tracked asset's current USD price.
type PriceQuote struct {
	Symbol string  `json:"symbol"`
	USD    float64 `json:"usd"`
}

// NewsItem is a normalized headline from the news source.
type NewsItem struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

// InsightResult is the AI-generated (or fallback) market commentary.
// FromModel is false when the static fallback was substituted.
type InsightResult struct {
	Text      string `json:"text"`
	Sentiment string `json:"sentiment"`
	FromModel bool   `json:"fromModel"`
}

// MemeItem is the meme-of-the-day record.
type MemeItem struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	PostLink  string `json:"postLink"`
	Subreddit string `json:"subreddit"`
}

// DashboardUser is the identity block embedded in the dashboard payload.
type DashboardUser struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Preferences UserPreferences `json:"preferences"`
}

// DashboardPayload is the merged per-request dashboard response. It is
// assembled fresh on every call and never cached or persisted.
type DashboardPayload struct {
	User      DashboardUser `json:"user"`
	Prices    []PriceQuote  `json:"prices"`
	News      []NewsItem    `json:"news"`
	AIInsight InsightResult `json:"aiInsight"`
	Meme      MemeItem      `json:"meme"`
}

// Feedback is a user-submitted rating and comment.
type Feedback struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationMessage is one turn of a user's advisor chat history.
type ConversationMessage struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

// CoinGeckoID maps tracked symbols to CoinGecko API identifiers.
var CoinGeckoID = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"DOGE": "dogecoin",
}

// CoinGeckoIDToSymbol is the reverse mapping.
var CoinGeckoIDToSymbol map[string]string

func init() {
	CoinGeckoIDToSymbol = make(map[string]string, len(CoinGeckoID))
	for sym, id := range CoinGeckoID {
		CoinGeckoIDToSymbol[id] = sym
	}
}

// TrackedSymbols lists tracked asset symbols in display order.
var TrackedSymbols = []string{"BTC", "ETH", "SOL", "DOGE"}

// AssetAliases maps a tracked symbol to the lowercase tokens that count as a
// mention of it in a headline. Symbols outside this table never match the
// news relevance rule.
var AssetAliases = map[string][]string{
	"BTC":  {"btc", "bitcoin"},
	"ETH":  {"eth", "ethereum"},
	"SOL":  {"sol", "solana"},
	"DOGE": {"doge", "dogecoin"},
}
