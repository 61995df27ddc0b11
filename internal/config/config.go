package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"coin-concierge/internal/domain"
)

// Config enumerates every upstream endpoint, credential, and knob the
// service uses. It is loaded once and passed explicitly into constructors;
// nothing else reads the process environment.
type Config struct {
	DatabaseURL string
	RedisURL    string
	HTTPPort    int

	PriceBaseURL  string
	PriceCurrency string
	PriceCoins    []string

	NewsBaseURL  string
	NewsAPIKey   string
	NewsLanguage string

	InsightBaseURL string
	InsightAPIKey  string
	InsightModel   string

	MemeBaseURL string

	UpstreamTimeoutSecs int

	SessionTTLHours int

	OpenAIAPIKey      string
	AdvisorModel      string
	AdvisorMaxHistory int

	TelegramBotToken string

	SSHPort        int
	SSHHostKeyPath string
}

func Load() *Config {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		NewsAPIKey:       os.Getenv("NEWS_API_KEY"),
		InsightAPIKey:    os.Getenv("INSIGHT_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.PriceBaseURL = strings.TrimSpace(os.Getenv("PRICE_BASE_URL"))
	if cfg.PriceBaseURL == "" {
		cfg.PriceBaseURL = "https://api.coingecko.com/api/v3"
	}
	cfg.PriceCurrency = strings.ToLower(strings.TrimSpace(os.Getenv("PRICE_CURRENCY")))
	if cfg.PriceCurrency == "" {
		cfg.PriceCurrency = "usd"
	}
	cfg.PriceCoins = parseCoins(os.Getenv("PRICE_COINS"))

	cfg.NewsBaseURL = strings.TrimSpace(os.Getenv("NEWS_BASE_URL"))
	if cfg.NewsBaseURL == "" {
		cfg.NewsBaseURL = "https://newsdata.io/api/1"
	}
	if cfg.NewsAPIKey == "" {
		log.Println("Warning: NEWS_API_KEY not set, news requests will be unauthenticated")
	}
	cfg.NewsLanguage = strings.TrimSpace(os.Getenv("NEWS_LANGUAGE"))
	if cfg.NewsLanguage == "" {
		cfg.NewsLanguage = "en"
	}

	cfg.InsightBaseURL = strings.TrimSpace(os.Getenv("INSIGHT_BASE_URL"))
	if cfg.InsightBaseURL == "" {
		cfg.InsightBaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.InsightAPIKey == "" {
		log.Println("Warning: INSIGHT_API_KEY not set, dashboard insight will use the static fallback")
	}
	cfg.InsightModel = strings.TrimSpace(os.Getenv("INSIGHT_MODEL"))
	if cfg.InsightModel == "" {
		cfg.InsightModel = "meta-llama/llama-3.1-8b-instruct"
	}

	cfg.MemeBaseURL = strings.TrimSpace(os.Getenv("MEME_BASE_URL"))
	if cfg.MemeBaseURL == "" {
		cfg.MemeBaseURL = "https://meme-api.com"
	}

	cfg.UpstreamTimeoutSecs = 5
	if v := strings.TrimSpace(os.Getenv("UPSTREAM_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.UpstreamTimeoutSecs = n
		}
	}

	cfg.SessionTTLHours = 24
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionTTLHours = n
		}
	}

	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, advisor chat will be disabled")
	}
	cfg.AdvisorModel = strings.TrimSpace(os.Getenv("ADVISOR_MODEL"))
	if cfg.AdvisorModel == "" {
		cfg.AdvisorModel = "gpt-4o-mini"
	}
	cfg.AdvisorMaxHistory = 20
	if v := os.Getenv("ADVISOR_MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorMaxHistory = n
		}
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}

	cfg.SSHPort = 2222
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}
	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/coin_concierge_host_key"
	}

	return cfg
}

// parseCoins reads a comma-separated PRICE_COINS list. Symbols the price
// provider has no CoinGecko id for are skipped with a warning; an empty or
// fully-invalid list falls back to the default tracked set.
func parseCoins(raw string) []string {
	coins := make([]string, 0, len(domain.TrackedSymbols))
	for _, part := range strings.Split(raw, ",") {
		sym := strings.ToUpper(strings.TrimSpace(part))
		if sym == "" {
			continue
		}
		if _, ok := domain.CoinGeckoID[sym]; !ok {
			log.Printf("Warning: PRICE_COINS symbol %s has no CoinGecko id, skipping", sym)
			continue
		}
		coins = append(coins, sym)
	}
	if len(coins) == 0 {
		return append([]string(nil), domain.TrackedSymbols...)
	}
	return coins
}
