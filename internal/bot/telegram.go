package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"coin-concierge/internal/dashboard"
	"coin-concierge/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// StartTelegramBot wires the chat commands to the same upstream adapters the
// dashboard uses. Replies flatten upstream failures into readable text, so a
// broken API never breaks the bot.
func StartTelegramBot(prices dashboard.PriceSource, memes dashboard.MemeSource, insight dashboard.InsightSource) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /price BTC\nSupported: %s", strings.Join(domain.TrackedSymbols, ", ")))
		}
		symbol := strings.ToUpper(args[0])
		if _, ok := domain.CoinGeckoID[symbol]; !ok {
			return c.Send(fmt.Sprintf("Unknown symbol: %s\nSupported: %s", symbol, strings.Join(domain.TrackedSymbols, ", ")))
		}
		quotes, err := prices.FetchQuotes(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching price for %s: %v", symbol, err))
		}
		for _, q := range quotes {
			if q.Symbol == symbol {
				return c.Send(fmt.Sprintf("%s\nPrice: $%.2f", q.Symbol, q.USD))
			}
		}
		return c.Send(fmt.Sprintf("No price available for %s right now", symbol))
	})

	b.Handle("/meme", func(c tele.Context) error {
		meme, err := memes.FetchMeme(context.Background())
		if err != nil || meme == nil {
			return c.Send("No memes right now, the market is serious business today")
		}
		return c.Send(&tele.Photo{
			File:    tele.FromURL(meme.URL),
			Caption: fmt.Sprintf("%s (r/%s)", meme.Title, meme.Subreddit),
		})
	})

	b.Handle("/insight", func(c tele.Context) error {
		if insight == nil || !insight.Configured() {
			return c.Send("The AI insight service is not configured")
		}
		result, err := insight.GenerateInsight(context.Background(), domain.UserPreferences{})
		if err != nil {
			return c.Send(fmt.Sprintf("Insight unavailable: %v", err))
		}
		return c.Send(fmt.Sprintf("%s\n\nSentiment: %s", result.Text, result.Sentiment))
	})

	log.Println("Telegram bot started")
	go b.Start()
}
