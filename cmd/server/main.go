package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coin-concierge/internal/advisor"
	"coin-concierge/internal/auth"
	"coin-concierge/internal/bot"
	"coin-concierge/internal/cache"
	"coin-concierge/internal/config"
	"coin-concierge/internal/dashboard"
	"coin-concierge/internal/db"
	"coin-concierge/internal/handler"
	"coin-concierge/internal/insight"
	"coin-concierge/internal/provider"
	"coin-concierge/internal/repository"
	"coin-concierge/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "coin-concierge/docs"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initPostgresFunc     = db.InitPostgres
	initRedisFunc        = cache.InitRedis
	initTracerFunc       = tracing.InitTracer
	newUserRepoFunc      = repository.NewUserRepository
	newFeedbackRepoFunc  = repository.NewFeedbackRepository
	newConvRepoFunc      = repository.NewConversationRepository
	newAuthServiceFunc   = auth.NewService
	newOpenAIClientFunc  = advisor.NewOpenAIClient
	newAdvisorFunc       = advisor.NewAdvisorService
	startTelegramBotFunc = bot.StartTelegramBot
	newPriceProviderFunc = func(tracer trace.Tracer, cfg *config.Config) dashboard.PriceSource {
		return provider.NewCoinGeckoProvider(tracer, cfg.PriceBaseURL, cfg.PriceCurrency, cfg.PriceCoins)
	}
	newNewsProviderFunc = func(tracer trace.Tracer, cfg *config.Config) dashboard.NewsSource {
		return provider.NewNewsProvider(tracer, cfg.NewsBaseURL, cfg.NewsAPIKey, cfg.NewsLanguage)
	}
	newMemeProviderFunc = func(tracer trace.Tracer, cfg *config.Config) dashboard.MemeSource {
		return provider.NewMemeProvider(tracer, cfg.MemeBaseURL)
	}
	newInsightClientFunc = func(tracer trace.Tracer, cfg *config.Config) dashboard.InsightSource {
		return insight.NewClient(tracer, cfg.InsightBaseURL, cfg.InsightAPIKey, cfg.InsightModel)
	}
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Coin Concierge API
// @version         1.0
// @description     Personalized crypto dashboard aggregator.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Repositories
	userRepo := newUserRepoFunc(db.Pool, tracer)
	feedbackRepo := newFeedbackRepoFunc(db.Pool, tracer)
	convRepo := newConvRepoFunc(db.Pool, tracer)

	// Upstream adapters
	priceProvider := newPriceProviderFunc(tracer, cfg)
	newsProvider := newNewsProviderFunc(tracer, cfg)
	memeProvider := newMemeProviderFunc(tracer, cfg)
	insightClient := newInsightClientFunc(tracer, cfg)

	dashboardSvc := dashboard.NewService(tracer, priceProvider, newsProvider, insightClient, memeProvider, dashboard.Config{
		UpstreamTimeout: time.Duration(cfg.UpstreamTimeoutSecs) * time.Second,
	})

	authSvc := newAuthServiceFunc(tracer, userRepo, cache.Client, time.Duration(cfg.SessionTTLHours)*time.Hour)

	// Advisor (optional)
	var advisorSvc handler.AdvisorQuerier
	if cfg.OpenAIAPIKey != "" {
		llmClient := newOpenAIClientFunc(cfg.OpenAIAPIKey)
		advisorSvc = newAdvisorFunc(tracer, llmClient, priceProvider, convRepo, cfg.AdvisorModel, cfg.AdvisorMaxHistory)
		log.Println("Advisor service enabled")
	}

	// Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(priceProvider, memeProvider, insightClient)

	// Routes
	h := newHandlerFunc(tracer, authSvc, userRepo, dashboardSvc, advisorSvc, feedbackRepo)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("coin-concierge"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
