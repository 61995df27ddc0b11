package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"coin-concierge/internal/cache"
	"coin-concierge/internal/config"
	"coin-concierge/internal/dashboard"
	"coin-concierge/internal/db"
	"coin-concierge/internal/domain"
	"coin-concierge/internal/insight"
	"coin-concierge/internal/provider"
	"coin-concierge/internal/repository"
	"coin-concierge/internal/tui"
	"coin-concierge/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	gossh "golang.org/x/crypto/ssh"
)

// ctxKey is a typed context key to avoid collisions.
type ctxKey string

const sshUserKey ctxKey = "ssh_user"

var (
	loadEnvFunc        = godotenv.Load
	loadConfigFunc     = config.Load
	initPostgresFunc   = db.InitPostgres
	initRedisFunc      = cache.InitRedis
	initTracerFunc     = tracing.InitTracer
	newUserRepoFunc    = repository.NewUserRepository
	newSSHUserRepoFunc = repository.NewSSHUserRepository
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
	newWishServerFunc = wish.NewServer
	setupSignalNotify = ossignal.Notify
	waitForSignalFunc = func(quit <-chan os.Signal) { <-quit }
)

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
	sshUserRepo := newSSHUserRepoFunc(db.Pool, tracer)

	// Upstream adapters and the dashboard assembler
	dashboardSvc := dashboard.NewService(
		tracer,
		newPriceProviderFunc(tracer, cfg),
		newNewsProviderFunc(tracer, cfg),
		newInsightClientFunc(tracer, cfg),
		newMemeProviderFunc(tracer, cfg),
		dashboard.Config{UpstreamTimeout: time.Duration(cfg.UpstreamTimeoutSecs) * time.Second},
	)

	// Build Wish SSH server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			fingerprint := gossh.FingerprintSHA256(key)
			user, err := sshUserRepo.FindByFingerprint(context.Background(), fingerprint)
			if err != nil || user == nil {
				log.Printf("SSH auth denied: fingerprint=%s err=%v", fingerprint, err)
				return false
			}
			ctx.SetValue(sshUserKey, user)
			_ = sshUserRepo.UpdateLastLogin(context.Background(), user.ID)
			log.Printf("SSH auth accepted: user=%s fingerprint=%s", user.Username, fingerprint)
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				sshUser, _ := s.Context().Value(sshUserKey).(*repository.SSHUser)

				user := domain.User{Name: "unknown"}
				if sshUser != nil {
					if account, err := userRepo.FindByID(context.Background(), sshUser.UserID); err == nil {
						user = *account
					} else {
						user = domain.User{ID: sshUser.UserID, Name: sshUser.Username}
					}
				}

				model := tui.NewAppModel(tui.Services{
					Dashboard: dashboardSvc,
					User:      user,
				})
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
