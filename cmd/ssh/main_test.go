package main

import (
	"context"
	"os"
	"testing"
	"time"

	"coin-concierge/internal/config"
	"coin-concierge/internal/dashboard"
	"coin-concierge/internal/repository"

	"github.com/charmbracelet/ssh"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	restore := stubSSHDeps()
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func stubSSHDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitPostgres := initPostgresFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origNewUserRepo := newUserRepoFunc
	origNewSSHUserRepo := newSSHUserRepoFunc
	origNewPrice := newPriceProviderFunc
	origNewNews := newNewsProviderFunc
	origNewMeme := newMemeProviderFunc
	origNewInsight := newInsightClientFunc
	origNewWishServer := newWishServerFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			SSHPort:             2222,
			SSHHostKeyPath:      ".ssh/test_key",
			UpstreamTimeoutSecs: 1,
		}
	}
	initPostgresFunc = func(context.Context) {}
	initRedisFunc = func(context.Context) {}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newUserRepoFunc = func(repository.PgxPool, trace.Tracer) *repository.UserRepository {
		return nil
	}
	newSSHUserRepoFunc = func(repository.PgxPool, trace.Tracer) *repository.SSHUserRepository {
		return nil
	}
	newPriceProviderFunc = func(trace.Tracer, *config.Config) dashboard.PriceSource { return nil }
	newNewsProviderFunc = func(trace.Tracer, *config.Config) dashboard.NewsSource { return nil }
	newMemeProviderFunc = func(trace.Tracer, *config.Config) dashboard.MemeSource { return nil }
	newInsightClientFunc = func(trace.Tracer, *config.Config) dashboard.InsightSource { return nil }
	newWishServerFunc = func(ops ...ssh.Option) (*ssh.Server, error) {
		return nil, nil
	}
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initPostgresFunc = origInitPostgres
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		newUserRepoFunc = origNewUserRepo
		newSSHUserRepoFunc = origNewSSHUserRepo
		newPriceProviderFunc = origNewPrice
		newNewsProviderFunc = origNewNews
		newMemeProviderFunc = origNewMeme
		newInsightClientFunc = origNewInsight
		newWishServerFunc = origNewWishServer
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
	}
}
