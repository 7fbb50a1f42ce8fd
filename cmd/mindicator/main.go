package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/config"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/dataset"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/handlers"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/live"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/logging"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/notify"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/transit"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/userdata"
)

func main() {
	// .env first, then .env.local which overrides it
	config.LoadEnvFiles(".")

	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Fatalw("failed to load configuration", "error", err)
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	ds, err := loadDataset(cfg.DatasetPath)
	if err != nil {
		log.Fatalw("failed to load network dataset", "error", err)
	}
	core := transit.New(ds, transit.Options{Seed: cfg.RandomSeed})
	log.Infow("network loaded", "stations", core.StationCount(), "timetables", len(ds.Timetables))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to open user data store", "driver", cfg.StoreDriver, "error", err)
	}
	defer store.Close()
	log.Infow("user data store ready", "driver", cfg.StoreDriver)

	publisher := openPublisher(cfg, log)
	defer publisher.Close()

	feed := notify.NewFeed(ds.Notifications(core.Now()))
	notifier := notify.NewNotifier(feed, publisher, log, core.Now)

	// Live train refresh loop
	go core.RunLive(ctx, cfg.LiveRefreshInterval, func(transitions []live.Transition) {
		log.Debugw("live trains changed status", "count", len(transitions))
		notifier.HandleTransitions(ctx, transitions)
	})

	router := handlers.NewRouter(handlers.RouterConfig{
		Core:          core,
		UserData:      userdata.NewService(store, core.Now),
		Notifications: feed,
		Notifier:      notifier,
		Log:           log,
		CORSOrigins:   cfg.CORSOrigins,
		StaticDir:     cfg.StaticDir,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("API server starting", "port", cfg.Port, "liveRefresh", cfg.LiveRefreshInterval)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnw("graceful shutdown failed", "error", err)
	}
}

func loadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Load()
	}
	return dataset.LoadFile(path)
}

func openStore(ctx context.Context, cfg *config.Config) (userdata.Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		return userdata.OpenPostgres(ctx, cfg.DatabaseURL)
	case "redis":
		return userdata.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisKeyPrefix)
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return userdata.OpenSQLite(ctx, cfg.SQLitePath)
	}
}

// openPublisher connects to the broker when one is configured and falls back
// to logging notifications otherwise
func openPublisher(cfg *config.Config, log *zap.SugaredLogger) notify.Publisher {
	if cfg.AMQPURL == "" {
		return notify.NewLogPublisher(log)
	}
	publisher, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.NotifyQueue)
	if err != nil {
		log.Warnw("broker unavailable, logging notifications instead", "queue", cfg.NotifyQueue, "error", err)
		return notify.NewLogPublisher(log)
	}
	log.Infow("publishing notifications", "queue", cfg.NotifyQueue)
	return publisher
}
