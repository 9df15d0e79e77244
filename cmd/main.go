package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"mushroom-doctor/config"
	"mushroom-doctor/internal/api/telegram"
	"mushroom-doctor/internal/api/web"
	"mushroom-doctor/internal/container"
	"mushroom-doctor/internal/domain/port"
	"mushroom-doctor/internal/infrastructure/describer"
	"mushroom-doctor/internal/infrastructure/inference"
	"mushroom-doctor/internal/infrastructure/storage"
	"mushroom-doctor/internal/infrastructure/vision"
	"mushroom-doctor/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Хранилище настроек (язык интерфейса)
	prefs, closePrefs, err := openPreferences(ctx, cfg)
	if err != nil {
		lg.Fatal("preferences store", zap.String("backend", cfg.PrefsBackend), zap.Error(err))
	}
	defer closePrefs()

	client := inference.NewClient(cfg.InferenceURL, lg)
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := client.Ping(pingCtx); err != nil {
		// сервис на бесплатном хостинге может просыпаться долго
		lg.Warn("inference service not reachable yet", zap.String("url", cfg.InferenceURL), zap.Error(err))
	}
	cancel()

	devices := vision.NewGoCVDevices(cfg.CameraFrontDevice, cfg.CameraRearDevice)
	if !devices.Supported() {
		lg.Info("camera capture disabled: built without gocv")
	}

	var insight port.InsightDescriber
	if cfg.GeminiAPIKey != "" {
		gemini, err := describer.NewGeminiDescriber(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			lg.Fatal("gemini describer", zap.Error(err))
		}
		defer gemini.Close()
		insight = gemini
	}

	// Собираем сервисы приложения
	appContainer := container.New(container.Deps{
		Sessions:  storage.NewMemorySessionRepository(),
		Prefs:     prefs,
		Devices:   devices,
		Inference: client,
		Renderer:  vision.NewOverlayRenderer(cfg.DisplayWidth, cfg.DisplayHeight),
		Describer: insight,
		Threshold: cfg.ConfidenceThreshold,
		Logger:    lg,
	})

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		appContainer.SessionService.Janitor(ctx, cfg.SessionIdleTimeout, time.Minute)
	}()

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, lg)
		if err != nil {
			lg.Fatal("create bot", zap.Error(err))
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			lg.Info("bot is running")
			if err := bot.Run(ctx); err != nil {
				lg.Error("bot stopped", zap.Error(err))
			}
		}()
	}

	if cfg.HTTPAddr != "" {
		server := web.NewServer(appContainer, client, lg)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.Run(ctx, cfg.HTTPAddr); err != nil {
				lg.Error("http server stopped", zap.Error(err))
				stop()
			}
		}()
	}

	wg.Wait()
	lg.Info("shutdown complete")
}

func openPreferences(ctx context.Context, cfg *config.Config) (port.PreferenceStore, func(), error) {
	noop := func() {}

	switch cfg.PrefsBackend {
	case config.PrefsSQLite:
		store, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil

	case config.PrefsPostgres:
		store, err := storage.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil

	case config.PrefsRedis:
		rdb, err := storage.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewRedisPreferenceStore(rdb), func() { _ = rdb.Close() }, nil

	case config.PrefsMemory:
		return storage.NewMemoryPreferenceStore(), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown backend %q", cfg.PrefsBackend)
}
