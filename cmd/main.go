package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"focustimer/internal/config"
	"focustimer/internal/core/budget"
	"focustimer/internal/core/streak"
	"focustimer/internal/core/timer"
	"focustimer/internal/logging"
	"focustimer/internal/platform"
	"focustimer/internal/storage"
	"focustimer/internal/ui/console"
)

const appName = "focustimer"

func main() {
	configPath := flag.String("config", "", "path to config file (default ./focustimer.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Commands and status go to stdout, so logs go to stderr.
	logger, err := logging.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Error("another instance is using this data dir", "error", err)
		} else {
			logger.Error("focustimer stopped", "error", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	dataDir := cfg.Storage.DataDir
	if dataDir == "" {
		resolved, err := platform.DefaultDataDir(appName)
		if err != nil {
			return err
		}
		dataDir = resolved
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	guard, err := platform.AcquireSingleInstance(dataDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.OpenSettings(resolvePath(dataDir, cfg.Storage.SettingsFile), logger)
	if err != nil {
		return err
	}
	sessions, err := storage.OpenSessions(ctx, resolvePath(dataDir, cfg.Storage.SessionsDB), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			logger.Warn("close session database", "error", err)
		}
	}()

	monotonic := platform.NewMonotonicClock()
	budgetManager, err := budget.New(ctx, settings, monotonic, logger)
	if err != nil {
		return err
	}
	streakManager, err := streak.New(ctx, settings, monotonic, logger)
	if err != nil {
		return err
	}

	manager := timer.New(timer.Dependencies{
		Clock:    monotonic,
		Budget:   budgetManager,
		Streak:   streakManager,
		Sessions: sessions,
		Settings: settings,
		Logger:   logger,
	}, timer.Config{CountUpHardLimit: cfg.Timer.CountUpHardLimit})
	defer manager.Close()

	alarm := platform.NewDeadlineAlarm(monotonic, manager, logger)
	defer alarm.Close()
	manager.AddListener(logging.EventListener(logger))
	manager.AddListener(alarm)

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go func() {
		if err := manager.WatchLabels(watchCtx, settings); err != nil {
			logger.Error("label watch stopped", "error", err)
		}
	}()

	logger.Info("focustimer ready",
		"data_dir", dataDir,
		"settings", settings.Path(),
		"lock", guard.Path())

	terminal := console.New(manager, settings, sessions, monotonic, os.Stdout, logger)
	return terminal.Run(ctx, os.Stdin)
}

func resolvePath(dataDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dataDir, name)
}
