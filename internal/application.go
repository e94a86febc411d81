package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/boardgames/internal/ai"
	"github.com/rocketscienceinc/boardgames/internal/config"
	"github.com/rocketscienceinc/boardgames/internal/engine"
	"github.com/rocketscienceinc/boardgames/internal/repository"
	"github.com/rocketscienceinc/boardgames/internal/repository/storage"
	"github.com/rocketscienceinc/boardgames/internal/transport/console"
	"github.com/rocketscienceinc/boardgames/internal/usecase"
	"github.com/rocketscienceinc/boardgames/internal/variant"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	snapshotRepo, closer, err := openRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closer.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	aiConfig := ai.Config{MaxDepth: conf.AI.MaxDepth, Width: conf.AI.Width, Radius: conf.AI.Radius}
	newStrategy := func(rules variant.Rules) (engine.Strategy, error) {
		strategy, err := ai.New(logger, rules, aiConfig)
		if err != nil {
			return nil, err
		}

		return strategy, nil
	}

	gameManager := usecase.NewGameManager(logger, snapshotRepo, newStrategy, conf.SaveSlot)

	reader, err := console.NewReadline(conf.History)
	if err != nil {
		return fmt.Errorf("could not open terminal: %w", err)
	}

	// run console
	consoleErrCh := make(chan error, 1)
	go func() {
		consoleErrCh <- console.New(logger, gameManager, reader, os.Stdout, conf.Numeric.Size).Run(ctx)
	}()

	select {
	case err = <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return reader.Close()
	}
}

// openRepository - the snapshot store selected by the storage driver.
func openRepository(ctx context.Context, conf *config.Config) (repository.SnapshotRepository, io.Closer, error) {
	switch conf.Storage.Driver {
	case config.DriverRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisSnapshotRepository(redisStorage.Connection), redisStorage, nil
	default:
		sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		return repository.NewSQLiteSnapshotRepository(sqliteStorage.Connection), sqliteStorage, nil
	}
}
