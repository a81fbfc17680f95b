package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository"
	"github.com/rocketscienceinc/gomoku-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gomoku-backend/internal/service"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
	"github.com/rocketscienceinc/gomoku-backend/transport/rest"
	"github.com/rocketscienceinc/gomoku-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	codeRepo, closeStorage, err := newRoomCodeRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	rng, err := pkg.NewSeededRand()
	if err != nil {
		return fmt.Errorf("could not create random source: %w", err)
	}

	botService := service.NewBotService(rng)
	gamePlayService := service.NewGamePlayService(logger, botService, service.BoardLimits{
		Default: conf.Game.DefaultBoardSize,
		Max:     conf.Game.MaxBoardSize,
	})

	hub := websocket.NewHub(logger)
	gameManager := usecase.NewGameManager(logger, gamePlayService, codeRepo, hub, usecase.CodeOptions{
		Length:   conf.Game.CodeLength,
		Attempts: conf.Game.CodeAttempts,
	})

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameManager)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, hub, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newRoomCodeRepository - redis when enabled, otherwise codes live in memory.
func newRoomCodeRepository(ctx context.Context, conf *config.Config) (repository.RoomCodeRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryRoomCodeRepository(), func() {}, nil
	}

	client, err := storage.NewRedisClient(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewRoomCodeRepository(client, conf.Redis.CodeTTL), func() { _ = client.Close() }, nil
}
