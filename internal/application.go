package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/config"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solver/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	humanMark, err := entity.ParseCell(conf.Game.HumanMark)
	if err != nil {
		return fmt.Errorf("bad game.human-mark: %w", err)
	}

	if !humanMark.IsPlayer() {
		return fmt.Errorf("%w: game.human-mark is empty", apperror.ErrInvalidMark)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.Game.TTL)
	solutionRepo := repository.NewSolutionRepository(redisStorage.Connection)

	botService := service.NewBotService(logger, solutionRepo)
	gameManager := usecase.NewGameManager(logger, gameRepo, botService)

	handlers := rest.NewHandlers(logger, gameManager, humanMark)
	httpServer := rest.New(logger, conf.HTTPPort, handlers)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return httpServer.Start(groupCtx)
	})

	if conf.Game.WarmCache {
		group.Go(func() error {
			solved, warmErr := botService.WarmUp(groupCtx)
			if warmErr != nil {
				log.Warn("solution cache warm-up stopped", "solved", solved, "error", warmErr)
				return nil
			}

			log.Info("solution cache warmed up", "solved", solved)
			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
