package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paulloo/relivator/internal/cache"
	"github.com/paulloo/relivator/internal/config"
	"github.com/paulloo/relivator/internal/database"
	"github.com/paulloo/relivator/internal/handler"
	"github.com/paulloo/relivator/internal/logger"
	"github.com/paulloo/relivator/internal/middleware"
	"github.com/paulloo/relivator/internal/procedure"
	"github.com/paulloo/relivator/internal/repository"
	"github.com/paulloo/relivator/internal/router"
	"github.com/paulloo/relivator/internal/server"
	"github.com/paulloo/relivator/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.New()
	if err != nil {
		// config.New logs fatally on load errors; this covers the rest.
		os.Exit(1)
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		os.Exit(1)
	}

	appLogger := logger.New(cfg, loggerService)

	ctx := context.Background()
	if err := database.Migrate(ctx, appLogger, cfg); err != nil {
		appLogger.Fatal().Err(err).Msg("database migration failed")
	}

	srv, err := server.New(cfg, appLogger, loggerService)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	responseCache := cache.New(cache.NewRedisStore(srv.Redis), appLogger)

	services, err := service.NewServices(srv, repos, responseCache)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialize services")
	}

	builder := procedure.NewBuilder(
		cfg,
		appLogger,
		procedure.ClerkSessionResolver{},
		repos.Board,
		responseCache,
	)

	handlers := handler.NewHandlers(srv, services, builder)
	middlewares := middleware.NewMiddlewares(srv)

	e := router.Setup(srv, middlewares, handlers)
	srv.SetupHTTPServer(e)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Info().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("shutdown error")
	}

	if loggerService != nil {
		loggerService.Shutdown(5 * time.Second)
	}

	appLogger.Info().Msg("bye")
}
