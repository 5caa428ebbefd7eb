package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/tinyurl-service/internal/adapter/repository/memory"
	"github.com/vadimbarashkov/tinyurl-service/internal/config"
	"github.com/vadimbarashkov/tinyurl-service/internal/entity"
	"github.com/vadimbarashkov/tinyurl-service/internal/generator"
	"github.com/vadimbarashkov/tinyurl-service/internal/logger"
	"github.com/vadimbarashkov/tinyurl-service/internal/usecase"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/tinyurl-service/internal/adapter/delivery/http"
)

const serviceName = "tinyurl-service"

func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("%s: failed to create logger: %w", op, err)
	}
	defer func() { _ = log.Sync() }()

	log = log.With(zap.String("service", serviceName), zap.String("env", cfg.Env))

	gen, err := newGenerator(&cfg.Shortener)
	if err != nil {
		return fmt.Errorf("%s: failed to create generator: %w", op, err)
	}

	urlRepo := memory.NewURLRepository(memory.WithShardCount(cfg.Shortener.ShardCount))

	urlUseCase, err := usecase.New(gen, urlRepo, &usecase.Limits{
		MaxAddAttempts:       cfg.Shortener.MaxAddAttempts,
		MaxTotalItems:        cfg.Shortener.MaxTotalItems,
		MonitorMaxTotalItems: cfg.Shortener.MonitorMaxTotalItems,
	}, log)
	if err != nil {
		return fmt.Errorf("%s: failed to create url use case: %w", op, err)
	}

	router := delivery.NewRouter(newHTTPLogger(cfg), log, urlUseCase)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server",
			zap.String("addr", server.Addr),
			zap.String("generator", cfg.Shortener.Generator),
		)

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		log.Info("shutting down http server", zap.Int("total_items", urlUseCase.GetTotalItemsNumber()))

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}

func newGenerator(cfg *config.Shortener) (usecase.ShortURIGenerator, error) {
	const op = "app.newGenerator"

	switch cfg.Generator {
	case config.GeneratorRandom:
		gen, err := generator.NewRandom(cfg.ShortURILength)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return gen, nil
	case config.GeneratorMD5:
		gen, err := generator.NewHash(cfg.ShortURILength)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("%s: unknown generator %q: %w", op, cfg.Generator, entity.ErrInvalidArgument)
	}
}

func newHTTPLogger(cfg *config.Config) *httplog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	return httplog.NewLogger(serviceName, httplog.Options{
		JSON:     true,
		LogLevel: level,
		Concise:  true,
		Tags: map[string]string{
			"env": cfg.Env,
		},
	})
}
