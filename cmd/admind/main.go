package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/example/shop-admin-service/internal/adapter/cache"
	"github.com/example/shop-admin-service/internal/adapter/httpapi"
	"github.com/example/shop-admin-service/internal/adapter/identity"
	"github.com/example/shop-admin-service/internal/adapter/natsstan"
	"github.com/example/shop-admin-service/internal/adapter/pgstore"
	"github.com/example/shop-admin-service/internal/adapter/sanity"
	"github.com/example/shop-admin-service/internal/config"
	"github.com/example/shop-admin-service/internal/domain"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	logger := newLogger(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("build content store")
	}
	defer cleanup()

	var events domain.EventPublisher
	if cfg.Stan.Enabled {
		pub := &natsstan.Publisher{
			ClusterID: cfg.Stan.ClusterID,
			ClientID:  cfg.Stan.ClientID,
			URL:       cfg.Stan.URL,
			Subject:   cfg.Stan.Subject,
			Log:       logger,
		}
		defer pub.Close()
		events = pub
	}

	var imageURL func(ref string) (string, error)
	if cfg.StoreDriver == config.DriverSanity {
		imageURL = func(ref string) (string, error) {
			return sanity.ImageURL(cfg.Sanity.ProjectID, cfg.Sanity.Dataset, ref)
		}
	}

	server := httpapi.NewServer(httpapi.Deps{
		Store:      store,
		Verifier:   identity.NewHTTPVerifier(cfg.IdentityEndpoint),
		Events:     events,
		AdminEmail: cfg.AdminEmail,
		NewMirror:  func() domain.SessionMirror { return cache.NewSessionMirror() },
		ImageURL:   imageURL,
		Log:        logger,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: server.Router}
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("store", cfg.StoreDriver).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}

func buildStore(ctx context.Context, cfg config.Config) (domain.ContentStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgstore.NewStore(pool), pool.Close, nil
	default:
		client := sanity.NewClient(sanity.Config{
			ProjectID:  cfg.Sanity.ProjectID,
			Dataset:    cfg.Sanity.Dataset,
			APIVersion: cfg.Sanity.APIVersion,
			Token:      cfg.Sanity.Token,
		})
		return sanity.NewStore(client), func() {}, nil
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
