package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stockledger/internal/auth"
	"stockledger/internal/cache"
	"stockledger/internal/config"
	"stockledger/internal/infrastructure/database"
	"stockledger/internal/infrastructure/events"
	"stockledger/internal/infrastructure/logger"
	"stockledger/internal/infrastructure/secrets"
	"stockledger/internal/movement"
	"stockledger/internal/product"
	"stockledger/internal/server"
	"stockledger/internal/stock"
	"stockledger/internal/user"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "internal/config/config.yaml"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.SecretName != "" {
		client, err := secrets.NewClient(ctx, cfg.AWS.Region)
		if err != nil {
			zapLogger.Fatal("creating secrets client", zap.Error(err))
		}
		cfg.Database, err = secrets.ResolveDatabaseConfig(ctx, client, cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("loading database secret", zap.Error(err))
		}
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected", zap.String("driver", cfg.Database.Driver))

	if err := database.EnsureSchema(ctx, db); err != nil {
		zapLogger.Fatal("applying schema", zap.Error(err))
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			zapLogger.Fatal("connecting to broker", zap.Error(err))
		}
		publisher = amqpPublisher
		zapLogger.Info("publishing view invalidations", zap.String("exchange", cfg.Events.Exchange))
	}
	defer publisher.Close()

	views := cache.NewViews(cfg.Cache.TTL)
	invalidator := cache.NewInvalidator(views, publisher, zapLogger)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	router := server.NewRouter(server.Modules{
		Auth:      user.NewModule(db, tokens, zapLogger),
		Products:  product.NewModule(db, views, invalidator, zapLogger),
		Movements: movement.NewModule(db, views, invalidator, zapLogger),
		Stock:     stock.NewModule(db, views, zapLogger),
	}, tokens, db, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		zapLogger.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLogger.Fatal("server stopped with error", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
