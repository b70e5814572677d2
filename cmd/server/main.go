package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopcat/internal/assoc"
	"shopcat/internal/config"
	"shopcat/internal/infra"
	"shopcat/internal/repository"
	"shopcat/internal/router"
	"shopcat/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Association map store: redis by default, badger for single-node
	// deployments without a redis server.
	var store assoc.Store
	switch cfg.AssocStore {
	case "badger":
		badgerStore, closeStore, err := assoc.NewBadgerStore(cfg.BadgerPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.BadgerPath).Msg("failed to open badger store")
		}
		defer func() {
			if err := closeStore(); err != nil {
				log.Error().Err(err).Msg("badger close failed")
			}
		}()
		store = badgerStore
	default:
		store = assoc.NewRedisStore(rdb)
	}

	engine := assoc.NewEngine(store)
	engine.Load(ctx)

	// Start goroutine worker pool for async tasks (catalog exports, email).
	// Worker handlers are wired here (composition root) so that the pool has
	// full access to all infrastructure dependencies.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	brandRepo := repository.NewBrandRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	handlers := worker.Handlers{
		Export: worker.NewExportWorker(brandRepo, categoryRepo, productRepo, engine, dispatcher, rdb, cfg.ExportStoragePath),
		Email:  worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	// Periodic inference reconcile — catches associations the synchronous
	// write paths missed.
	worker.StartReconcileCron(ctx, worker.ReconcileCronConfig{
		ProductRepo: productRepo,
		Engine:      engine,
	})

	r := router.New(cfg, db, rdb, engine, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("shopcat backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
