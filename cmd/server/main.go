package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/config"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/infra"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/repository"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/router"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/service"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/worker"

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

	// Background goroutines: the notification/alert worker pool and the
	// quotation expiration sweep. Worker handlers are wired here (composition
	// root) so that the pool has full access to all infrastructure deps.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	ordenRepo := repository.NewOrdenRepository(db)

	handlers := worker.Handlers{
		Notificacion: worker.NewNotificacionWorker(ordenRepo, mailer, cfg.PDFStoragePath),
		AlertaStock:  worker.NewAlertaStockWorker(mailer, cfg.AlertEmail),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	cotizacionSvc := service.NewCotizacionService(
		repository.NewCotizacionRepository(db),
		ordenRepo,
		repository.NewProductoRepository(db),
		repository.NewProveedorRepository(db),
	)
	worker.StartVencimientoCron(ctx, cotizacionSvc)

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("nomos inventory service listening on :%d", cfg.Port)
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
