package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/config"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/database"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/router"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/storage"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// db
	pool, err := database.Open(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()
	if err := database.Migrate(context.Background(), pool); err != nil {
		l.Fatal().Err(err).Msg("schema apply failed")
	}

	// blob storage; attachment routes answer 500 until it is configured
	var blobs storage.BlobStore
	if cfg.Blob.Complete() {
		azure, err := storage.NewAzureStore(cfg.Blob)
		if err != nil {
			l.Fatal().Err(err).Msg("blob store init failed")
		}
		blobs = azure
	} else {
		l.Warn().Msg("blob storage not configured; attachment uploads disabled")
	}

	// http
	r := router.New(l, pool, blobs, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
