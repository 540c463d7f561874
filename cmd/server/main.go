package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "portfolio-site/internal/adapter/http"
	"portfolio-site/internal/bootstrap"
	"portfolio-site/internal/usecase"
	infra "portfolio-site/pkg/infrastructure"
)

func main() {
	cfg, log, err := bootstrap.Setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("document store unavailable", "error", err)
	}
	defer closeStore()

	blobs, uploadDir, closeBlobs, err := bootstrap.OpenBlobStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("upload store unavailable", "error", err)
	}
	defer closeBlobs()

	renderer := infra.NewChromedpRenderer(cfg.ChromePath)
	svc := usecase.NewService(store, renderer, blobs, log)

	app := httpadapter.NewApp(cfg.BodyLimitMB<<20, log)
	admin := httpadapter.NewAdminMiddleware(log, cfg.AdminMode, cfg.AdminToken)
	httpadapter.NewHandler(svc, log, admin).Register(app, uploadDir)

	if cfg.AdminMode && cfg.AdminToken == "" {
		log.Warn("admin mode enabled without ADMIN_TOKEN; mutations are open to anyone who can reach the server")
	}

	go func() {
		log.Info("server listening", "port", cfg.Port, "store", cfg.StoreBackend, "uploads", cfg.Upload.Backend)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
