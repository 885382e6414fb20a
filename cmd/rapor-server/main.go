package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"github.com/nikitaxru/rapor"
	"github.com/nikitaxru/rapor/config"
	"github.com/nikitaxru/rapor/httpapi"
	"github.com/nikitaxru/rapor/importer"
	"github.com/nikitaxru/rapor/report"
	"github.com/nikitaxru/rapor/repository/gormrepo"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	db, err := gormrepo.Open(cfg.DatabaseDSN, lg)
	if err != nil {
		lg.Fatal("database", zap.Error(err))
	}
	repos := gormrepo.NewSet(db)

	renderer, err := rapor.NewDefaultRenderer(lg)
	if err != nil {
		lg.Fatal("built-in templates", zap.Error(err))
	}
	if cfg.TemplateDir != "" {
		n, err := renderer.LoadDir(cfg.TemplateDir)
		if err != nil {
			lg.Fatal("template overrides", zap.String("dir", cfg.TemplateDir), zap.Error(err))
		}
		lg.Info("template overrides loaded", zap.Int("count", n))
	}

	gen := report.NewGenerator(repos, renderer, report.WithLogger(lg))
	im := importer.New(repos.Students, lg)
	h := httpapi.NewHandler(gen, im, lg, cfg.UploadMaxBytes)

	// multipart framing needs headroom over the file limit
	app := httpapi.NewApp(h, int(cfg.UploadMaxBytes)+1<<20, logger.New())
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		lg.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			lg.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		lg.Warn("shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
