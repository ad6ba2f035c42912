package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umg-robotica/pistas-backend/internal/config"
	"github.com/umg-robotica/pistas-backend/internal/database"
	"github.com/umg-robotica/pistas-backend/internal/logger"
	"github.com/umg-robotica/pistas-backend/internal/models"
	"github.com/umg-robotica/pistas-backend/internal/server"
	"github.com/umg-robotica/pistas-backend/internal/services"
	"github.com/umg-robotica/pistas-backend/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Logging with rotation, to both stdout and file.
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		log.Fatalf("ensure log directory: %v", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, "pistas.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	logger.Init(cfg.Environment == "development", io.MultiWriter(os.Stdout, rotator))

	logger.WithFields(map[string]interface{}{
		"version": version.Full(),
		"port":    cfg.HTTPPort,
	}).Infof("starting %s backend", version.Name)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	srv, err := server.New(db, cfg)
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	// Bootstrap: explicit and idempotent, gated on zero administrators.
	if err := services.NewAdministradorService(db).EnsureDefaultAdmin(); err != nil {
		log.Fatalf("ensure default administrator: %v", err)
	}

	// Nightly summary of the previous day's game activity.
	estadisticas := services.NewEstadisticaService(db)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("5 0 * * *", func() {
		ayer := time.Now().AddDate(0, 0, -1).Format(models.FechaLayout)
		visitas, exitos, fallos, err := estadisticas.TotalesDelDia(ayer)
		if err != nil {
			logger.Log().WithError(err).Error("failed to compute daily stats summary")
			return
		}
		logger.WithFields(map[string]interface{}{
			"fecha":   ayer,
			"visitas": visitas,
			"exitos":  exitos,
			"fallos":  fallos,
		}).Info("daily stats summary")
	}); err != nil {
		log.Fatalf("schedule daily summary: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
