package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/pinterest-downloader/internal/config"
	"github.com/ignatzorin/pinterest-downloader/internal/downloader"
	httpHandlers "github.com/ignatzorin/pinterest-downloader/internal/http/handlers"
	httpRouter "github.com/ignatzorin/pinterest-downloader/internal/http/router"
	"github.com/ignatzorin/pinterest-downloader/internal/logger"
	"github.com/ignatzorin/pinterest-downloader/internal/metrics"
	"github.com/ignatzorin/pinterest-downloader/internal/normalize"
	"github.com/ignatzorin/pinterest-downloader/internal/service"
	"github.com/ignatzorin/pinterest-downloader/internal/validation"
)

func main() {
	startedAt := time.Now()

	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logger.Init(cfg.LogLevel)
	if !cfg.IsProduction() {
		logger.SetTextFormatter()
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("pinterest_downloader")
	}

	// Сервисы.
	validator := validation.NewPinValidator(validation.DefaultRules())
	client := downloader.NewClient(
		cfg.DownloaderBaseURL,
		cfg.DownloaderTimeout,
		cfg.DownloaderUserAgent,
		downloader.WithRecorder(m),
		downloader.WithMaxBodyBytes(cfg.DownloaderMaxBodyMB*1024*1024),
	)
	downloadService := service.NewDownloadService(validator, client, normalize.New())

	// HTTP хэндлеры.
	downloadHandler := httpHandlers.NewDownloadHandler(downloadService)
	healthHandler := httpHandlers.NewHealthHandler(cfg.ServiceName, startedAt)
	rulesHandler := httpHandlers.NewRulesHandler(validator)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, downloadHandler, healthHandler, rulesHandler, m)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		// Запись ответа ждёт апстрим, поэтому таймаут берём с запасом.
		WriteTimeout: cfg.DownloaderTimeout + 10*time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.WithFields(logrus.Fields{
		"port":     cfg.HTTPPort,
		"env":      cfg.Env,
		"upstream": cfg.DownloaderBaseURL,
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}
