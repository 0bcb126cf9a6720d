package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env         string
	HTTPPort    string
	LogLevel    string
	ServiceName string

	DownloaderBaseURL   string
	DownloaderTimeout   time.Duration
	DownloaderUserAgent string
	DownloaderMaxBodyMB int64

	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration
	MetricsEnabled  bool
}

// IsProduction сообщает, запущено ли приложение в production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env не прочитан, используем переменные окружения: %v", err)
	}

	return FromEnv()
}

// FromEnv собирает конфигурацию только из переменных окружения, без .env.
func FromEnv() (*Config, error) {
	cfg, err := DownloaderFromEnv()
	if err != nil {
		return nil, err
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", "3001")
	cfg.ServiceName = getEnv("SERVICE_NAME", "Pinterest Downloader API")

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		// В development страница может открываться откуда угодно
		cfg.AllowedOrigins = []string{"*"}
	} else {
		for _, origin := range strings.Split(originsStr, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	// Rate limiting настройки
	if cfg.RateLimitLimit, err = parseInt64("RATE_LIMIT_LIMIT", "30"); err != nil {
		return nil, err
	}
	if cfg.RateLimitPeriod, err = parseDuration("RATE_LIMIT_PERIOD", "1m"); err != nil {
		return nil, err
	}

	if cfg.MetricsEnabled, err = strconv.ParseBool(getEnv("METRICS_ENABLED", "true")); err != nil {
		return nil, fmt.Errorf("config: не удалось распарсить METRICS_ENABLED: %w", err)
	}

	return cfg, nil
}

// DownloaderFromEnv читает только APP_ENV, LOG_LEVEL и настройки апстрима.
// Годится для консольных утилит, которым HTTP-часть (CORS, лимиты) не нужна.
func DownloaderFromEnv() (*Config, error) {
	env := getEnv("APP_ENV", EnvDevelopment)

	defaultLevel := "debug"
	if env == EnvProduction {
		defaultLevel = "info"
	}

	cfg := &Config{
		Env:                 env,
		LogLevel:            getEnv("LOG_LEVEL", defaultLevel),
		DownloaderBaseURL:   getEnv("DOWNLOADER_BASE_URL", "https://api.iherta.my.id/downloader/pinterest"),
		DownloaderUserAgent: getEnv("DOWNLOADER_USER_AGENT", defaultUserAgent),
	}

	if strings.TrimSpace(cfg.DownloaderBaseURL) == "" {
		return nil, fmt.Errorf("config: DOWNLOADER_BASE_URL не может быть пустым")
	}

	var err error
	if cfg.DownloaderTimeout, err = parseDuration("DOWNLOADER_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.DownloaderTimeout <= 0 {
		return nil, fmt.Errorf("config: DOWNLOADER_TIMEOUT должен быть положительным")
	}
	if cfg.DownloaderMaxBodyMB, err = parseInt64("DOWNLOADER_MAX_BODY_MB", "2"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// parseDuration читает длительность из переменной окружения.
func parseDuration(key, fallback string) (time.Duration, error) {
	v := getEnv(key, fallback)
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить длительность %s=%q: %w", key, v, err)
	}
	return dur, nil
}

// parseInt64 читает число из переменной окружения.
func parseInt64(key, fallback string) (int64, error) {
	v := getEnv(key, fallback)
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить число %s=%q: %w", key, v, err)
	}
	return num, nil
}
