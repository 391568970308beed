package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultGeminiBaseURL は Gemini API (generativelanguage) のエンドポイントです。
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/"
	// DefaultFetchTimeout は URL 入力の本文取得に使うタイムアウトです。
	DefaultFetchTimeout   = 15 * time.Second
	DefaultFetchUserAgent = "GeminiForge/1.0"
	DefaultFetchMaxBytes  = 5 << 20
	DefaultMaxBodyBytes   = 10 << 20
	// DefaultNotifyTimeout は Slack 通知 1 件あたりの上限時間です。
	DefaultNotifyTimeout   = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	// Upstream Settings
	GeminiBaseURL string // テストやプロキシ経由の場合に上書きします

	// Content Fetcher Settings
	FetchTimeout   time.Duration
	FetchUserAgent string
	FetchMaxBytes  int64

	// HTTP Settings
	MaxBodyBytes       int64
	CORSAllowedOrigins []string

	// Logging
	LogLevel  string
	LogFormat string

	// Ops Notification
	SlackWebhookURL string
	NotifyTimeout   time.Duration
}

// LoadConfig は .env と環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),

		GeminiBaseURL: getEnv("GEMINI_BASE_URL", DefaultGeminiBaseURL),

		FetchTimeout:   getDuration("FETCH_TIMEOUT", DefaultFetchTimeout),
		FetchUserAgent: getEnv("FETCH_USER_AGENT", DefaultFetchUserAgent),
		FetchMaxBytes:  getInt64("FETCH_MAX_BYTES", DefaultFetchMaxBytes),

		MaxBodyBytes:       getInt64("MAX_BODY_BYTES", DefaultMaxBodyBytes),
		CORSAllowedOrigins: parseCommaSeparatedList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		NotifyTimeout:   DefaultNotifyTimeout,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getDuration は "30s" のような time.Duration 形式を読み込みます。解析できない値はデフォルトに戻します。
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}

func getInt64(key string, fallback int64) int64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return n
}
