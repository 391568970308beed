package builder

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"gemini-forge/internal/adapters"
	"gemini-forge/internal/app"
	"gemini-forge/internal/config"
	"gemini-forge/internal/metrics"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// BuildContainer は外部サービスとの接続を準備し、依存関係を組み立てます。
// API Key はリクエストごとに届くため、ここでは上流クライアントを生成しません。
func BuildContainer(ctx context.Context, cfg *config.Config) (*app.Container, error) {
	// 1. 基盤クライアントの初期化 (Slack 通知用)
	httpClient := httpkit.New(cfg.NotifyTimeout)

	// 2. アダプターの初期化
	// 上流呼び出しのタイムアウトはタスクごとにコンテキストで制御します。
	generator := adapters.NewGeminiAdapter(cfg.GeminiBaseURL, &http.Client{})
	fetcher := adapters.NewWebReaderAdapter(cfg.FetchTimeout, cfg.FetchUserAgent, cfg.FetchMaxBytes)

	slack, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}

	slog.InfoContext(ctx, "Application container built",
		"gemini_base_url", cfg.GeminiBaseURL,
		"slack_enabled", cfg.SlackWebhookURL != "",
	)

	return &app.Container{
		Config:    cfg,
		Fetcher:   fetcher,
		Generator: generator,
		Notifier:  slack,
		Metrics:   metrics.New(),
	}, nil
}
