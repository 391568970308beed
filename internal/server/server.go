package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gemini-forge/internal/builder"
	"gemini-forge/internal/config"
	"gemini-forge/internal/logger"
	"gemini-forge/internal/pipeline"
)

// デフォルトのシャットダウン猶予時間
const defaultShutdownTimeout = 15 * time.Second

// readHeaderTimeout はヘッダー受信の上限です。本文の読み取りと上流の待ち時間は含みません。
const readHeaderTimeout = 10 * time.Second

// Run は、設定ロード、バリデーション、サーバーのライフサイクル管理を行います。
func Run(ctx context.Context) error {
	cfg := config.LoadConfig()
	slog.SetDefault(logger.New(os.Stdout, logger.FromConfig(cfg.LogLevel, cfg.LogFormat)))

	if err := config.ValidateEssentialConfig(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	appCtx, err := builder.BuildContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build application container: %w", err)
	}
	defer func() {
		slog.Info("♻️ Closing application container...")
		appCtx.Close()
	}()

	// 1. ハンドラーの組み立て
	generatePipeline := pipeline.NewGeneratePipeline(appCtx)
	h, err := builder.BuildHandlers(appCtx, generatePipeline)
	if err != nil {
		return fmt.Errorf("failed to build handlers: %w", err)
	}

	// 2. ルーターの構築
	router := NewRouter(cfg, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// --- サーバー起動とシグナル待機 ---
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("🚀 Server starting...", "port", cfg.Port, "gemini_base_url", cfg.GeminiBaseURL)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		return shutdownServer(srv, cfg.ShutdownTimeout)

	case <-shutdown:
		return shutdownServer(srv, cfg.ShutdownTimeout)
	}

	return nil
}

// shutdownServer は処理中のリクエストの完了を待ってからサーバーを停止します。
func shutdownServer(srv *http.Server, timeout time.Duration) error {
	slog.Info("⚠️ Starting graceful shutdown...")

	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed, forcing close", "error", err)

		// シャットダウンに失敗した場合は強制的にクローズしてリソースを解放する
		if closeErr := srv.Close(); closeErr != nil {
			return fmt.Errorf("could not stop server: shutdown error: %v, close error: %v", err, closeErr)
		}
		return fmt.Errorf("could not stop server gracefully: %w", err)
	}

	slog.Info("✅ Server stopped cleanly")
	return nil
}
