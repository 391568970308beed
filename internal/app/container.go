package app

import (
	"log/slog"
	"sync"

	"gemini-forge/internal/adapters"
	"gemini-forge/internal/config"
	"gemini-forge/internal/metrics"
	"gemini-forge/internal/prompt"
)

// Container はアプリケーションの依存関係（DIコンテナ）を保持します。
// 公開フィールドはプロセス起動時に一度だけ設定され、リクエスト間で状態を持ちません。
type Container struct {
	Config *config.Config

	// External Adapters
	Fetcher   prompt.ContentFetcher
	Generator adapters.GenerativeAdapter
	Notifier  adapters.FailureNotifier

	// Observability
	Metrics *metrics.Service

	// background は非同期の失敗通知の完了待ちに使います。
	background sync.WaitGroup
}

// Go は fn をバックグラウンドで実行し、Close で完了を待てるようにします。
func (c *Container) Go(fn func()) {
	c.background.Add(1)
	go func() {
		defer c.background.Done()
		fn()
	}()
}

// Close は、実行中のバックグラウンド処理の完了を待ちます。
func (c *Container) Close() {
	c.background.Wait()
	slog.Info("Background notifications drained")
}
