package pipeline

import (
	"context"
	"log/slog"

	"gemini-forge/internal/config"
	"gemini-forge/internal/domain"
	"gemini-forge/internal/logger"
)

// notifyError はエラー発生時に Notifier を通じて通知を行います。
// 送信はバックグラウンドで行い、レスポンスの返却を待たせません。
func (p *GeneratePipeline) notifyError(ctx context.Context, exec *generateExecution, de *domain.Error) {
	if p.appCtx.Notifier == nil {
		return
	}

	req := domain.FailureNotification{
		RequestID: logger.RequestIDFrom(ctx),
		Task:      exec.task,
		Model:     exec.model,
		Kind:      de.Kind,
		Status:    de.Status,
	}

	timeout := config.DefaultNotifyTimeout
	if p.appCtx.Config != nil && p.appCtx.Config.NotifyTimeout > 0 {
		timeout = p.appCtx.Config.NotifyTimeout
	}

	// クライアント切断でキャンセルされないよう、リクエストのコンテキストから切り離します。
	notifyCtx := context.WithoutCancel(ctx)
	p.appCtx.Go(func() {
		ctx, cancel := context.WithTimeout(notifyCtx, timeout)
		defer cancel()

		if err := p.appCtx.Notifier.NotifyFailure(ctx, de, req); err != nil {
			slog.ErrorContext(ctx, "Failed to send error notification", "error", err)
		}
	})
}
