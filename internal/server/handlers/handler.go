package handlers

import (
	"context"

	"gemini-forge/internal/domain"
)

// GenerateExecutor は生成リクエストを処理するビジネスロジックを抽象化します。
type GenerateExecutor interface {
	Execute(ctx context.Context, req domain.GenerateRequest) (domain.Response, error)
}

// Handler は /api 系エンドポイントの HTTP ハンドラーです。リクエスト間で状態を持ちません。
type Handler struct {
	executor     GenerateExecutor
	maxBodyBytes int64
}

// NewHandler は executor と本文サイズの上限からハンドラーを初期化します。
func NewHandler(executor GenerateExecutor, maxBodyBytes int64) *Handler {
	return &Handler{
		executor:     executor,
		maxBodyBytes: maxBodyBytes,
	}
}
