// Package prompt はタスクごとのプロンプト組み立てと生成設定の選択を担います。
//
// 各タスクは Task インターフェースを実装する variant (RewriteTask, ArticleTask, FBPostTask) で、
// 検証済みのパラメータと純粋なレンダリング関数を持ちます。
package prompt

import (
	"context"
	"time"

	"gemini-forge/internal/domain"
)

// Tool は上流に渡すツール指定です。
type Tool string

const ToolGoogleSearch Tool = "google_search"

const mimeTypePlainText = "text/plain"

// GenerationConfig は 1 回の上流呼び出しに使う生成設定です。Timeout はタスク種別で固定です。
type GenerationConfig struct {
	ResponseMIMEType string
	Temperature      float32
	Tools            []Tool
	Timeout          time.Duration
}

// HasTool は指定ツールが含まれるかを返します。
func (c GenerationConfig) HasTool(tool Tool) bool {
	for _, t := range c.Tools {
		if t == tool {
			return true
		}
	}
	return false
}

// Prompt はレンダリング済みのプロンプトと生成設定の組です。
type Prompt struct {
	Task   domain.TaskKind
	Text   string
	Config GenerationConfig
}

// Task はタスク variant の共通インターフェースです。外部パッケージからの実装はできません。
type Task interface {
	Kind() domain.TaskKind
	Render(lang domain.Language) Prompt
	isTask()
}

// ContentFetcher は URL から本文テキストを取得するコラボレーターです。
type ContentFetcher interface {
	FetchText(ctx context.Context, rawURL string) (string, error)
}

// sourceResolver はレンダリング前に外部から入力を取り込む必要がある variant が実装します。
type sourceResolver interface {
	resolveSource(ctx context.Context, fetcher ContentFetcher) (Task, error)
}

// Build は必要に応じて入力を取得したうえで、プロンプトをレンダリングします。
func Build(ctx context.Context, task Task, lang domain.Language, fetcher ContentFetcher) (Prompt, error) {
	if r, ok := task.(sourceResolver); ok {
		resolved, err := r.resolveSource(ctx, fetcher)
		if err != nil {
			return Prompt{}, err
		}
		task = resolved
	}
	return task.Render(lang), nil
}

// configFor はタスク種別のプロファイルから生成設定を作ります。
func configFor(kind domain.TaskKind, webSearch bool) GenerationConfig {
	cfg := GenerationConfig{
		ResponseMIMEType: mimeTypePlainText,
		Temperature:      profiles[kind].temperature,
		Timeout:          timeoutFor(kind),
	}
	if webSearch {
		cfg.Tools = []Tool{ToolGoogleSearch}
	}
	return cfg
}
