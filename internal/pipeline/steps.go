package pipeline

import (
	"context"
	"log/slog"
	"time"

	"gemini-forge/internal/adapters"
	"gemini-forge/internal/domain"
	"gemini-forge/internal/prompt"
)

// generateExecution は 1 回の実行中に判明したメタデータで、ログ・計測・通知に使います。
type generateExecution struct {
	task  domain.TaskKind
	model domain.Model
}

// runNormalizeStep は API Key とタスクを検証し、モデルと言語を解決します。
func (p *GeneratePipeline) runNormalizeStep(ctx context.Context, req domain.GenerateRequest, exec *generateExecution) (domain.NormalizedRequest, error) {
	normalized, err := domain.Normalize(req)
	if err != nil {
		return domain.NormalizedRequest{}, err
	}
	exec.task = normalized.Task
	exec.model = normalized.Model

	slog.DebugContext(ctx, "Request normalized",
		"task", normalized.Task,
		"model", normalized.Model,
		"language", normalized.Language,
	)
	return normalized, nil
}

// runPromptStep はタスク variant を解析し、必要なら URL 本文を取得してプロンプトを組み立てます。
func (p *GeneratePipeline) runPromptStep(ctx context.Context, normalized domain.NormalizedRequest) (prompt.Prompt, error) {
	task, err := prompt.Parse(normalized)
	if err != nil {
		return prompt.Prompt{}, err
	}
	return prompt.Build(ctx, task, normalized.Language, p.appCtx.Fetcher)
}

// runGenerateStep は上流を 1 回だけ呼び出します。再試行はしません。
func (p *GeneratePipeline) runGenerateStep(ctx context.Context, normalized domain.NormalizedRequest, built prompt.Prompt) (string, error) {
	start := time.Now()
	text, err := p.appCtx.Generator.Generate(ctx, adapters.GenerationRequest{
		APIKey: normalized.APIKey,
		Model:  normalized.Model,
		Prompt: built,
	})
	elapsed := time.Since(start)

	if p.appCtx.Metrics != nil {
		p.appCtx.Metrics.ObserveUpstream(string(normalized.Task), string(normalized.Model), elapsed)
	}
	slog.InfoContext(ctx, "Upstream call finished",
		"task", normalized.Task,
		"model", normalized.Model,
		"web_search", built.Config.HasTool(prompt.ToolGoogleSearch),
		"elapsed", elapsed,
		"success", err == nil,
	)
	return text, err
}
