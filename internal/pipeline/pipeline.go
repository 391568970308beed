package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"gemini-forge/internal/app"
	"gemini-forge/internal/domain"
	"gemini-forge/internal/metrics"
)

// GeneratePipeline は 1 リクエスト分の生成処理を順に実行します。
// 正規化 → タスク解析 → プロンプト構築 → 上流呼び出し → レスポンス変換 の各段で失敗したら即座に終了します。
type GeneratePipeline struct {
	appCtx *app.Container
}

func NewGeneratePipeline(appCtx *app.Container) *GeneratePipeline {
	return &GeneratePipeline{
		appCtx: appCtx,
	}
}

// Execute はリクエストを処理し、タスクに対応するフィールドを 1 つだけ持つレスポンスを返します。
// 返すエラーは常に *domain.Error です。
func (p *GeneratePipeline) Execute(ctx context.Context, req domain.GenerateRequest) (domain.Response, error) {
	exec := &generateExecution{}

	resp, err := p.execute(ctx, req, exec)
	if err != nil {
		de := domain.AsError(err)
		p.observe(exec, string(de.Kind))
		p.handleFailure(ctx, exec, de)
		return domain.Response{}, de
	}

	p.observe(exec, metrics.OutcomeSuccess)
	slog.InfoContext(ctx, "Generation completed",
		"task", exec.task,
		"model", exec.model,
		"output_chars", len([]rune(resp.Text)),
	)
	return resp, nil
}

func (p *GeneratePipeline) execute(ctx context.Context, req domain.GenerateRequest, exec *generateExecution) (domain.Response, error) {
	normalized, err := p.runNormalizeStep(ctx, req, exec)
	if err != nil {
		return domain.Response{}, err
	}

	built, err := p.runPromptStep(ctx, normalized)
	if err != nil {
		return domain.Response{}, err
	}

	text, err := p.runGenerateStep(ctx, normalized, built)
	if err != nil {
		return domain.Response{}, err
	}

	return domain.NewResponse(normalized.Task, text)
}

func (p *GeneratePipeline) observe(exec *generateExecution, outcome string) {
	if p.appCtx.Metrics == nil {
		return
	}
	p.appCtx.Metrics.ObserveRequest(string(exec.task), outcome)
}

// handleFailure は失敗をログに記録し、サーバー側の失敗であれば運用者へ通知します。
func (p *GeneratePipeline) handleFailure(ctx context.Context, exec *generateExecution, de *domain.Error) {
	attrs := []any{
		"task", exec.task,
		"model", exec.model,
		"kind", de.Kind,
		"status", de.Status,
		"error", de,
	}
	if !de.IsServerSide() {
		slog.WarnContext(ctx, "Generation rejected", attrs...)
		return
	}
	// クライアント切断による中断は運用者への通知対象外です。
	if errors.Is(ctx.Err(), context.Canceled) {
		slog.InfoContext(ctx, "Generation aborted by client disconnect", attrs...)
		return
	}

	slog.ErrorContext(ctx, "Generation failed", attrs...)
	p.notifyError(ctx, exec, de)
}
