package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gemini-forge/internal/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-notifier/pkg/factory"
	"github.com/shouni/go-notifier/pkg/slack"
)

// --- インターフェース定義 ---

// FailureNotifier はサーバー側の失敗を運用者に知らせる通知先です。
type FailureNotifier interface {
	NotifyFailure(ctx context.Context, errDetail error, n domain.FailureNotification) error
}

// --- 具象アダプター ---

type SlackAdapter struct {
	httpClient  httpkit.ClientInterface
	webhookURL  string
	slackClient *slack.Client
}

// NewSlackAdapter は webhookURL が空の場合、通知をスキップするアダプターを返します。
func NewSlackAdapter(httpClient httpkit.ClientInterface, webhookURL string) (*SlackAdapter, error) {
	if webhookURL == "" {
		return &SlackAdapter{webhookURL: webhookURL}, nil
	}
	client, err := factory.GetSlackClient(httpClient)
	if err != nil {
		return nil, fmt.Errorf("Slackクライアントの初期化に失敗しました: %w", err)
	}

	return &SlackAdapter{
		httpClient:  httpClient,
		webhookURL:  webhookURL,
		slackClient: client,
	}, nil
}

// NotifyFailure はエラー種別とリクエストのメタデータを Slack に送信します。
func (a *SlackAdapter) NotifyFailure(ctx context.Context, errDetail error, n domain.FailureNotification) error {
	if a.slackClient == nil {
		slog.DebugContext(ctx, "Slackクライアントが初期化されていないため、エラー通知をスキップします。", "kind", n.Kind)
		return nil
	}

	title := "❌ Gemini 生成リクエストが失敗しました"
	content := buildFailureContent(errDetail, n)

	if err := a.slackClient.SendTextWithHeader(ctx, title, content); err != nil {
		return fmt.Errorf("Slackへのエラー通知に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "Slack にエラー通知を送信しました。", "kind", n.Kind, "request_id", n.RequestID)
	return nil
}

// buildFailureContent は mrkdwn 形式の通知本文を組み立てます。
func buildFailureContent(errDetail error, n domain.FailureNotification) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*タスク:* `%s`\n", n.Task))
	sb.WriteString(fmt.Sprintf("*モデル:* `%s`\n", n.Model))
	sb.WriteString(fmt.Sprintf("*種別:* `%s` (HTTP %d)\n", n.Kind, n.Status))
	if n.RequestID != "" {
		sb.WriteString(fmt.Sprintf("*Request ID:* `%s`\n", n.RequestID))
	}

	sb.WriteString("\n*エラー内容:*\n")
	sb.WriteString(fmt.Sprintf("```\n%v\n```\n", errDetail))
	return sb.String()
}
