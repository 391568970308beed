package prompt

import (
	"context"
	"strings"

	"gemini-forge/internal/domain"
)

// InputType は rewrite_content の入力の種類です。
type InputType string

const (
	InputText InputType = "text"
	InputURL  InputType = "url"
)

// RewriteTask は rewrite_content の検証済みパラメータです。
type RewriteTask struct {
	Content   string
	InputType InputType
	Mode      string
	Tone      string

	// fromURL は Content が URL から取得した本文に置き換わったことを示します。
	fromURL bool
}

func newRewriteTask(p domain.GenerateRequest) (RewriteTask, error) {
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return RewriteTask{}, domain.NewError(domain.KindInvalidInput, "錯誤：改寫內容不可為空。")
	}

	inputType := InputText
	if strings.EqualFold(strings.TrimSpace(p.InputType), string(InputURL)) {
		inputType = InputURL
	}

	mode := strings.TrimSpace(p.Mode)
	if mode == "" {
		mode = defaultMode
	}

	return RewriteTask{
		Content:   content,
		InputType: inputType,
		Mode:      mode,
		Tone:      p.Tone,
	}, nil
}

func (RewriteTask) Kind() domain.TaskKind { return domain.TaskRewriteContent }

func (RewriteTask) isTask() {}

// resolveSource は URL 入力の場合に本文を取得し、Content を置き換えた新しい task を返します。
func (t RewriteTask) resolveSource(ctx context.Context, fetcher ContentFetcher) (Task, error) {
	if t.InputType != InputURL || t.fromURL {
		return t, nil
	}
	if fetcher == nil {
		return nil, domain.NewError(domain.KindInternal, "錯誤：伺服器未設定 URL 抓取功能。")
	}

	text, err := fetcher.FetchText(ctx, t.Content)
	if err != nil || strings.TrimSpace(text) == "" {
		return nil, domain.NewError(domain.KindFetchFailed, "錯誤：無法抓取 URL 內容，請檢查網址或伺服器設定。").Wrap(err)
	}

	t.Content = text
	t.fromURL = true
	return t, nil
}

// Render は改寫指示、原文ブロック、出力マーカーの順でプロンプトを組み立てます。
func (t RewriteTask) Render(lang domain.Language) Prompt {
	toneLine := "風格：中性"
	if tone, ok := customTone(t.Tone); ok {
		toneLine = "風格：" + tone
	}

	instructions := []string{"改寫形式：" + t.Mode, toneLine}
	instructions = append(instructions, optional(languageInstruction(lang))...)

	var d document
	d.line("你是一位專業的文案編輯。請根據以下指令改寫提供的文字內容。").
		line("**指令：**").
		numbered(instructions...).
		line("---").
		line("[原文內容開始]").
		lineIf(t.fromURL, "請注意，以下內容是從一個網址抓取的，請基於此內容進行改寫：").
		line(t.Content).
		line("[原文內容結束]").
		line("---").
		line("[改寫後的內容]")

	return Prompt{
		Task:   t.Kind(),
		Text:   d.String(),
		Config: configFor(t.Kind(), false),
	}
}
