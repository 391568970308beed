package prompt

import (
	"strings"

	"gemini-forge/internal/domain"
)

// ImagePromptMarker は includeImage 時に出力末尾へ要求する画像プロンプトの書式です。
const ImagePromptMarker = "[圖片提示：...]"

// FBPostTask は generate_fb_post の検証済みパラメータです。
type FBPostTask struct {
	Topic        string
	Form         string
	Audience     string
	Length       Length
	Tone         string
	UseWebSearch bool
	IncludeImage bool
}

func newFBPostTask(p domain.GenerateRequest) (FBPostTask, error) {
	topic := strings.TrimSpace(p.Topic)
	if topic == "" {
		return FBPostTask{}, domain.NewError(domain.KindInvalidInput, "錯誤：貼文內容不可為空。")
	}

	form := strings.TrimSpace(p.Form)
	if form == "" {
		form = defaultFBForm
	}

	return FBPostTask{
		Topic:        topic,
		Form:         form,
		Audience:     strings.TrimSpace(p.Audience),
		Length:       ParseLength(p.Length),
		Tone:         p.Tone,
		UseWebSearch: bool(p.UseWebSearch),
		IncludeImage: bool(p.IncludeImage),
	}, nil
}

func (FBPostTask) Kind() domain.TaskKind { return domain.TaskGenerateFBPost }

func (FBPostTask) isTask() {}

func (t FBPostTask) Render(lang domain.Language) Prompt {
	audienceLine := "目標受眾：一般 Facebook 用戶"
	if t.Audience != "" {
		audienceLine = "目標受眾：" + t.Audience
	}
	toneLine := "寫作風格：專業且具說服力"
	if tone, ok := customTone(t.Tone); ok {
		toneLine = "寫作風格：" + tone
	}

	formatRequirements := []string{
		"**開頭：** 使用一個引人注目的鉤子 (Hook) 來抓住注意力。",
		"**內容：** 清晰傳達價值主張，使用表情符號 (emoji) 來增加易讀性。",
		"**結尾：** 包含清晰的行動呼籲 (CTA) 和相關連結 (使用 `[範例連結]` 作為占位符)。",
	}
	if t.IncludeImage {
		formatRequirements = append(formatRequirements,
			"**圖片提示：** 在貼文最後一行，以 `"+ImagePromptMarker+"` 格式附上 AI 圖片生成提示詞。")
	}

	var d document
	d.line("你是一位頂尖的 Facebook 廣告文案專家 (Copywriter)。請根據以下要求，生成一篇高效、高轉換率的 Facebook 貼文。").
		line("**貼文要求：**").
		bullets(
			"貼文主題/產品描述："+t.Topic,
			"貼文形式："+t.Form+" (如果是 '"+defaultFBForm+"'，請加入強烈的行動呼籲 (Call to Action))",
			audienceLine,
			"貼文長度："+fbPostLengths[t.Length],
			toneLine,
		).
		lineIf(t.UseWebSearch, "* **網路搜尋：** 必須使用 Google 搜尋來查找與主題相關的最新資訊或賣點。").
		bullets(optional(languageInstruction(lang))...).
		lineIf(t.IncludeImage, "* **圖片提示：** 在文案結尾處，用 `"+ImagePromptMarker+"` 格式，提供一個適合這篇貼文的 AI 圖片生成提示詞。").
		line("**輸出格式要求：**").
		numbered(formatRequirements...).
		line("請直接開始撰寫貼文內容：")

	return Prompt{
		Task:   t.Kind(),
		Text:   d.String(),
		Config: configFor(t.Kind(), t.UseWebSearch),
	}
}
