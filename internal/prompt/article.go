package prompt

import (
	"strings"

	"gemini-forge/internal/domain"
)

// ArticleTask は generate_article の検証済みパラメータです。
type ArticleTask struct {
	Title        string
	Keywords     string
	Audience     string
	Length       Length
	Tone         string
	UseWebSearch bool
}

func newArticleTask(p domain.GenerateRequest) (ArticleTask, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return ArticleTask{}, domain.NewError(domain.KindInvalidInput, "錯誤：文章標題不可為空。")
	}

	return ArticleTask{
		Title:        title,
		Keywords:     strings.TrimSpace(p.Keywords),
		Audience:     strings.TrimSpace(p.Audience),
		Length:       ParseLength(p.Length),
		Tone:         p.Tone,
		UseWebSearch: bool(p.UseWebSearch),
	}, nil
}

func (ArticleTask) Kind() domain.TaskKind { return domain.TaskGenerateArticle }

func (ArticleTask) isTask() {}

// Render は入力パラメータ、任意の指示行、出力形式要件の順でプロンプトを組み立てます。
// 検索指示は出力形式要件の直前に必ず配置されます。
func (t ArticleTask) Render(lang domain.Language) Prompt {
	keywordLine := "核心關鍵字：由 AI 決定"
	if t.Keywords != "" {
		keywordLine = "核心關鍵字 (請圍繞這些詞彙)：" + t.Keywords
	}
	audienceLine := "目標受眾：一般大眾"
	if t.Audience != "" {
		audienceLine = "目標受眾：" + t.Audience
	}
	toneLine := "寫作風格：專業且資訊豐富"
	if tone, ok := customTone(t.Tone); ok {
		toneLine = "寫作風格：" + tone
	}

	var d document
	d.line("任務：撰寫一篇高品質、結構完整的 SEO 部落格文章。").
		line("**輸入參數：**").
		bullets(
			"文章標題："+t.Title,
			keywordLine,
			audienceLine,
			"目標長度："+articleLengths[t.Length],
			toneLine,
		).
		bullets(optional(languageInstruction(lang))...).
		lineIf(t.UseWebSearch, "* **重要指令：** 必須使用 Google 搜尋來查找最新的即時資訊來撰寫這篇文章。").
		line("**輸出格式要求：**").
		numbered(
			"**必須**使用 Markdown 格式撰寫。",
			"**必須**包含一個引人入勝的「引言」。",
			"**必須**包含數個邏輯清晰、帶有 `## H2 標題` 的「正文」段落 (若合適，請使用項目符號)。",
			"**必須**包含一個總結觀點的「結論」。",
		).
		line("請直接開始撰寫文章：")

	return Prompt{
		Task:   t.Kind(),
		Text:   d.String(),
		Config: configFor(t.Kind(), t.UseWebSearch),
	}
}
