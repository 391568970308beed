package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gemini-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	text  string
	err   error
	calls []string
}

func (s *stubFetcher) FetchText(_ context.Context, rawURL string) (string, error) {
	s.calls = append(s.calls, rawURL)
	return s.text, s.err
}

func normalized(t *testing.T, req domain.GenerateRequest) domain.NormalizedRequest {
	t.Helper()
	req.APIKey = "test-key"
	n, err := domain.Normalize(req)
	require.NoError(t, err)
	return n
}

func render(t *testing.T, req domain.GenerateRequest) Prompt {
	t.Helper()
	n := normalized(t, req)
	task, err := Parse(n)
	require.NoError(t, err)
	p, err := Build(context.Background(), task, n.Language, &stubFetcher{})
	require.NoError(t, err)
	return p
}

func TestParse_RequiredParameters(t *testing.T) {
	tests := []struct {
		name string
		req  domain.GenerateRequest
	}{
		{"rewrite without content", domain.GenerateRequest{Task: "rewrite_content"}},
		{"rewrite with blank content", domain.GenerateRequest{Task: "rewrite_content", Content: " \n "}},
		{"article without title", domain.GenerateRequest{Task: "generate_article", Keywords: "go"}},
		{"fb post without topic", domain.GenerateRequest{Task: "generate_fb_post", Form: "活動"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := Parse(normalized(t, tt.req))
			require.Error(t, err)
			assert.Nil(t, task)
			assert.Equal(t, domain.KindInvalidInput, domain.AsError(err).Kind)
		})
	}
}

func TestParse_UnknownTaskIsRejected(t *testing.T) {
	task, err := Parse(domain.NormalizedRequest{Task: domain.TaskKind("translate")})
	require.Error(t, err)
	assert.Nil(t, task)
	assert.Equal(t, domain.KindUnknownTask, domain.AsError(err).Kind)
}

func TestParse_SelectsVariant(t *testing.T) {
	for _, tt := range []struct {
		req  domain.GenerateRequest
		want Task
	}{
		{domain.GenerateRequest{Task: "rewrite_content", Content: "x"}, RewriteTask{}},
		{domain.GenerateRequest{Task: "generate_article", Title: "x"}, ArticleTask{}},
		{domain.GenerateRequest{Task: "generate_fb_post", Topic: "x"}, FBPostTask{}},
	} {
		task, err := Parse(normalized(t, tt.req))
		require.NoError(t, err)
		assert.IsType(t, tt.want, task)
		assert.Equal(t, tt.want.Kind(), task.Kind())
	}
}

func TestGenerationConfigPerTask(t *testing.T) {
	tests := []struct {
		req         domain.GenerateRequest
		temperature float32
		timeout     time.Duration
	}{
		{domain.GenerateRequest{Task: "rewrite_content", Content: "x"}, 0.7, 120 * time.Second},
		{domain.GenerateRequest{Task: "generate_article", Title: "x"}, 0.8, 300 * time.Second},
		{domain.GenerateRequest{Task: "generate_fb_post", Topic: "x"}, 0.9, 180 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.req.Task, func(t *testing.T) {
			p := render(t, tt.req)
			assert.Equal(t, "text/plain", p.Config.ResponseMIMEType)
			assert.InDelta(t, tt.temperature, p.Config.Temperature, 1e-6)
			assert.Equal(t, tt.timeout, p.Config.Timeout)
			assert.Equal(t, tt.timeout, timeoutFor(p.Task))
			assert.Empty(t, p.Config.Tools)
		})
	}
}

func TestRewrite_ToneAndMode(t *testing.T) {
	p := render(t, domain.GenerateRequest{Task: "rewrite_content", Content: "原始段落"})
	assert.Contains(t, p.Text, "1.  改寫形式：重寫")
	assert.Contains(t, p.Text, "2.  風格：中性")
	assert.Contains(t, p.Text, "[原文內容開始]\n原始段落\n[原文內容結束]")
	assert.NotContains(t, p.Text, "輸出語言")

	p = render(t, domain.GenerateRequest{Task: "rewrite_content", Content: "x", Tone: "無", Mode: "摘要"})
	assert.Contains(t, p.Text, "改寫形式：摘要")
	assert.Contains(t, p.Text, "風格：中性")

	p = render(t, domain.GenerateRequest{Task: "rewrite_content", Content: "x", Tone: "  幽默風趣 ", Language: "English"})
	assert.Contains(t, p.Text, "2.  風格：幽默風趣")
	assert.Contains(t, p.Text, "3.  輸出語言：English")
}

func TestRewrite_URLInputFetchesContent(t *testing.T) {
	n := normalized(t, domain.GenerateRequest{Task: "rewrite_content", Content: "https://example.com/a", InputType: "url"})
	task, err := Parse(n)
	require.NoError(t, err)

	fetcher := &stubFetcher{text: "fetched body"}
	p, err := Build(context.Background(), task, n.Language, fetcher)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/a"}, fetcher.calls)
	assert.Contains(t, p.Text, "請注意，以下內容是從一個網址抓取的")
	assert.Contains(t, p.Text, "fetched body")
	assert.NotContains(t, p.Text, "https://example.com/a")
}

func TestRewrite_FetchFailure(t *testing.T) {
	for _, fetcher := range []*stubFetcher{
		{err: errors.New("dial tcp: refused")},
		{text: "   "},
	} {
		n := normalized(t, domain.GenerateRequest{Task: "rewrite_content", Content: "https://example.com", InputType: "URL"})
		task, err := Parse(n)
		require.NoError(t, err)

		_, err = Build(context.Background(), task, n.Language, fetcher)
		require.Error(t, err)
		assert.Equal(t, domain.KindFetchFailed, domain.AsError(err).Kind)
	}
}

func TestRewrite_TextInputNeverFetches(t *testing.T) {
	n := normalized(t, domain.GenerateRequest{Task: "rewrite_content", Content: "https://example.com", InputType: "text"})
	task, err := Parse(n)
	require.NoError(t, err)

	fetcher := &stubFetcher{err: errors.New("must not be called")}
	p, err := Build(context.Background(), task, n.Language, fetcher)
	require.NoError(t, err)
	assert.Empty(t, fetcher.calls)
	assert.Contains(t, p.Text, "https://example.com")
}

func TestArticle_Length(t *testing.T) {
	tests := []struct {
		length string
		want   string
	}{
		{"短", "目標長度：約 300-500 字"},
		{"中", "目標長度：約 800-1200 字"},
		{"長", "目標長度：約 1500-2000 字"},
		{"long", "目標長度：約 1500-2000 字"},
		{"", "目標長度：約 800-1200 字"},
		{"超長", "目標長度：約 800-1200 字"},
	}
	for _, tt := range tests {
		t.Run(tt.length, func(t *testing.T) {
			p := render(t, domain.GenerateRequest{Task: "generate_article", Title: "Go 入門", Length: tt.length})
			assert.Contains(t, p.Text, tt.want)
		})
	}
}

func TestArticle_Defaults(t *testing.T) {
	p := render(t, domain.GenerateRequest{Task: "generate_article", Title: "Go 入門"})
	assert.Contains(t, p.Text, "* 文章標題：Go 入門")
	assert.Contains(t, p.Text, "* 核心關鍵字：由 AI 決定")
	assert.Contains(t, p.Text, "* 目標受眾：一般大眾")
	assert.Contains(t, p.Text, "* 寫作風格：專業且資訊豐富")
	assert.NotContains(t, p.Text, "Google 搜尋")

	p = render(t, domain.GenerateRequest{Task: "generate_article", Title: "t", Keywords: " go, chi ", Audience: "工程師", Tone: "輕鬆"})
	assert.Contains(t, p.Text, "* 核心關鍵字 (請圍繞這些詞彙)：go, chi")
	assert.Contains(t, p.Text, "* 目標受眾：工程師")
	assert.Contains(t, p.Text, "* 寫作風格：輕鬆")
}

func TestArticle_WebSearchPrecedesOutputFormat(t *testing.T) {
	p := render(t, domain.GenerateRequest{Task: "generate_article", Title: "t", Language: "日本語", UseWebSearch: true})

	assert.Equal(t, []Tool{ToolGoogleSearch}, p.Config.Tools)
	assert.True(t, p.Config.HasTool(ToolGoogleSearch))

	lines := strings.Split(p.Text, "\n")
	formatIdx := indexOf(lines, "**輸出格式要求：**")
	require.Positive(t, formatIdx)
	assert.Contains(t, lines[formatIdx-1], "必須使用 Google 搜尋")
	assert.Equal(t, "* 輸出語言：日本語", lines[formatIdx-2])
	assert.Equal(t, "請直接開始撰寫文章：", lines[len(lines)-1])
}

func TestFBPost_ImageMarker(t *testing.T) {
	with := render(t, domain.GenerateRequest{Task: "generate_fb_post", Topic: "新品咖啡", IncludeImage: true})
	assert.Contains(t, with.Text, "[圖片提示：...]")
	assert.Equal(t, 2, strings.Count(with.Text, "[圖片提示：...]"))
	assert.Contains(t, with.Text, "4.  **圖片提示：**")

	without := render(t, domain.GenerateRequest{Task: "generate_fb_post", Topic: "新品咖啡", IncludeImage: false})
	assert.NotContains(t, without.Text, "[圖片提示：")
	assert.NotContains(t, without.Text, "4.  ")
}

func TestFBPost_DefaultsAndSearch(t *testing.T) {
	p := render(t, domain.GenerateRequest{Task: "generate_fb_post", Topic: "新品咖啡"})
	assert.Contains(t, p.Text, "* 貼文形式：廣告貼文")
	assert.Contains(t, p.Text, "* 目標受眾：一般 Facebook 用戶")
	assert.Contains(t, p.Text, "* 貼文長度：中等 (約 1-2 個段落)")
	assert.Contains(t, p.Text, "* 寫作風格：專業且具說服力")
	assert.Empty(t, p.Config.Tools)

	p = render(t, domain.GenerateRequest{Task: "generate_fb_post", Topic: "t", Length: "短", UseWebSearch: true, Tone: "無"})
	assert.Contains(t, p.Text, "簡短 (約 1-3 句話)")
	assert.Contains(t, p.Text, "* **網路搜尋：**")
	assert.Contains(t, p.Text, "寫作風格：專業且具說服力")
	assert.Equal(t, []Tool{ToolGoogleSearch}, p.Config.Tools)
}

func TestRender_IsDeterministic(t *testing.T) {
	req := domain.GenerateRequest{Task: "generate_fb_post", Topic: "t", Audience: "學生", IncludeImage: true, UseWebSearch: true, Language: "English"}
	assert.Equal(t, render(t, req), render(t, req))
}

func indexOf(lines []string, target string) int {
	for i, l := range lines {
		if l == target {
			return i
		}
	}
	return -1
}
