package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strings"
	"sync"

	"gemini-forge/internal/domain"
	"gemini-forge/internal/prompt"

	"google.golang.org/genai"
)

const genericUpstreamMessage = "Gemini API 錯誤，請檢查您的 API Key 或模型權限。"

// GenerationRequest は上流 1 回分の呼び出しに必要な値の組です。
type GenerationRequest struct {
	APIKey string
	Model  domain.Model
	Prompt prompt.Prompt
}

// GenerativeAdapter は生成 API 呼び出しのためのインターフェースを定義します。
type GenerativeAdapter interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// GeminiAdapter は google.golang.org/genai を使用した GenerativeAdapter の実装です。
// API Key はリクエストごとに異なるため、クライアントは呼び出しごとに生成し共有しません。
type GeminiAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeminiAdapter は上流のベース URL と HTTP クライアントを保持するアダプターを生成します。
func NewGeminiAdapter(baseURL string, httpClient *http.Client) *GeminiAdapter {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &GeminiAdapter{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Generate はプロンプトを 1 回だけ送信し、タスク固有のタイムアウトで打ち切ります。
// 失敗はすべて *domain.Error に分類して返します。
func (a *GeminiAdapter) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	timeout := req.Prompt.Config.Timeout
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	recorder := &responseRecorder{base: a.httpClient.Transport}
	client, err := genai.NewClient(callCtx, &genai.ClientConfig{
		APIKey:  req.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Transport:     recorder,
			CheckRedirect: a.httpClient.CheckRedirect,
			Jar:           a.httpClient.Jar,
			Timeout:       a.httpClient.Timeout,
		},
		HTTPOptions: genai.HTTPOptions{
			BaseURL: a.baseURL,
		},
	})
	if err != nil {
		return "", domain.NewError(domain.KindUpstreamUnavailable, "Gemini 用戶端初始化失敗。").Wrap(err)
	}

	resp, err := client.Models.GenerateContent(callCtx, string(req.Model), genai.Text(req.Prompt.Text), buildContentConfig(req.Prompt.Config))
	if err != nil {
		return "", classifyCallError(callCtx, err, recorder.last(), timeout.Seconds())
	}

	return extractText(resp)
}

// buildContentConfig は生成設定を genai の設定に変換します。
// tools は SDK によってリクエストのトップレベルに配置され、generationConfig には入りません。
func buildContentConfig(cfg prompt.GenerationConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{
		ResponseMIMEType: cfg.ResponseMIMEType,
		Temperature:      genai.Ptr(cfg.Temperature),
	}
	for _, tool := range cfg.Tools {
		switch tool {
		case prompt.ToolGoogleSearch:
			out.Tools = append(out.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
		default:
			slog.Warn("Unsupported tool dropped from upstream request", "tool", tool)
		}
	}
	return out
}

// classifyCallError は呼び出し失敗を Timeout / UpstreamRejected / UpstreamUnavailable に分類します。
// UpstreamRejected のステータスは HTTP 応答のものを使い、メッセージは JSON のエラー本文からのみ取り出します。
func classifyCallError(callCtx context.Context, err error, upstream upstreamResponse, timeoutSec float64) error {
	if apiErr, ok := asAPIError(err); ok {
		status := upstream.status
		if status == 0 {
			status = apiErr.Code
		}
		msg := strings.TrimSpace(apiErr.Message)
		if msg == "" || !upstream.isJSON() {
			msg = genericUpstreamMessage
		}
		return domain.NewUpstreamRejected(status, msg).Wrap(err)
	}

	if isTimeout(callCtx, err) {
		msg := fmt.Sprintf("Gemini API 請求超時 (%.0f 秒)。Gemini API 可能處理時間過長或網路延遲。", timeoutSec)
		return domain.NewError(domain.KindTimeout, msg).Wrap(err)
	}

	return domain.NewError(domain.KindUpstreamUnavailable, "Gemini API 請求失敗: "+err.Error()).Wrap(err)
}

// upstreamResponse は上流の HTTP 応答のうち、エラー分類に必要な部分です。
type upstreamResponse struct {
	status      int
	contentType string
}

func (r upstreamResponse) isJSON() bool {
	mediaType, _, err := mime.ParseMediaType(r.contentType)
	return err == nil && (mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"))
}

// responseRecorder は SDK が受け取った最後の HTTP 応答のステータスと Content-Type を記録します。
type responseRecorder struct {
	base http.RoundTripper

	mu   sync.Mutex
	resp upstreamResponse
}

func (r *responseRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	base := r.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err == nil {
		r.mu.Lock()
		r.resp = upstreamResponse{status: resp.StatusCode, contentType: resp.Header.Get("Content-Type")}
		r.mu.Unlock()
	}
	return resp, err
}

func (r *responseRecorder) last() upstreamResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resp
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

func isTimeout(callCtx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// extractText は最初の候補からテキストを取り出します。
// テキストが無い場合は finishReason によって ContentBlocked か EmptyResponse を返します。
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", domain.NewError(domain.KindEmptyResponse, "Gemini 未能產生有效內容 (回應為空)。")
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", domain.NewError(domain.KindContentBlocked,
			fmt.Sprintf("Gemini 回應因安全或其他原因被中止 (%s)。", fb.BlockReason))
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", domain.NewError(domain.KindEmptyResponse, "Gemini 未能產生有效內容 (回應為空)。")
	}

	candidate := resp.Candidates[0]
	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() > 0 {
		return sb.String(), nil
	}

	if reason := candidate.FinishReason; reason != "" && reason != genai.FinishReasonStop {
		return "", domain.NewError(domain.KindContentBlocked,
			fmt.Sprintf("Gemini 回應因安全或其他原因被中止 (%s)。", reason))
	}

	return "", domain.NewError(domain.KindEmptyResponse, "Gemini 未能產生有效內容 (回應為空)。")
}
