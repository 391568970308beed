package domain

import "strings"

// NormalizedRequest はホワイトリスト解決と必須チェックを済ませたリクエストです。
type NormalizedRequest struct {
	Task     TaskKind
	APIKey   string
	Model    Model
	Language Language
	Params   GenerateRequest
}

// Normalize は API Key とタスクの存在を検証し、モデルと言語をホワイトリストに解決します。
// 未知のモデル・言語はエラーにせずデフォルトへ置き換えます。
func Normalize(req GenerateRequest) (NormalizedRequest, error) {
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		return NormalizedRequest{}, NewError(KindInvalidInput, "錯誤：API Key 未提供。")
	}

	rawTask := strings.TrimSpace(req.Task)
	if rawTask == "" {
		return NormalizedRequest{}, NewError(KindInvalidInput, "錯誤：未指定任務。")
	}

	task, ok := ParseTaskKind(rawTask)
	if !ok {
		return NormalizedRequest{}, NewError(KindUnknownTask, "錯誤：未知的任務類型。")
	}

	return NormalizedRequest{
		Task:     task,
		APIKey:   apiKey,
		Model:    ResolveModel(strings.TrimSpace(req.Model)),
		Language: ResolveLanguage(strings.TrimSpace(req.Language)),
		Params:   req,
	}, nil
}
