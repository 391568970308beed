package handlers

import (
	"net/http"

	"gemini-forge/internal/domain"
)

// apiOptions はフロントエンドがフォームを組み立てるための選択肢一覧です。
type apiOptions struct {
	Tasks           []domain.TaskKind `json:"tasks"`
	Models          []domain.Model    `json:"models"`
	Languages       []domain.Language `json:"languages"`
	DefaultModel    domain.Model      `json:"defaultModel"`
	DefaultLanguage domain.Language   `json:"defaultLanguage"`
}

func (h *Handler) APIOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, apiOptions{
		Tasks:           domain.TaskKinds(),
		Models:          domain.AllowedModels(),
		Languages:       domain.AllowedLanguages(),
		DefaultModel:    domain.DefaultModel,
		DefaultLanguage: domain.DefaultLanguage,
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
