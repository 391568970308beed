package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"gemini-forge/internal/domain"
)

// errorBody はすべての失敗レスポンスの形です。
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON は v をエンコードしてからヘッダーとステータスを書き込みます。
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "レスポンスのエンコードに失敗しました", "error", err)
		http.Error(w, `{"error":"伺服器內部錯誤。"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "レスポンスの書き込みに失敗しました", "error", err)
	}
}

// writeError は *domain.Error のステータスとメッセージを返します。それ以外は汎用の 500 です。
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	de := domain.AsError(err)
	writeJSON(w, r, de.Status, errorBody{Error: de.Message})
}
