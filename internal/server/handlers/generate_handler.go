package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"gemini-forge/internal/domain"
)

const jsonMediaType = "application/json"

// HandleGenerate は JSON の生成リクエストを受け取り、タスクに対応する 1 フィールドの JSON を返します。
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeRequest(w, r)
	if err != nil {
		de := domain.AsError(err)
		slog.WarnContext(r.Context(), "リクエストを拒否しました", "kind", de.Kind, "status", de.Status, "error", err)
		writeError(w, r, de)
		return
	}

	resp, err := h.executor.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// decodeRequest は Content-Type と本文サイズを検証し、本文を GenerateRequest に変換します。
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (domain.GenerateRequest, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != jsonMediaType {
		return domain.GenerateRequest{}, domain.NewError(domain.KindInvalidInput, "錯誤：請求必須為 JSON 格式 (Content-Type: application/json)。")
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.GenerateRequest{}, domain.NewError(domain.KindInvalidInput, "錯誤：請求內容過大。").Wrap(err)
		}
		return domain.GenerateRequest{}, domain.NewError(domain.KindInvalidInput, "錯誤：無法讀取請求內容。").Wrap(err)
	}

	return domain.DecodeGenerateRequest(body)
}

// Options は CORS プリフライト以外の OPTIONS にも常に 204 を返します。
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
