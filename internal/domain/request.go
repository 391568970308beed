package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// GenerateRequest はクライアントから届く JSON リクエストそのものです。
// タスク固有のパラメータはすべて任意で、既定値の補完は prompt パッケージが担います。
type GenerateRequest struct {
	Task     string `json:"task"`
	APIKey   string `json:"apiKey"`
	Model    string `json:"model"`
	Language string `json:"language"`

	// rewrite_content
	Content   string `json:"content"`
	InputType string `json:"inputType"`
	Mode      string `json:"mode"`

	// generate_article / generate_fb_post
	Title    string `json:"title"`
	Keywords string `json:"keywords"`
	Topic    string `json:"topic"`
	Form     string `json:"form"`
	Audience string `json:"audience"`
	Length   string `json:"length"`

	// 全タスク共通
	Tone string `json:"tone"`

	UseWebSearch Flag `json:"useWebSearch"`
	IncludeImage Flag `json:"includeImage"`
}

// Flag は JSON の真偽値に加え "true" / "1" のような文字列も受け付ける緩い bool です。
// 解釈できない値は false として扱い、エラーにはしません。
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, _ := strconv.ParseBool(strings.TrimSpace(s))
		*f = Flag(parsed)
		return nil
	}
	if n, err := strconv.ParseFloat(string(data), 64); err == nil {
		*f = Flag(n != 0)
		return nil
	}
	*f = false
	return nil
}

// DecodeGenerateRequest は JSON 本文を GenerateRequest に変換します。
func DecodeGenerateRequest(data []byte) (GenerateRequest, error) {
	var req GenerateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return GenerateRequest{}, NewError(KindInvalidInput, "JSON 請求解碼失敗: "+err.Error())
	}
	return req, nil
}

// marshalSingleField は 1 フィールドだけの JSON オブジェクトを生成します。
func marshalSingleField(key, value string) ([]byte, error) {
	return json.Marshal(map[string]string{key: value})
}
