package prompt

import (
	"strings"
	"time"

	"gemini-forge/internal/domain"
)

type profile struct {
	temperature float32
	timeout     time.Duration
}

var profiles = map[domain.TaskKind]profile{
	domain.TaskRewriteContent:  {temperature: 0.7, timeout: 120 * time.Second},
	domain.TaskGenerateArticle: {temperature: 0.8, timeout: 300 * time.Second},
	domain.TaskGenerateFBPost:  {temperature: 0.9, timeout: 180 * time.Second},
}

// Length は短・中・長の長さ指定です。
type Length string

const (
	LengthShort  Length = "短"
	LengthMedium Length = "中"
	LengthLong   Length = "長"
)

var lengthAliases = map[string]Length{
	"短":      LengthShort,
	"中":      LengthMedium,
	"長":      LengthLong,
	"short":  LengthShort,
	"medium": LengthMedium,
	"long":   LengthLong,
}

var articleLengths = map[Length]string{
	LengthShort:  "約 300-500 字",
	LengthMedium: "約 800-1200 字",
	LengthLong:   "約 1500-2000 字",
}

var fbPostLengths = map[Length]string{
	LengthShort:  "簡短 (約 1-3 句話)",
	LengthMedium: "中等 (約 1-2 個段落)",
	LengthLong:   "詳細 (多個段落，含項目符號)",
}

// ParseLength は未知の値を中 (medium) として扱います。
func ParseLength(raw string) Length {
	if l, ok := lengthAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return l
	}
	return LengthMedium
}

// timeoutFor はタスク種別ごとに固定された上流タイムアウトを返します。
func timeoutFor(kind domain.TaskKind) time.Duration {
	return profiles[kind].timeout
}

const (
	neutralTone   = "無"
	defaultMode   = "重寫"
	defaultFBForm = "廣告貼文"
)

// customTone は「無」や空白以外のトーン指定をトリムして返します。
func customTone(raw string) (string, bool) {
	tone := strings.TrimSpace(raw)
	if tone == "" || tone == neutralTone {
		return "", false
	}
	return tone, true
}
