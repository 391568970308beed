package prompt

import (
	"fmt"
	"strings"

	"gemini-forge/internal/domain"
)

// document はプロンプトを指示行の順序付きリストとして 1 パスで組み立てます。
// 任意の指示行は追加時点の位置に入るため、文字列検索による差し込みは不要です。
type document struct {
	lines []string
}

func (d *document) line(s string) *document {
	d.lines = append(d.lines, s)
	return d
}

func (d *document) linef(format string, args ...any) *document {
	return d.line(fmt.Sprintf(format, args...))
}

func (d *document) lineIf(ok bool, s string) *document {
	if ok {
		d.line(s)
	}
	return d
}

// bullets は "* " 付きの箇条書きを追加します。
func (d *document) bullets(items ...string) *document {
	for _, item := range items {
		d.line("* " + item)
	}
	return d
}

// numbered は "1.  " 形式の番号付きリストを追加します。
func (d *document) numbered(items ...string) *document {
	for i, item := range items {
		d.linef("%d.  %s", i+1, item)
	}
	return d
}

func (d *document) String() string {
	return strings.Join(d.lines, "\n")
}

// languageInstruction は auto 以外の場合にのみ出力言語の指示を返します。
func languageInstruction(lang domain.Language) (string, bool) {
	if lang.IsAuto() || lang == "" {
		return "", false
	}
	return "輸出語言：" + string(lang), true
}

// optional は空文字列以外を 1 要素のスライスとして返します。
func optional(s string, ok bool) []string {
	if !ok {
		return nil
	}
	return []string{s}
}
