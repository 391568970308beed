package domain

import "slices"

// Model は上流に渡す Gemini モデル ID です。
type Model string

// Language は出力言語の指定です。LanguageAuto の場合は言語指示を出しません。
type Language string

const (
	DefaultModel    Model    = "gemini-2.5-flash"
	LanguageAuto    Language = "auto"
	DefaultLanguage          = LanguageAuto
)

var allowedModels = []Model{
	"gemini-2.5-pro",
	DefaultModel,
	"gemini-2.5-flash-lite",
}

var allowedLanguages = []Language{
	LanguageAuto,
	"繁體中文",
	"English",
	"日本語",
}

// ResolveModel はホワイトリストに無いモデルを黙ってデフォルトに置き換えます。
func ResolveModel(raw string) Model {
	if m := Model(raw); slices.Contains(allowedModels, m) {
		return m
	}
	return DefaultModel
}

// ResolveLanguage はホワイトリストに無い言語を黙って auto に置き換えます。
func ResolveLanguage(raw string) Language {
	if l := Language(raw); slices.Contains(allowedLanguages, l) {
		return l
	}
	return DefaultLanguage
}

// AllowedModels はモデルのホワイトリストのコピーを返します。
func AllowedModels() []Model {
	return slices.Clone(allowedModels)
}

// AllowedLanguages は言語のホワイトリストのコピーを返します。
func AllowedLanguages() []Language {
	return slices.Clone(allowedLanguages)
}

func (l Language) IsAuto() bool {
	return l == LanguageAuto
}
