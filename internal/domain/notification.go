package domain

// FailureNotification は Slack 等の通知コンポーネントで共有される失敗レポートです。
// API Key やプロンプト本文は含めません。
type FailureNotification struct {
	// RequestID はログと突き合わせるためのリクエスト ID です。
	RequestID string `json:"request_id"`

	Task  TaskKind `json:"task"`
	Model Model    `json:"model"`

	Kind   ErrorKind `json:"kind"`
	Status int       `json:"status"`
}
