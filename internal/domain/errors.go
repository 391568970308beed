package domain

import (
	"errors"
	"net/http"
)

// ErrorKind はクライアントに返す失敗の分類です。
type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "InvalidInput"
	KindUnknownTask         ErrorKind = "UnknownTask"
	KindFetchFailed         ErrorKind = "FetchFailed"
	KindTimeout             ErrorKind = "Timeout"
	KindUpstreamUnavailable ErrorKind = "UpstreamUnavailable"
	KindUpstreamRejected    ErrorKind = "UpstreamRejected"
	KindContentBlocked      ErrorKind = "ContentBlocked"
	KindEmptyResponse       ErrorKind = "EmptyResponse"
	KindInternal            ErrorKind = "Internal"
)

var kindStatus = map[ErrorKind]int{
	KindInvalidInput:        http.StatusBadRequest,
	KindUnknownTask:         http.StatusBadRequest,
	KindFetchFailed:         http.StatusBadRequest,
	KindTimeout:             http.StatusGatewayTimeout,
	KindUpstreamUnavailable: http.StatusInternalServerError,
	KindUpstreamRejected:    http.StatusBadGateway,
	KindContentBlocked:      http.StatusBadRequest,
	KindEmptyResponse:       http.StatusInternalServerError,
	KindInternal:            http.StatusInternalServerError,
}

// Error はリクエストを終了させる失敗です。Message はそのままクライアントに返ります。
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

// NewError は種別の既定ステータスでエラーを生成します。
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message, Status: StatusFor(kind)}
}

// NewUpstreamRejected は上流のステータスコードをそのまま引き継ぎます。
func NewUpstreamRejected(status int, message string) *Error {
	if status < 400 || status > 599 {
		status = StatusFor(KindUpstreamRejected)
	}
	return &Error{Kind: KindUpstreamRejected, Message: message, Status: status}
}

// Wrap は原因となったエラーを保持したまま返します。
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusFor は種別ごとの HTTP ステータスを返します。
func StatusFor(kind ErrorKind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AsError は err から *Error を取り出します。見つからない場合は Internal として包みます。
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return NewError(KindInternal, "伺服器內部錯誤。").Wrap(err)
}

// IsServerSide は運用者への通知が必要な 5xx 系の失敗かを判定します。
func (e *Error) IsServerSide() bool {
	switch e.Kind {
	case KindTimeout, KindUpstreamUnavailable, KindEmptyResponse, KindInternal:
		return true
	}
	return false
}
