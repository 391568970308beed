// Package logger は slog のデフォルトハンドラーとリクエスト ID の受け渡しを提供します。
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Config はロガーの出力レベルと形式です。Format が "json" 以外の場合は tint の色付きテキストになります。
type Config struct {
	Level  slog.Level
	Format string
}

// FromConfig は LOG_LEVEL / LOG_FORMAT の値から Config を組み立てます。未知のレベルは info になります。
func FromConfig(logLevel, logFormat string) Config {
	cfg := Config{Level: slog.LevelInfo, Format: "json"}

	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		cfg.Level = slog.LevelDebug
	case "warn":
		cfg.Level = slog.LevelWarn
	case "error":
		cfg.Level = slog.LevelError
	}

	if f := strings.ToLower(strings.TrimSpace(logFormat)); f != "" {
		cfg.Format = f
	}
	return cfg
}

// New は cfg に従ったハンドラーで slog.Logger を生成します。
// どちらの形式でも、コンテキストにリクエスト ID があれば request_id 属性を付与します。
func New(w io.Writer, cfg Config) *slog.Logger {
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: cfg.Level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					return slog.String(a.Key, a.Value.Time().Format(time.RFC3339))
				}
				return a
			},
		})
	} else {
		h = tint.NewHandler(w, &tint.Options{
			Level:      cfg.Level,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.New(&contextHandler{Handler: h})
}

// contextHandler はコンテキスト由来の属性をレコードに追加します。
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestIDFrom(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
