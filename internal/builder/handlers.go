package builder

import (
	"fmt"
	"net/http"

	"gemini-forge/internal/app"
	"gemini-forge/internal/server/handlers"
)

// AppHandlers は生成されたすべての HTTP ハンドラーを保持する構造体です。
// server パッケージはこの構造体を受け取ってルーティングを行います。
type AppHandlers struct {
	API     *handlers.Handler
	Metrics http.Handler
}

// BuildHandlers は各ハンドラーの依存関係をすべて組み立て、AppHandlers 構造体を返します。
func BuildHandlers(appCtx *app.Container, executor handlers.GenerateExecutor) (*AppHandlers, error) {
	if executor == nil {
		return nil, fmt.Errorf("生成リクエストの executor が未設定です")
	}
	if appCtx.Metrics == nil {
		return nil, fmt.Errorf("メトリクスサービスが未設定です")
	}

	return &AppHandlers{
		API:     handlers.NewHandler(executor, appCtx.Config.MaxBodyBytes),
		Metrics: appCtx.Metrics.Handler(),
	}, nil
}
