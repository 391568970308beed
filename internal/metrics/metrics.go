// Package metrics は Prometheus のコレクターと /metrics 用のハンドラーを提供します。
// 値は書き込み専用で、リクエスト処理の判断には使いません。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gemini_forge"

// OutcomeSuccess は成功したリクエストの outcome ラベル値です。失敗時はエラー種別を使います。
const OutcomeSuccess = "success"

// Service は専用レジストリとコレクターを保持します。
type Service struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// New は専用レジストリにコレクターを登録した Service を生成します。
func New() *Service {
	registry := prometheus.NewRegistry()

	s := &Service{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Generation requests by task and outcome.",
		}, []string{"task", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Latency of Gemini generateContent calls.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160, 320},
		}, []string{"task", "model"}),
	}

	registry.MustRegister(
		s.requests,
		s.upstreamDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return s
}

// ObserveRequest は outcome ごとのリクエスト数を加算します。
func (s *Service) ObserveRequest(task, outcome string) {
	if task == "" {
		task = "unknown"
	}
	s.requests.WithLabelValues(task, outcome).Inc()
}

func (s *Service) ObserveUpstream(task, model string, elapsed time.Duration) {
	s.upstreamDuration.WithLabelValues(task, model).Observe(elapsed.Seconds())
}

// Handler は /metrics のエクスポーターを返します。
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
