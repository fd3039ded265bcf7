// Package metrics Prometheus collectors for the note service
// Package metrics 笔记服务的 Prometheus 指标
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "markdown_note"

// Metrics collector set, a nil *Metrics records nothing
// Metrics 指标集合，nil 时不记录
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	noteOps      *prometheus.CounterVec
	aiRequests   *prometheus.CounterVec
	notesTotal   prometheus.Gauge

	reg prometheus.Registerer
}

// New creates and registers the collectors on reg
// New 创建指标并注册到 reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		noteOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "note_operations_total",
			Help:      "Note operations by kind and result.",
		}, []string{"op", "result"}),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_assist_requests_total",
			Help:      "AI assist requests by action and outcome.",
		}, []string{"action", "outcome"}),
		notesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notes",
			Help:      "Notes stored across all users, refreshed by the note_stats task.",
		}),
		reg: reg,
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.noteOps, m.aiRequests, m.notesTotal)
	return m
}

// ObserveHTTP records one finished request
// ObserveHTTP 记录一次完成的请求
func (m *Metrics) ObserveHTTP(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// NoteOp counts a note operation, result is "ok" or "error"
// NoteOp 统计笔记操作，result 为 "ok" 或 "error"
func (m *Metrics) NoteOp(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.noteOps.WithLabelValues(op, result).Inc()
}

// AIRequest counts an assist call by outcome
// AIRequest 统计 AI 助手调用结果
func (m *Metrics) AIRequest(action, outcome string) {
	if m == nil {
		return
	}
	m.aiRequests.WithLabelValues(action, outcome).Inc()
}

// SetNotesTotal 更新笔记总数
func (m *Metrics) SetNotesTotal(n int64) {
	if m == nil {
		return
	}
	m.notesTotal.Set(float64(n))
}

// WatchGauge exposes a value read on every scrape, used for pool and queue depth
// WatchGauge 注册采集时读取的指标，用于协程池与写队列深度
func (m *Metrics) WatchGauge(name, help string, fn func() float64) {
	if m == nil {
		return
	}
	m.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn))
}
