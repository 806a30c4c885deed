package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 应用 Prometheus 指标
// 使用独立 Registry，便于测试中重复创建
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RelationChanges *prometheus.CounterVec
	EntityWrites    *prometheus.CounterVec
}

// New 创建并注册全部指标
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "results_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "results_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and method",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method"}),
		RelationChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "results_relation_changes_total",
			Help: "Relation link/unlink operations by relation and operation",
		}, []string{"relation", "operation"}),
		EntityWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "results_entity_writes_total",
			Help: "Entity create/update/delete operations by entity type",
		}, []string{"entity", "action"}),
	}
}

// ObserveRequest 记录一次 HTTP 请求
func (m *Metrics) ObserveRequest(route, method, status string, start time.Time) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, method, status).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
}

// IncRelationChange 记录一次关联变更（link / unlink）
func (m *Metrics) IncRelationChange(relation, operation string) {
	if m == nil {
		return
	}
	m.RelationChanges.WithLabelValues(relation, operation).Inc()
}

// IncEntityWrite 记录一次实体写操作
func (m *Metrics) IncEntityWrite(entity, action string) {
	if m == nil {
		return
	}
	m.EntityWrites.WithLabelValues(entity, action).Inc()
}

// Handler 暴露 /metrics；未启用指标时返回 404
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry 返回底层 Registry（测试用）
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
