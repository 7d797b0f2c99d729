// Package metrics exposes the dashboard's Prometheus collectors.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// DashboardMetrics groups every collector the dashboard records into.
type DashboardMetrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	templateRenderDuration *prometheus.HistogramVec
	templateRenderErrors   *prometheus.CounterVec

	viewTransitionsTotal *prometheus.CounterVec
	formRejectionsTotal  *prometheus.CounterVec
	pageCacheTotal       *prometheus.CounterVec

	datasetEntities *prometheus.GaugeVec
	datasetHoneyKg  prometheus.Gauge
}

// NewDashboardMetrics creates the collectors and registers them with registry.
func NewDashboardMetrics(registry *prometheus.Registry) (*DashboardMetrics, error) {
	m := &DashboardMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DashboardMetrics) initMetrics() {
	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pasika_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pasika_http_request_duration_seconds",
			Help:    "Time taken for HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.templateRenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pasika_template_render_duration_seconds",
			Help:    "Time taken to render a template",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
		},
		[]string{"template"},
	)

	m.templateRenderErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pasika_template_render_errors_total",
			Help: "Total number of template rendering errors",
		},
		[]string{"template"},
	)

	m.viewTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pasika_view_transitions_total",
			Help: "Dashboard state transitions by event and resulting tab",
		},
		[]string{"event", "tab"},
	)

	m.formRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pasika_form_rejections_total",
			Help: "Create-apiary submissions rejected by validation, by field",
		},
		[]string{"field"},
	)

	m.pageCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pasika_page_cache_requests_total",
			Help: "Page model cache lookups by result",
		},
		[]string{"result"},
	)

	m.datasetEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pasika_dataset_entities",
			Help: "Number of entities in the loaded dataset",
		},
		[]string{"kind"},
	)

	m.datasetHoneyKg = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pasika_dataset_honey_kg",
			Help: "Total honey across all apiaries in the loaded dataset",
		},
	)
}

func (m *DashboardMetrics) getCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.templateRenderDuration,
		m.templateRenderErrors,
		m.viewTransitionsTotal,
		m.formRejectionsTotal,
		m.pageCacheTotal,
		m.datasetEntities,
		m.datasetHoneyKg,
	}
}

// Describe implements prometheus.Collector.
func (m *DashboardMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.getCollectors() {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (m *DashboardMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.getCollectors() {
		c.Collect(ch)
	}
}

// Registry returns the registry the collectors were registered with.
func (m *DashboardMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records a finished request. route is the mux pattern,
// never the raw path.
func (m *DashboardMetrics) RecordHTTPRequest(method, route string, statusCode int, duration float64) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration)
}

func (m *DashboardMetrics) RecordTemplateRender(template string, duration float64) {
	m.templateRenderDuration.WithLabelValues(template).Observe(duration)
}

func (m *DashboardMetrics) RecordTemplateRenderError(template string) {
	m.templateRenderErrors.WithLabelValues(template).Inc()
}

func (m *DashboardMetrics) RecordTransition(event, tab string) {
	m.viewTransitionsTotal.WithLabelValues(event, tab).Inc()
}

func (m *DashboardMetrics) RecordFormRejection(field string) {
	m.formRejectionsTotal.WithLabelValues(field).Inc()
}

func (m *DashboardMetrics) RecordPageCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.pageCacheTotal.WithLabelValues(result).Inc()
}

// SetDataset publishes the size of the loaded dataset.
func (m *DashboardMetrics) SetDataset(apiaries, hives, harvests, tasks int, honeyKg float64) {
	m.datasetEntities.WithLabelValues("apiaries").Set(float64(apiaries))
	m.datasetEntities.WithLabelValues("hives").Set(float64(hives))
	m.datasetEntities.WithLabelValues("harvests").Set(float64(harvests))
	m.datasetEntities.WithLabelValues("tasks").Set(float64(tasks))
	m.datasetHoneyKg.Set(honeyKg)
}
