package obs

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the document pipeline collectors.
type Metrics struct {
	// DocumentsRendered counts previews rendered, by template id.
	DocumentsRendered *prometheus.CounterVec
	// DocumentsExported counts generated files, by template id and format.
	DocumentsExported *prometheus.CounterVec
	// PreviewCacheHits counts previews served from the cache.
	PreviewCacheHits prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg (the default
// registerer when nil). Registering twice reuses the existing collectors.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		DocumentsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_rendered_total",
			Help:      "Number of document previews rendered.",
		}, []string{"template"}),
		DocumentsExported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_exported_total",
			Help:      "Number of documents exported to a file.",
		}, []string{"template", "format"}),
		PreviewCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_cache_hits_total",
			Help:      "Number of previews served from the preview cache.",
		}),
	}

	mustRegister(reg, m.DocumentsRendered, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.DocumentsRendered = v
		}
	})
	mustRegister(reg, m.DocumentsExported, func(existing prometheus.Collector) {
		if v, ok := existing.(*prometheus.CounterVec); ok {
			m.DocumentsExported = v
		}
	})
	mustRegister(reg, m.PreviewCacheHits, func(existing prometheus.Collector) {
		if v, ok := existing.(prometheus.Counter); ok {
			m.PreviewCacheHits = v
		}
	})
	return m
}

// Rendered records one rendered preview. Safe on a nil receiver.
func (m *Metrics) Rendered(templateID string) {
	if m == nil {
		return
	}
	m.DocumentsRendered.WithLabelValues(templateID).Inc()
}

// Exported records one exported file. Safe on a nil receiver.
func (m *Metrics) Exported(templateID, format string) {
	if m == nil {
		return
	}
	m.DocumentsExported.WithLabelValues(templateID, format).Inc()
}

// CacheHit records a preview cache hit. Safe on a nil receiver.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.PreviewCacheHits.Inc()
}

func mustRegister(reg prometheus.Registerer, c prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			reuse(are.ExistingCollector)
			return
		}
		panic(fmt.Errorf("register metric: %w", err))
	}
}
