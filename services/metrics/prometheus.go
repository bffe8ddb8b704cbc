package metricsvc

import (
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/funil/core"
)

// CountFunc returns the number of cards per column, keyed by pipeline then column title.
type CountFunc func() map[string]map[string]int

// PrometheusMetrics exposes store activity on its own registry.
type PrometheusMetrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	demotions prometheus.Counter
}

var _ core.Metrics = (*PrometheusMetrics)(nil)

// namespace turns an app name into a valid metric name prefix.
func namespace(appName string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return unicode.ToLower(r)
		default:
			return '_'
		}
	}, appName)
}

func NewPrometheusMetrics(appName string, counts CountFunc) *PrometheusMetrics {
	appName = namespace(appName)
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName,
			Name:      "store_mutations_total",
			Help:      "Store mutations by entity, operation and whether they matched anything.",
		}, []string{"entity", "op", "matched"}),
		demotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: appName,
			Name:      "proposal_demotions_total",
			Help:      "Accepted proposals demoted to Superseded.",
		}),
	}
	m.registry.MustRegister(
		m.mutations,
		m.demotions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if counts != nil {
		m.registry.MustRegister(newCardCollector(appName, counts))
	}
	return m
}

func (m *PrometheusMetrics) Mutation(entity, op string, matched bool) {
	m.mutations.WithLabelValues(entity, op, strconv.FormatBool(matched)).Inc()
}

func (m *PrometheusMetrics) Demoted(n int) {
	if n > 0 {
		m.demotions.Add(float64(n))
	}
}

func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// cardCollector reads the column sizes on every scrape.
type cardCollector struct {
	desc   *prometheus.Desc
	counts CountFunc
}

func newCardCollector(appName string, counts CountFunc) *cardCollector {
	return &cardCollector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(appName, "pipeline", "cards"),
			"Cards held by each pipeline column.",
			[]string{"pipeline", "column"}, nil,
		),
		counts: counts,
	}
}

func (c *cardCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *cardCollector) Collect(ch chan<- prometheus.Metric) {
	for pipeline, columns := range c.counts() {
		for column, n := range columns {
			ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n), pipeline, column)
		}
	}
}
