package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds prometheus counters for the archive service
type Metrics struct {
	registry *prometheus.Registry

	scrapesStarted  prometheus.Counter
	scrapesRejected prometheus.Counter
	scrapesFailed   prometheus.Counter
	messagesSeen    prometheus.Counter
	lookupsTotal    prometheus.Counter
}

// New creates a metrics set backed by its own registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		scrapesStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "archive_scrapes_started_total",
			Help: "Number of scrape runs that passed the cooldown gate",
		}),
		scrapesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "archive_scrapes_rejected_total",
			Help: "Number of scrape runs rejected by the cooldown gate",
		}),
		scrapesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "archive_scrapes_failed_total",
			Help: "Number of scrape runs aborted by transport failures",
		}),
		messagesSeen: factory.NewCounter(prometheus.CounterOpts{
			Name: "archive_messages_seen_total",
			Help: "Number of messages yielded by channel streams",
		}),
		lookupsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "archive_lookups_total",
			Help: "Number of nickname lookups served",
		}),
	}
}

// IncScrapeStarted increments the started scrape counter
func (m *Metrics) IncScrapeStarted() {
	m.scrapesStarted.Inc()
}

// IncScrapeRejected increments the rejected scrape counter
func (m *Metrics) IncScrapeRejected() {
	m.scrapesRejected.Inc()
}

// IncScrapeFailed increments the failed scrape counter
func (m *Metrics) IncScrapeFailed() {
	m.scrapesFailed.Inc()
}

// AddMessagesSeen adds to the seen message counter
func (m *Metrics) AddMessagesSeen(n int) {
	m.messagesSeen.Add(float64(n))
}

// IncLookup increments the lookup counter
func (m *Metrics) IncLookup() {
	m.lookupsTotal.Inc()
}

// Handler returns the /metrics HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
