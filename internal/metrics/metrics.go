// Package metrics exposes Prometheus collectors for the crawl pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	crawlerPagesTotal           prometheus.Counter
	crawlerFetchFailuresTotal   prometheus.Counter
	crawlerLinksTotal           prometheus.Counter
	crawlerJobsPublishedTotal   prometheus.Counter
	crawlerPublishFailuresTotal prometheus.Counter
	crawlerFrontierDepth        prometheus.Gauge

	once sync.Once
)

// Init initializes the Prometheus collectors. It is safe to call multiple
// times.
func Init() {
	once.Do(func() {
		crawlerPagesTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "maman_pages_total",
			Help: "Total number of pages fetched and visited.",
		})
		crawlerFetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "maman_fetch_failures_total",
			Help: "Total number of fetches dropped for transport or decoding errors.",
		})
		crawlerLinksTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "maman_links_total",
			Help: "Total number of eligible outbound links discovered.",
		})
		crawlerJobsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "maman_jobs_published_total",
			Help: "Total number of jobs pushed onto the queue.",
		})
		crawlerPublishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "maman_publish_failures_total",
			Help: "Total number of queue pushes that failed.",
		})
		crawlerFrontierDepth = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "maman_frontier_depth",
			Help: "Number of URLs waiting on the unvisited stack.",
		})
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePage records a visited page and its discovered link count.
func ObservePage(links int) {
	crawlerPagesTotal.Inc()
	if links > 0 {
		crawlerLinksTotal.Add(float64(links))
	}
}

// ObserveFetchFailure records a fetch dropped from the crawl.
func ObserveFetchFailure() {
	crawlerFetchFailuresTotal.Inc()
}

// ObserveJobPublished records a successful queue push.
func ObserveJobPublished() {
	crawlerJobsPublishedTotal.Inc()
}

// ObservePublishFailure records a failed queue push.
func ObservePublishFailure() {
	crawlerPublishFailuresTotal.Inc()
}

// SetFrontierDepth updates the unvisited stack gauge.
func SetFrontierDepth(depth int) {
	crawlerFrontierDepth.Set(float64(depth))
}
