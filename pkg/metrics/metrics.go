package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentOpens = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docmeta", Name: "document_opens_total", Help: "Number of last-opened requests by content type."},
		[]string{"content_type"},
	)
	DocumentOpenFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docmeta", Name: "document_open_failures_total", Help: "Number of failed last-opened requests by content type."},
		[]string{"content_type"},
	)
)

// RegisterCollectors registers all collectors on the given registerer.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentOpens, DocumentOpenFailures)
}
