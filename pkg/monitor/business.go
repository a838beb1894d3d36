package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BusinessMetrics tracks what the holder did with the requests shown to them.
type BusinessMetrics struct {
	ReviewsTotal    *prometheus.CounterVec
	SignaturesTotal prometheus.Counter
	PubkeyExports   prometheus.Counter
}

// Business is always usable; Init additionally registers it for scraping.
var Business = newBusinessMetrics()

func newBusinessMetrics() *BusinessMetrics {
	return &BusinessMetrics{
		ReviewsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signer_reviews_total",
			Help: "Review screens by outcome (approved, rejected).",
		}, []string{"outcome"}),
		SignaturesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signer_signatures_total",
			Help: "Signatures produced after holder approval.",
		}),
		PubkeyExports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signer_pubkey_exports_total",
			Help: "Public keys returned to the host.",
		}),
	}
}

// InitBusinessMetrics registers the business metrics.
func InitBusinessMetrics() {
	prometheus.MustRegister(Business.ReviewsTotal, Business.SignaturesTotal, Business.PubkeyExports)
}
