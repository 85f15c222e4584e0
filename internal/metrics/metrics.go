// Package metrics declares the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HousesGenerated counts first-time house creations (not cache hits).
	HousesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rizz_houses_generated_total",
		Help: "Number of houses generated (one per fid, ever)",
	})

	// VotesAccepted counts successfully recorded votes.
	VotesAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rizz_votes_accepted_total",
		Help: "Number of votes recorded in the ledger",
	})

	// VotesRejected counts rejected votes by precondition.
	VotesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rizz_votes_rejected_total",
		Help: "Number of votes rejected, labeled by reason",
	}, []string{"reason"})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
