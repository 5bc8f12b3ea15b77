package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// tokensIssuedTotal counts issued tokens by kind.
	tokensIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total bearer tokens issued by kind",
		},
		[]string{"kind"}, // kind: user | guest
	)

	// ownerResolutionsTotal counts how request owners were resolved.
	ownerResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_owner_resolutions_total",
			Help: "Request owner resolutions by outcome",
		},
		[]string{"outcome"}, // outcome: token | guest | rejected
	)
)

// RecordTokenIssued records an issued token.
func RecordTokenIssued(kind string) {
	tokensIssuedTotal.WithLabelValues(kind).Inc()
}

// RecordOwnerResolution records how one request's owner was resolved.
func RecordOwnerResolution(outcome string) {
	ownerResolutionsTotal.WithLabelValues(outcome).Inc()
}
