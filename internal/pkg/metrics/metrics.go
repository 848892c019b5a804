package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReconcilerRepairs counts integrity-sweep mutations by step.
	ReconcilerRepairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sellerhub",
			Subsystem: "reconciler",
			Name:      "repairs_total",
			Help:      "Total number of integrity sweep repairs",
		},
		[]string{"step"},
	)

	// ProviderFallbacks counts read-path degradations to the free-tier view.
	ProviderFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sellerhub",
			Subsystem: "billing",
			Name:      "provider_fallbacks_total",
			Help:      "Times the remote billing view fell back to the free-tier default",
		},
	)

	// SeatReservationsRejected counts capacity-gated inserts refused at the
	// transactional enforcement point.
	SeatReservationsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sellerhub",
			Subsystem: "capacity",
			Name:      "seat_reservations_rejected_total",
			Help:      "Seat reservations rejected because the plan limit was reached",
		},
	)
)
