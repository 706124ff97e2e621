package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RentalRequestsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roofbox_rental_requests_created_total",
		Help: "Total number of rental requests persisted.",
	})

	RentalRequestsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roofbox_rental_requests_rejected_total",
		Help: "Total number of rental submissions rejected before persistence.",
	},
		[]string{"reason"},
	)

	ContactMessagesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roofbox_contact_messages_created_total",
		Help: "Total number of contact messages persisted.",
	})

	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roofbox_notifications_sent_total",
		Help: "Total number of notification emails accepted by the mail provider.",
	},
		[]string{"kind"},
	)

	NotificationsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roofbox_notifications_failed_total",
		Help: "Total number of notifications that were rejected or could not be sent.",
	},
		[]string{"kind"},
	)

	NotificationsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roofbox_notifications_in_flight",
		Help: "Current number of notifications being sent in the background.",
	})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roofbox_rate_limited_total",
		Help: "Total number of requests refused by the per-client rate limiter.",
	})
)
