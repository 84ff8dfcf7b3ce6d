// Package metrics defines the custom Prometheus metrics of the toolbox API.
// It is the single source of truth for metric names, labels and help strings.
//
// All metrics are registered on the default registry through promauto and are
// exposed by the echoprometheus handler mounted at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "toolbox"

// ── Access control ────────────────────────────────────────────────────────────

// AuthzDecisionsTotal counts credential and admin-guard decisions.
// Label:
//   - outcome: "missing_token", "invalid_token", "authenticated",
//     "unknown_user", "not_admin", "admin", "lookup_error"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authentication and authorization decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Orders ────────────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts orders accepted through POST /order.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	},
)

// NotificationsTotal counts order confirmation emails by result.
// Label:
//   - result: "sent", "failed" or "dropped" (queue full or shutting down)
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of order confirmation emails, by result.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks the number of confirmation jobs waiting for a worker.
var NotificationQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of confirmation emails waiting in the dispatcher queue.",
	},
)

// NotificationDuration measures render plus SMTP submission time.
var NotificationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of a confirmation email from dequeue to SMTP acceptance.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Payments ──────────────────────────────────────────────────────────────────

// PaymentIntentsTotal counts payment intent requests.
// Label:
//   - result: "created" or "failed"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment intent requests, by result.",
	},
	[]string{"result"},
)
