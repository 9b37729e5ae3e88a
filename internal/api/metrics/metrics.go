// Package metrics defines and registers all custom Prometheus metrics for the
// counselling booking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at package init; the router
// exposes them on /metrics alongside the echoprometheus request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "counselling"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsTotal counts successfully committed bookings.
var BookingsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_total",
		Help:      "Total number of slots booked.",
	},
)

// BookingRejectionsTotal counts bookings refused by policy.
// Label:
//   - reason: "past_date", "taken", "blocked", "holiday"
var BookingRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_rejections_total",
		Help:      "Total number of booking attempts rejected, by reason.",
	},
	[]string{"reason"},
)

// CancellationsTotal counts bookings removed.
// Label:
//   - by: "owner" or "admin"
var CancellationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cancellations_total",
		Help:      "Total number of bookings cancelled, by who cancelled.",
	},
	[]string{"by"},
)

// ── Moderation metrics ────────────────────────────────────────────────────────

// ModerationActionsTotal counts admin slot and holiday mutations.
// Label:
//   - action: "block", "unblock", "complete_session", "mark_holiday", "unmark_holiday"
var ModerationActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_actions_total",
		Help:      "Total number of admin moderation actions, by action.",
	},
	[]string{"action"},
)

// ExportsTotal counts spreadsheet exports served.
var ExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of weekly spreadsheet exports generated.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts new accounts created.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginFailuresTotal counts rejected logins.
// Label:
//   - reason: "credentials" or "role"
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed logins, by reason.",
	},
	[]string{"reason"},
)
