// Package metrics defines and registers all custom Prometheus metrics for
// labdesk. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default registry on package init via
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "labdesk"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (no token / bad input), "unknown_role",
//     "transport_error" or "storage_error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logouts.
// Label:
//   - remote: "ok", "failed" or "skipped" (no active session)
var LogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts, by outcome of the remote logout call.",
	},
	[]string{"remote"},
)

// RehydrationsTotal counts startup rehydration outcomes.
// Label:
//   - result: "restored", "empty", "discarded" or "storage_error"
var RehydrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rehydrations_total",
		Help:      "Total number of session rehydrations, by result.",
	},
	[]string{"result"},
)

// ── Routing metrics ───────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard evaluations.
// Labels:
//   - state: "pending", "unauthenticated", "forbidden" or "authorized"
//   - route: the route pattern (e.g. "/patient/:id")
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by state and route.",
	},
	[]string{"state", "route"},
)

// ── Provider metrics ──────────────────────────────────────────────────────────

// ProviderFetchTotal counts read-through cache loads against the lab API.
// Labels:
//   - collection: e.g. "patients", "bills"
//   - result: "ok" or "error"
var ProviderFetchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_fetch_total",
		Help:      "Total number of data provider fetches, by collection and result.",
	},
	[]string{"collection", "result"},
)

// ProviderFetchDuration measures how long a provider fetch takes.
var ProviderFetchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_fetch_duration_seconds",
		Help:      "Duration of data provider fetches against the lab API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"collection"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks events waiting in the audit dispatcher.
var AuditQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in the dispatcher.",
	},
)

// AuditDroppedTotal counts events dropped because the queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit events dropped on a full queue.",
	},
)
