// Package metrics defines the custom Prometheus metrics of the marketplace
// roles API. HTTP request metrics come from the echoprometheus middleware;
// this package only holds the auth-specific counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRejectedTotal counts bearer credentials refused before any role check.
// Label:
//   - reason: "missing" (no usable Authorization header) or "malformed"
var TokensRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_rejected_total",
		Help:      "Total number of presented tokens rejected before authorization.",
	},
	[]string{"reason"},
)

// AccessDecisionsTotal counts role-gate outcomes.
// Labels:
//   - required_role: "buyer" or "seller"
//   - decision: "authorized" or "denied"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of role-gated access decisions.",
	},
	[]string{"required_role", "decision"},
)
