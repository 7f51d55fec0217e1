// Package metrics defines all custom Prometheus metrics for the RiftBuddy
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "riftbuddy"

// LoginsTotal counts Riot login callbacks.
// Label:
//   - result: "success", "exchange_failed", or "invalid_state"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of Riot login callbacks, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts authorization decisions made by the RBAC
// middleware.
// Label:
//   - result: "allowed" or "denied"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of role-based authorization decisions, by result.",
	},
	[]string{"result"},
)

// FriendRequestsTotal counts friend-request lifecycle operations that
// completed successfully.
// Label:
//   - action: "sent", "accepted", "declined", or "removed"
var FriendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "friend_requests_total",
		Help:      "Total number of friend-request operations, by action.",
	},
	[]string{"action"},
)

// UsersCreatedTotal counts user accounts created, at first login or through
// the directory API.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created.",
	},
)
