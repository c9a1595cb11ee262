// Package metrics defines all custom Prometheus metrics for the disc-golf
// storefront API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "discgolf"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", or "unauthorized"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts account registrations.
// Label:
//   - result: "success" or "failure"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-up attempts, by result.",
	},
	[]string{"result"},
)

// PurchasesTotal counts committed purchases.
// Label:
//   - kind: "cart" (whole cart) or "single" (one disc)
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of committed purchases, by kind.",
	},
	[]string{"kind"},
)

// StockConflictsTotal counts cart lines reported by the check phase as
// requesting more than the available stock.
var StockConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_conflicts_total",
		Help:      "Total number of cart lines whose requested quantity exceeded stock at check time.",
	},
)

// LessonsBookedTotal counts lessons claimed by a subscriber.
var LessonsBookedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lessons_booked_total",
		Help:      "Total number of lessons claimed by a subscriber.",
	},
)

// CatalogCacheTotal counts catalog cache lookups.
// Label:
//   - result: "hit" or "miss"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
