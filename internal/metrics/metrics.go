// Package metrics defines the Prometheus collectors shared by the engine,
// the importer, and the CLI tools. Collectors are package-level and work
// unregistered; binaries that expose or push metrics call Register once.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values for GrantRequestsTotal.
const (
	OutcomeGranted   = "granted"
	OutcomeEmpty     = "empty"
	OutcomeExhausted = "exhausted"
	OutcomeReplayed  = "replayed"
	OutcomeError     = "error"
)

var GrantRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gift_grant_requests_total",
		Help: "Total number of grant requests by game, mode and outcome",
	},
	[]string{"game", "mode", "outcome"},
)

var GrantedItemsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gift_granted_items_total",
		Help: "Total number of gift items issued",
	},
	[]string{"game", "mode"},
)

var GrantDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "gift_grant_duration_seconds",
		Help:    "Duration of grant request processing in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"mode"},
)

var CycleResetsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gift_cycle_resets_total",
		Help: "Total number of dedup cycle resets after pool exhaustion",
	},
	[]string{"game"},
)

var ExhaustionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gift_pool_exhaustions_total",
		Help: "Total number of requests that found the candidate pool drained",
	},
	[]string{"game"},
)

var ImportFilesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gift_import_files_total",
		Help: "Total number of gift files processed by the importer, by result",
	},
	[]string{"game", "result"},
)

var PurgedRecordsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "gift_ledger_purged_records_total",
		Help: "Total number of ledger records removed by retention cleanup",
	},
)

// Register installs all collectors on the default registry.
func Register() {
	prometheus.MustRegister(
		GrantRequestsTotal,
		GrantedItemsTotal,
		GrantDuration,
		CycleResetsTotal,
		ExhaustionsTotal,
		ImportFilesTotal,
		PurgedRecordsTotal,
	)
}
