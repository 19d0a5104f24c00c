// Package metrics defines and registers all custom Prometheus metrics for
// the team tasks API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "teamtasks"

// TasksCreatedTotal counts newly created tasks, whether via the API or an
// import batch.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// StatusTransitionsTotal counts audited status changes.
// Labels:
//   - from: the previous status (e.g. "open")
//   - to: the new status (e.g. "in_progress")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of task status transitions, by from/to pair.",
	},
	[]string{"from", "to"},
)

// ImportRowsTotal counts processed import rows.
// Label:
//   - outcome: "created", "updated", or "skipped"
var ImportRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of import rows processed, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
