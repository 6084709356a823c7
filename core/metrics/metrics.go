package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RunsCounter        *prometheus.CounterVec
	RunDurationSummary *prometheus.SummaryVec

	ReconcileActionsCounter *prometheus.CounterVec

	LockWaitSummary *prometheus.SummaryVec
)

func init() {
	RunsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_runs_total",
			Help: "A counter metric to measure the total count of inventory runs by final state",
		},
		[]string{"itemtype", "state"},
	)

	RunDurationSummary = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "inventory_run_duration_seconds",
			Help: "A summary metric to measure the total time spent processing an inventory",
		},
		[]string{"itemtype", "state"},
	)

	ReconcileActionsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_reconcile_actions_total",
			Help: "A counter metric to measure the planned reconcile actions per category",
		},
		[]string{"category", "action"},
	)

	LockWaitSummary = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "inventory_lock_wait_seconds",
			Help: "A summary metric to measure time spent waiting for an item lock",
		},
		[]string{"itemtype"},
	)
}

// ObserveRun records the outcome and duration of one inventory run.
func ObserveRun(itemType, state string, started time.Time) {
	RunsCounter.With(prometheus.Labels{"itemtype": itemType, "state": state}).Inc()
	RunDurationSummary.With(prometheus.Labels{"itemtype": itemType, "state": state}).Observe(time.Since(started).Seconds())
}

// AddActions counts planned actions of one kind for a category.
func AddActions(category, action string, n int) {
	if n <= 0 {
		return
	}
	ReconcileActionsCounter.With(prometheus.Labels{"category": category, "action": action}).Add(float64(n))
}

// Handler exposes the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
