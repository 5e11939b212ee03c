package metrics

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentdash",
			Subsystem: "asynq",
			Name:      "tasks_processed_total",
			Help:      "Total number of processed tasks.",
		},
		[]string{"task_type"},
	)

	tasksFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentdash",
			Subsystem: "asynq",
			Name:      "tasks_failed_total",
			Help:      "Total number of failed tasks.",
		},
		[]string{"task_type"},
	)

	tasksInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "talentdash",
			Subsystem: "asynq",
			Name:      "tasks_in_progress",
			Help:      "Number of tasks currently in flight.",
		},
		[]string{"task_type"},
	)
)

// AsynqMetricsMiddleware counts processed, failed and in-flight tasks per
// task type.
func AsynqMetricsMiddleware() asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
			taskType := task.Type()
			tasksInProgress.WithLabelValues(taskType).Inc()
			defer tasksInProgress.WithLabelValues(taskType).Dec()

			err := next.ProcessTask(ctx, task)
			if err != nil {
				tasksFailedTotal.WithLabelValues(taskType).Inc()
			}
			tasksProcessedTotal.WithLabelValues(taskType).Inc()
			return err
		})
	}
}
