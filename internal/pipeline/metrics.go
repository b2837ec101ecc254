package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "healthcli_pipeline_runs_total",
		Help: "Number of cleaning runs started.",
	})

	rowsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "healthcli_pipeline_rows_processed_total",
		Help: "Rows read from export files, per metric.",
	}, []string{"metric"})

	rowsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "healthcli_pipeline_rows_written_total",
		Help: "Rows written to unified tables, per metric.",
	}, []string{"metric"})

	metricFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "healthcli_pipeline_metric_failures_total",
		Help: "Metrics whose processing failed, per metric.",
	}, []string{"metric"})
)
