package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"healthcli/internal/exporter"
	"healthcli/internal/files"
	"healthcli/internal/health"
	"healthcli/internal/importer"
)

// CleanedDirName is the sub-directory of the export directory that
// receives the unified tables.
const CleanedDirName = "cleaned"

// Event reports pipeline progress to an optional observer (the dashboard
// streams these over its websocket).
type Event struct {
	Type   string `json:"type"` // metric_start, metric_done, metric_skipped, metric_failed, run_done
	Metric string `json:"metric,omitempty"`
	Output string `json:"output,omitempty"`
	Files  int    `json:"files,omitempty"`
	Rows   int    `json:"rows,omitempty"`
	Error  string `json:"error,omitempty"`
}

// MetricResult summarizes one successfully produced metric.
type MetricResult struct {
	Metric string
	Output string
	Files  int
	Rows   int
}

// Options toggles the optional output destinations.
type Options struct {
	// Workbook also writes cleaned/health_summary.xlsx with one sheet
	// per metric.
	Workbook bool
	// SQLite also persists each table into cleaned/health.db.
	SQLite bool
}

// Runner executes the cleaning pipeline over one export directory.
// Metrics are processed sequentially and independently: one metric's
// failure never aborts the others.
type Runner struct {
	registry *health.Registry
	logger   *slog.Logger
	progress func(Event)
}

// NewRunner creates a pipeline runner.
func NewRunner(registry *health.Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{registry: registry, logger: logger}
}

// OnProgress registers a progress observer. Must be set before Run.
func (r *Runner) OnProgress(fn func(Event)) {
	r.progress = fn
}

// Run cleans every registered metric found under baseDir and writes the
// unified tables to baseDir/cleaned. It returns the per-metric results;
// the returned error covers only setup failures, never individual
// metrics.
func (r *Runner) Run(ctx context.Context, baseDir string, opts Options) ([]MetricResult, error) {
	runsTotal.Inc()

	outDir := filepath.Join(baseDir, CleanedDirName)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	discovery := files.NewDiscovery(baseDir)
	writer := exporter.NewCSVWriter(r.logger)

	var sqlite *exporter.SQLiteWriter
	if opts.SQLite {
		var err error
		sqlite, err = exporter.OpenSQLite(filepath.Join(outDir, "health.db"))
		if err != nil {
			return nil, err
		}
		defer sqlite.Close()
	}

	var results []MetricResult
	var sheets []exporter.WorkbookSheet

	for _, def := range r.registry.Definitions() {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		table, fileCount, err := r.processMetric(def, discovery)
		if err != nil {
			metricFailures.WithLabelValues(def.ID).Inc()
			r.logger.Error("Metric processing failed",
				slog.String("metric", def.ID),
				slog.String("error", err.Error()))
			r.emit(Event{Type: "metric_failed", Metric: def.ID, Error: err.Error()})
			continue
		}
		if fileCount == 0 {
			r.emit(Event{Type: "metric_skipped", Metric: def.ID})
			continue
		}

		outPath := filepath.Join(outDir, def.OutputName)
		if err := writer.WriteTable(outPath, table); err != nil {
			metricFailures.WithLabelValues(def.ID).Inc()
			r.logger.Error("Failed to write unified table",
				slog.String("metric", def.ID),
				slog.String("error", err.Error()))
			r.emit(Event{Type: "metric_failed", Metric: def.ID, Error: err.Error()})
			continue
		}
		if sqlite != nil {
			if err := sqlite.WriteTable(def.ID, table); err != nil {
				r.logger.Warn("Failed to persist table to sqlite",
					slog.String("metric", def.ID),
					slog.String("error", err.Error()))
			}
		}
		if opts.Workbook {
			sheets = append(sheets, exporter.WorkbookSheet{Name: def.ID, Table: table})
		}

		rowsWritten.WithLabelValues(def.ID).Add(float64(len(table.Rows)))
		results = append(results, MetricResult{
			Metric: def.ID,
			Output: def.OutputName,
			Files:  fileCount,
			Rows:   len(table.Rows),
		})
		r.emit(Event{Type: "metric_done", Metric: def.ID, Output: def.OutputName, Files: fileCount, Rows: len(table.Rows)})
	}

	if opts.Workbook && len(sheets) > 0 {
		workbookPath := filepath.Join(outDir, "health_summary.xlsx")
		if err := exporter.WriteWorkbook(workbookPath, sheets); err != nil {
			r.logger.Warn("Failed to write summary workbook", slog.String("error", err.Error()))
		} else {
			r.logger.Info("Wrote summary workbook", slog.String("path", workbookPath))
		}
	}

	r.emit(Event{Type: "run_done", Files: len(results)})
	return results, nil
}

// processMetric reads, normalizes, decodes and merges all fragments of
// one metric. A metric with zero matching files returns fileCount 0.
func (r *Runner) processMetric(def health.MetricDefinition, discovery *files.Discovery) (health.Table, int, error) {
	matches, err := discovery.FindByPattern(def.SourcePattern)
	if err != nil {
		return health.Table{}, 0, err
	}
	if len(matches) == 0 {
		r.logger.Debug("No matching files for metric", slog.String("metric", def.ID))
		return health.Table{}, 0, nil
	}

	r.emit(Event{Type: "metric_start", Metric: def.ID, Files: len(matches)})

	drop := NewDropSet(def)
	handler := HandlerFor(def.ID)

	var fragments []health.Table
	for _, file := range matches {
		raw, err := importer.ReadFile(file.Path)
		if err != nil {
			return health.Table{}, 0, fmt.Errorf("%s: %w", file.Name, err)
		}
		rowsProcessed.WithLabelValues(def.ID).Add(float64(len(raw.Rows)))
		fragments = append(fragments, handler.Decode(Normalize(raw, drop)))
	}

	merged := handler.Aggregate(MergeFragments(fragments))
	return merged, len(matches), nil
}

func (r *Runner) emit(event Event) {
	if r.progress != nil {
		r.progress(event)
	}
}
