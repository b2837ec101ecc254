// Command cleaner unifies Samsung Health export files: it scans a base
// directory for per-metric CSV exports, normalizes and decodes them, and
// writes one cleaned table per metric under <dir>/cleaned.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"healthcli/internal/config"
	"healthcli/internal/health"
	"healthcli/internal/infrastructure"
	"healthcli/internal/pipeline"
)

func main() {
	workbook := flag.Bool("xlsx", false, "also write a summary Excel workbook with one sheet per metric")
	sqlite := flag.Bool("sqlite", false, "also persist cleaned tables into cleaned/health.db")
	watch := flag.Bool("watch", false, "keep running and re-clean when export files change")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <export-directory>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	baseDir := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if info, err := os.Stat(baseDir); err != nil || !info.IsDir() {
		logger.Error("Export directory is not readable", slog.String("dir", baseDir))
		fmt.Fprintf(os.Stderr, "error: %s is not a readable directory\n", baseDir)
		os.Exit(1)
	}

	opts := pipeline.Options{Workbook: *workbook, SQLite: *sqlite}
	runner := pipeline.NewRunner(health.DefaultRegistry(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runOnce(ctx, runner, baseDir, opts); err != nil {
		logger.Error("Cleaning run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *watch {
		if err := watchAndRerun(ctx, runner, logger, baseDir, opts); err != nil && ctx.Err() == nil {
			logger.Error("Watch mode failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

// runOnce executes one cleaning pass and prints the per-metric summary
// lines.
func runOnce(ctx context.Context, runner *pipeline.Runner, baseDir string, opts pipeline.Options) error {
	results, err := runner.Run(ctx, baseDir, opts)
	if err != nil {
		return err
	}
	for _, res := range results {
		fmt.Printf("[OK] %s cleaned and unified.\n", res.Metric)
	}
	return nil
}

// watchAndRerun re-runs the pipeline whenever an export file in the base
// directory changes. Events are debounced so one export batch triggers
// one run.
func watchAndRerun(ctx context.Context, runner *pipeline.Runner, logger *slog.Logger, baseDir string, opts pipeline.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(baseDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", baseDir, err)
	}
	logger.Info("Watching export directory", slog.String("dir", baseDir))

	const debounce = 2 * time.Second
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isExportEvent(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", slog.String("error", err.Error()))
		case <-pending:
			logger.Info("Export files changed, re-running")
			if err := runOnce(ctx, runner, baseDir, opts); err != nil {
				logger.Error("Cleaning run failed", slog.String("error", err.Error()))
			}
		}
	}
}

// isExportEvent filters watcher noise: only created or modified CSV
// files outside the cleaned directory trigger a re-run.
func isExportEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}
