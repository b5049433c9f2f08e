// Package pipeline orchestrates one export run: load model results, fold
// them into report categories, and publish the aggregated rows.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fjordlab/vannrapport/internal/domain"
	"github.com/fjordlab/vannrapport/internal/observability"
)

// ResultLoader produces the model result table for one export run.
type ResultLoader interface {
	Load(ctx context.Context) (domain.ModelTable, error)
}

// ResultLoaderFunc adapts a function to ResultLoader.
type ResultLoaderFunc func(ctx context.Context) (domain.ModelTable, error)

func (f ResultLoaderFunc) Load(ctx context.Context) (domain.ModelTable, error) {
	return f(ctx)
}

// RowPublisher writes an aggregated table to the destination.
type RowPublisher interface {
	PublishRows(ctx context.Context, table domain.AggregatedTable) error
}

// Exporter runs a single load-aggregate-publish cycle.
type Exporter struct {
	loader    ResultLoader
	publisher RowPublisher
	pollutant domain.Pollutant
	version   domain.ModelVersion
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates an Exporter for one (pollutant, model version) export job.
func New(loader ResultLoader, publisher RowPublisher, pollutant domain.Pollutant, version domain.ModelVersion,
	logger *slog.Logger, metrics *observability.Metrics) *Exporter {
	return &Exporter{
		loader:    loader,
		publisher: publisher,
		pollutant: pollutant,
		version:   version,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a run has completed successfully.
func (e *Exporter) CheckReadiness(_ context.Context) error {
	if !e.ready.Load() {
		return errors.New("no export run has completed yet")
	}
	return nil
}

// Run executes one export. The first failure at any stage aborts the run;
// there are no retries.
func (e *Exporter) Run(ctx context.Context) error {
	start := time.Now()
	e.logger.Info("export starting", "pollutant", e.pollutant, "model_version", e.version)
	e.metrics.ExportRunning.Set(1)
	defer e.metrics.ExportRunning.Set(0)

	table, err := e.loader.Load(ctx)
	if err != nil {
		e.metrics.ExportErrors.Inc()
		return fmt.Errorf("load model results: %w", err)
	}

	aggregated, err := domain.Aggregate(table, e.pollutant, e.version)
	if err != nil {
		e.metrics.ExportErrors.Inc()
		return fmt.Errorf("aggregate model results: %w", err)
	}

	if len(aggregated.Rows) == 0 {
		e.logger.Warn("no rows to export", "pollutant", e.pollutant, "model_version", e.version)
	}

	if err := e.publisher.PublishRows(ctx, aggregated); err != nil {
		e.metrics.ExportErrors.Inc()
		return fmt.Errorf("publish aggregated rows: %w", err)
	}

	e.metrics.RowsExported.Add(float64(len(aggregated.Rows)))
	e.metrics.ExportDuration.Observe(time.Since(start).Seconds())
	e.ready.Store(true)

	e.logger.Info("export complete",
		"rows", len(aggregated.Rows),
		"duration", time.Since(start),
	)
	return nil
}
