// Command export runs one nutrient-load export: it loads TEOTIL model
// results for the configured catchment and year range, aggregates them into
// the six report categories, and publishes the rows to the Kafka sink topic.
// The process then keeps serving /healthz, /readyz, and /metrics until it
// receives SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/fjordlab/vannrapport/internal/adapter/http"
	kafkaadapter "github.com/fjordlab/vannrapport/internal/adapter/kafka"
	"github.com/fjordlab/vannrapport/internal/adapter/teotil"
	"github.com/fjordlab/vannrapport/internal/config"
	"github.com/fjordlab/vannrapport/internal/domain"
	"github.com/fjordlab/vannrapport/internal/observability"
	"github.com/fjordlab/vannrapport/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.ExportRegine == "" {
		slog.Error("EXPORT_REGINE is required")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loader := resultLoader(cfg, logger, metrics)
	writer := kafkaadapter.NewWriter(cfg, logger)

	exporter := pipeline.New(loader, writer,
		domain.Pollutant(cfg.ExportPollutant), domain.ModelVersion(cfg.ExportModel),
		logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, exporter, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Run the export once.
	go func() {
		if err := exporter.Run(ctx); err != nil {
			logger.Error("export failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}

// resultLoader wires the configured model version to its loader.
func resultLoader(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) pipeline.ResultLoader {
	if cfg.ExportModel == "teotil3" {
		v3 := teotil.NewV3Loader(cfg.Teotil3DataDir, logger, metrics)
		return pipeline.ResultLoaderFunc(func(_ context.Context) (domain.ModelTable, error) {
			return v3.LoadResults(cfg.ExportStartYear, cfg.ExportEndYear,
				cfg.ExportRegine, cfg.ExportAgriLossModel, cfg.ExportReferenceYear)
		})
	}

	v2 := teotil.NewV2Loader(cfg.Teotil2BaseURL, cfg.Teotil2Timeout, logger, metrics)
	return pipeline.ResultLoaderFunc(func(ctx context.Context) (domain.ModelTable, error) {
		return v2.LoadResults(ctx, cfg.ExportStartYear, cfg.ExportEndYear, cfg.ExportRegine)
	})
}
