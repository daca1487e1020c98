// Command smooth runs the surveillance smoothing pipeline: it reads a raw
// extract snapshot, produces the smoothed analysis table, and writes it as
// a new snapshot.
//
// Usage:
//
//	go run ./cmd/smooth -in data/raw_surveillance.parquet -out data/smoothed_surveillance.parquet
//
// Paths default to INPUT_PATH / OUTPUT_PATH from the environment.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/flu-surveillance-etl/internal/adapter/snapshot"
	"github.com/couchcryptid/flu-surveillance-etl/internal/config"
	"github.com/couchcryptid/flu-surveillance-etl/internal/observability"
	"github.com/couchcryptid/flu-surveillance-etl/internal/pipeline"
)

func main() {
	in := flag.String("in", "", "input snapshot path (overrides INPUT_PATH)")
	out := flag.String("out", "", "output snapshot path (overrides OUTPUT_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *in != "" {
		cfg.InputPath = *in
	}
	if *out != "" {
		cfg.OutputPath = *out
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	reader := snapshot.NewReader(cfg.InputPath, logger)
	writer := snapshot.NewWriter(cfg.OutputPath, logger)
	transformer := pipeline.NewTransformer(cfg.MinGroupWeeks, cfg.KernelBandwidth, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Run(ctx); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	if cfg.PushgatewayURL != "" {
		if err := observability.PushMetrics(cfg.PushgatewayURL, cfg.PushJob); err != nil {
			// The snapshot is already written; a push failure is not fatal.
			logger.Warn("metrics push failed", "error", err)
		}
	}
}
