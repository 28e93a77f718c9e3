// Command processor runs one extraction from the command line and
// writes the assembled dataset as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dscat/internal/catalog"
	"dscat/internal/catalogstore"
	"dscat/internal/config"
	"dscat/internal/exporter"
	"dscat/internal/infrastructure"
	"dscat/internal/resolver"
	"dscat/internal/sources"
)

func main() {
	sourceName := flag.String("source", "", "name of the catalog source to process (required)")
	kind := flag.String("kind", "", "extraction kind (extractor-specific, empty for default)")
	dir := flag.String("dir", "", "raw file directory for an ad-hoc source not in the catalog")
	extractorID := flag.String("extractor", "lvq-pak", "extractor for an ad-hoc source")
	out := flag.String("out", "", "output CSV path (defaults to <reports>/<source>.csv)")
	flag.Parse()

	if *sourceName == "" {
		fmt.Fprintln(os.Stderr, "usage: processor -source <name> [-kind <kind>] [-dir <path>] [-out <file>]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// One-shot tool, log to console regardless of server settings.
	cfg.Logging.Output = "console"
	cfg.Logging.Format = "text"
	logger := infrastructure.MustInitializeLogger(cfg.Logging)

	paths, err := cfg.ResolvePaths()
	if err != nil {
		logger.Error("failed to resolve paths", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	if err := run(ctx, logger, paths, *sourceName, *kind, *dir, *extractorID, *out); err != nil {
		logger.Error("processing failed", "source", *sourceName, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, paths *config.Paths, sourceName, kind, dir, extractorID, out string) error {
	reg := catalog.NewRegistry(catalog.WithAssembler(catalog.NewAssembler(catalog.WithLogger(logger))))
	factories := sources.Factories(logger)

	doc, err := catalogstore.NewStore(paths.CatalogFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog file: %w", err)
	}
	if err := catalogstore.Apply(doc, reg, factories, paths.SourcesDir); err != nil {
		return err
	}

	// An explicit directory binds an ad-hoc source, shadowing any
	// catalog entry of the same name. The directory must exist.
	if dir != "" {
		factory, ok := factories[extractorID]
		if !ok {
			return fmt.Errorf("unknown extractor %q", extractorID)
		}
		res := resolver.New(paths.SourcesDir,
			resolver.WithAlias(sourceName, dir),
			resolver.WithLogger(logger))
		resolved, err := res.Resolve(sourceName)
		if err != nil {
			return err
		}
		if err := reg.Rebind(sourceName, resolved, factory()); err != nil {
			return err
		}
	}

	ds, err := reg.Process(ctx, sourceName, catalog.WithKind(kind))
	if err != nil {
		return err
	}

	logger.Info("dataset assembled",
		"source", ds.Name,
		"rows", ds.Rows(),
		"columns", ds.Columns())

	if out == "" {
		out = filepath.Join(paths.ReportsDir, sourceName+".csv")
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteDataset(out, ds, exporter.WriteOptions{}); err != nil {
		return err
	}

	logger.Info("dataset written", "file", out)
	return nil
}
