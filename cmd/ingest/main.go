// Package main 教材页批量入库入口
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"educa-tennis-api/internal/application/ingestion"
	"educa-tennis-api/internal/config"
	"educa-tennis-api/internal/wire"
	"educa-tennis-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", "", "directory containing page .json files")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -dir <pages-dir>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()

	deps, cleanup, err := wire.InitializeIngestion(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize ingestion: %v", err)
	}
	defer cleanup()

	ingestor := ingestion.NewIngestor(
		deps.Embedder,
		deps.Data.PageRepo,
		deps.Data.Cache,
		&cfg.Ingestion,
		cfg.Embedding.BatchSize,
	)

	report, err := ingestor.IngestDir(ctx, *dir)
	if err != nil {
		log.Fatalf("ingestion failed: %v", err)
	}

	fmt.Printf("Ingested %d pages from %d files in %s\n", report.Pages, report.Files, report.Duration)
	if report.Failed > 0 {
		fmt.Printf("%d files failed:\n", report.Failed)
		for _, e := range report.Errors {
			fmt.Printf("  - %s\n", e)
		}
		os.Exit(1)
	}
}
