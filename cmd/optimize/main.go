// Package main provides a one-shot CLI: compute a volume recommendation for
// a single creator and print it, optionally writing a markdown/CSV report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/optimizer"
	"creator-volume-lab/internal/reporting"
	"creator-volume-lab/internal/storage"
	chstore "creator-volume-lab/internal/storage/clickhouse"
	"creator-volume-lab/internal/storage/memory"
	pgstore "creator-volume-lab/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	creatorID := flag.String("creator-id", "", "Creator to optimize (required)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage (empty history, neutral defaults)")
	tuningPath := flag.String("tuning", os.Getenv("TUNING_FILE"), "Path to YAML tuning file (defaults used when empty)")
	outputDir := flag.String("output-dir", "", "Write RECOMMENDATIONS.md and recommendations.csv here (optional)")
	verbose := flag.Bool("verbose", false, "Verbose pipeline logging")

	flag.Parse()

	logger := log.New(os.Stderr, "[optimize] ", log.LstdFlags)

	if *creatorID == "" {
		logger.Fatal("--creator-id is required")
	}
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory to run without storage)")
	}

	tuning := config.Default()
	if *tuningPath != "" {
		var err error
		tuning, err = config.Load(*tuningPath)
		if err != nil {
			logger.Fatalf("Failed to load tuning: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	opt := optimizer.New(optimizer.Options{
		ProfileStore:    stores.profileStore,
		HorizonStore:    stores.horizonStore,
		SampleStore:     stores.sampleStore,
		WeekdayStore:    stores.weekdayStore,
		RankingStore:    stores.rankingStore,
		CaptionStore:    stores.captionStore,
		PredictionStore: stores.predictionStore,
		Tuning:          tuning,
		Verbose:         *verbose,
	})

	res, err := opt.Compute(ctx, *creatorID)
	if err != nil {
		logger.Fatalf("Optimization rejected: %v", err)
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Fatalf("Encode result: %v", err)
	}
	fmt.Println(string(out))

	if *outputDir != "" {
		if err := writeReports(*outputDir, res); err != nil {
			logger.Fatalf("Write reports: %v", err)
		}
		logger.Printf("Reports written to %s/", *outputDir)
	}

	if res.HasWarnings() {
		for _, w := range res.CaptionWarnings {
			logger.Printf("WARNING: %s", w)
		}
	}
}

type allStores struct {
	profileStore    storage.CreatorProfileStore
	horizonStore    storage.HorizonScoreStore
	sampleStore     storage.ElasticitySampleStore
	weekdayStore    storage.WeekdayPerformanceStore
	rankingStore    storage.ContentRankingStore
	captionStore    storage.CaptionAssetStore
	predictionStore storage.PredictionStore
}

func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			profileStore:    memory.NewCreatorProfileStore(),
			horizonStore:    memory.NewHorizonScoreStore(),
			sampleStore:     memory.NewElasticitySampleStore(),
			weekdayStore:    memory.NewWeekdayPerformanceStore(),
			rankingStore:    memory.NewContentRankingStore(),
			captionStore:    memory.NewCaptionAssetStore(),
			predictionStore: memory.NewPredictionStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	chConn, err := chstore.NewConn(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
	}

	stores := &allStores{
		profileStore:    pgstore.NewCreatorProfileStore(pool),
		rankingStore:    pgstore.NewContentRankingStore(pool),
		captionStore:    pgstore.NewCaptionAssetStore(pool),
		predictionStore: pgstore.NewPredictionStore(pool),
		horizonStore:    chstore.NewHorizonScoreStore(chConn),
		sampleStore:     chstore.NewElasticitySampleStore(chConn),
		weekdayStore:    chstore.NewWeekdayPerformanceStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

func writeReports(dir string, res *domain.OptimizedVolumeResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	report := reporting.Build([]*domain.OptimizedVolumeResult{res}, time.Now().UTC())

	mdPath := filepath.Join(dir, "RECOMMENDATIONS.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", mdPath, err)
	}

	csvPath := filepath.Join(dir, "recommendations.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report.Rows)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", csvPath, err)
	}

	return nil
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
