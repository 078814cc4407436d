// Package main provides the unified volume service:
// - HTTP API: per-creator volume recommendations on demand
// - Batch (scheduled): re-optimize all known creators, write reports
// - Observability: /health, /metrics, /status
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"creator-volume-lab/internal/config"
	"creator-volume-lab/internal/domain"
	"creator-volume-lab/internal/observability"
	"creator-volume-lab/internal/optimizer"
	"creator-volume-lab/internal/reporting"
	"creator-volume-lab/internal/storage"
	chstore "creator-volume-lab/internal/storage/clickhouse"
	"creator-volume-lab/internal/storage/memory"
	"creator-volume-lab/internal/storage/migrations"
	pgstore "creator-volume-lab/internal/storage/postgres"
)

// Server holds all components of the unified service.
type Server struct {
	// Configuration
	postgresDSN   string
	clickhouseDSN string
	useMemory     bool
	outputDir     string
	batchInterval time.Duration

	// Components
	stores *allStores
	opt    *optimizer.Optimizer
	logger *log.Logger

	// State
	mu            sync.Mutex
	started       time.Time
	lastBatchRun  time.Time
	batchRunning  bool
	batchRuns     int
	optimizations int
}

// allStores holds all storage implementations.
type allStores struct {
	profileStore    storage.CreatorProfileStore
	horizonStore    storage.HorizonScoreStore
	sampleStore     storage.ElasticitySampleStore
	weekdayStore    storage.WeekdayPerformanceStore
	rankingStore    storage.ContentRankingStore
	captionStore    storage.CaptionAssetStore
	predictionStore storage.PredictionStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	migrate := flag.Bool("migrate", true, "Apply embedded migrations on startup")
	tuningPath := flag.String("tuning", os.Getenv("TUNING_FILE"), "Path to YAML tuning file (defaults used when empty)")
	outputDir := flag.String("output-dir", "output", "Output directory for batch reports")
	batchInterval := flag.Duration("batch-interval", 24*time.Hour, "Batch re-optimization interval")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	verbose := flag.Bool("verbose", false, "Verbose pipeline logging")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	// Load tuning
	tuning := config.Default()
	if *tuningPath != "" {
		var err error
		tuning, err = config.Load(*tuningPath)
		if err != nil {
			logger.Fatalf("Failed to load tuning: %v", err)
		}
		logger.Printf("Loaded tuning overrides from %s", *tuningPath)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())

	// Create stores
	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory, *migrate)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Create server
	server := &Server{
		postgresDSN:   *postgresDSN,
		clickhouseDSN: *clickhouseDSN,
		useMemory:     *useMemory,
		outputDir:     *outputDir,
		batchInterval: *batchInterval,
		stores:        stores,
		logger:        logger,
		started:       time.Now(),
		opt: optimizer.New(optimizer.Options{
			ProfileStore:    stores.profileStore,
			HorizonStore:    stores.horizonStore,
			SampleStore:     stores.sampleStore,
			WeekdayStore:    stores.weekdayStore,
			RankingStore:    stores.rankingStore,
			CaptionStore:    stores.captionStore,
			PredictionStore: stores.predictionStore,
			Tuning:          tuning,
			Verbose:         *verbose,
		}),
	}

	// Channel to signal completion
	done := make(chan error, 1)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	// Start HTTP server
	go server.startHTTPServer(*addr)

	// Run the batch scheduler
	err = server.runBatchScheduler(ctx)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory, migrate bool) (*allStores, func(), error) {
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

	// PostgreSQL
	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if migrate {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
	}

	// ClickHouse
	var chConn *chstore.Conn
	if migrate {
		chConn, err = migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	} else {
		chConn, err = chstore.NewConn(ctx, clickhouseDSN)
	}
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
	}

	stores := &allStores{
		// PostgreSQL stores (reference data + the prediction write path)
		profileStore:    pgstore.NewCreatorProfileStore(pool),
		rankingStore:    pgstore.NewContentRankingStore(pool),
		captionStore:    pgstore.NewCaptionAssetStore(pool),
		predictionStore: pgstore.NewPredictionStore(pool),

		// ClickHouse stores (analytics history)
		horizonStore: chstore.NewHorizonScoreStore(chConn),
		sampleStore:  chstore.NewElasticitySampleStore(chConn),
		weekdayStore: chstore.NewWeekdayPerformanceStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// runBatchScheduler re-optimizes all known creators on schedule.
func (s *Server) runBatchScheduler(ctx context.Context) error {
	s.logger.Printf("Starting batch scheduler (interval: %v)...", s.batchInterval)

	// Run immediately on start
	s.runBatch(ctx)

	ticker := time.NewTicker(s.batchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runBatch(ctx)
		}
	}
}

// runBatch computes a recommendation for every stored creator and writes
// markdown/CSV reports.
func (s *Server) runBatch(ctx context.Context) {
	s.mu.Lock()
	if s.batchRunning {
		s.mu.Unlock()
		s.logger.Println("Batch already running, skipping...")
		return
	}
	s.batchRunning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.batchRunning = false
		s.lastBatchRun = time.Now()
		s.batchRuns++
		s.mu.Unlock()
	}()

	s.logger.Println("Running batch re-optimization...")
	start := time.Now()

	profiles, err := s.stores.profileStore.GetAll(ctx)
	if err != nil {
		s.logger.Printf("Batch error: load profiles: %v", err)
		observability.RecordBatchRun("error", time.Since(start).Seconds())
		return
	}

	results := make([]*domain.OptimizedVolumeResult, 0, len(profiles))
	for _, p := range profiles {
		if ctx.Err() != nil {
			return
		}
		res, err := s.opt.Compute(ctx, p.CreatorID)
		if err != nil {
			s.logger.Printf("Batch: creator %s rejected: %v", p.CreatorID, err)
			continue
		}
		results = append(results, res)
	}

	s.mu.Lock()
	s.optimizations += len(results)
	s.mu.Unlock()

	if err := s.writeReports(results, start); err != nil {
		s.logger.Printf("Batch report error: %v", err)
		observability.RecordBatchRun("error", time.Since(start).Seconds())
		return
	}

	s.logger.Printf("Batch completed in %v: %d creators optimized", time.Since(start), len(results))
	observability.RecordBatchRun("success", time.Since(start).Seconds())
	observability.DefaultMetrics.LastSuccessfulBatch.Set(float64(time.Now().Unix()))
}

func (s *Server) writeReports(results []*domain.OptimizedVolumeResult, generatedAt time.Time) error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	report := reporting.Build(results, generatedAt.UTC())

	mdPath := filepath.Join(s.outputDir, "RECOMMENDATIONS.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", mdPath, err)
	}

	csvPath := filepath.Join(s.outputDir, "recommendations.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report.Rows)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", csvPath, err)
	}

	return nil
}

// startHTTPServer starts the HTTP server for the API and observability.
func (s *Server) startHTTPServer(addr string) {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	mux.Handle("/metrics", observability.Handler())

	// Status endpoint
	mux.HandleFunc("/status", s.handleStatus)

	// Volume recommendation endpoint
	mux.HandleFunc("/v1/creators/", s.handleVolume)

	s.logger.Printf("Starting HTTP server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		s.logger.Printf("HTTP server error: %v", err)
	}
}

// handleVolume serves GET /v1/creators/{id}/volume.
func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/creators/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "volume" {
		http.NotFound(w, r)
		return
	}
	creatorID := parts[0]

	res, err := s.opt.Compute(r.Context(), creatorID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.optimizations++
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status        string    `json:"status"`
	Uptime        string    `json:"uptime"`
	Storage       string    `json:"storage"`
	LastBatchRun  time.Time `json:"last_batch_run,omitempty"`
	BatchRuns     int       `json:"batch_runs"`
	BatchRunning  bool      `json:"batch_running"`
	Optimizations int       `json:"optimizations"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	storageMode := "postgres+clickhouse"
	if s.useMemory {
		storageMode = "memory"
	}

	resp := StatusResponse{
		Status:        "running",
		Uptime:        time.Since(s.started).String(),
		Storage:       storageMode,
		LastBatchRun:  s.lastBatchRun,
		BatchRuns:     s.batchRuns,
		BatchRunning:  s.batchRunning,
		Optimizations: s.optimizations,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
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
