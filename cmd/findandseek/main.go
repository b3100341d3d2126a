// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"github.com/vietnguyen2358/findandseek"
	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/ai/openai"
	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/reembed"
	"github.com/vietnguyen2358/findandseek/server"
	"github.com/vietnguyen2358/findandseek/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "findandseek",
		Usage: "Natural language person search over camera detections",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API for frame analysis and search",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Address to listen on",
						Value: ":8080",
					},
				}, aiFlags()...),
			},
			{
				Name:      "analyze",
				Usage:     "Run one frame through the analysis pipeline and print the result as JSON",
				Action:    analyzeCommand,
				ArgsUsage: "<image file>",
				Flags: append([]cli.Flag{
					&cli.TimestampFlag{
						Name:   "timestamp",
						Usage:  "Frame capture time (RFC 3339), defaults to now",
						Layout: time.RFC3339,
					},
				}, aiFlags()...),
			},
			{
				Name:      "search",
				Usage:     "Search stored detections with a natural language description",
				Action:    searchCommand,
				ArgsUsage: "<description>",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "location",
						Usage: "Restrict matches to cameras whose location contains this value",
					},
				}, aiFlags()...),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed stored detections with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of detections to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N detections",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "only-missing",
						Usage: "Only embed detections stored without a vector",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiFlags are the flags shared by commands that talk to the model services.
func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL for all models",
			Value: "https://api.openai.com/v1",
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token for the model services",
			Value:   "none",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
		&cli.StringFlag{
			Name:  "vision-model",
			Usage: "Vision model name for localization and attribute extraction",
			Value: "gpt-4o-mini",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name for query parsing and match explanation",
			Value: "gpt-4o-mini",
		},
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithToken(c.String("token")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithVisionModel(c.String("vision-model")),
		ai.WithChatModel(c.String("chat-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func serveCommand(c *cli.Context) error {
	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := findandseek.NewDatabase(c.String("db"), findandseek.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	srv, ingestor, err := db.NewServer(server.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}
	defer ingestor.Release()

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	go ingestor.Run(runCtx)

	httpServer := &http.Server{
		Addr:    c.String("addr"),
		Handler: srv.Handler(),
	}

	go func() {
		slog.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func analyzeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one image file is required")
	}

	frame, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read frame: %w", err)
	}

	timestamp := time.Now().UTC()
	if ts := c.Timestamp("timestamp"); ts != nil && !ts.IsZero() {
		timestamp = ts.UTC()
	}

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := findandseek.NewDatabase(c.String("db"), findandseek.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewVisionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	analysis, err := pipeline.AnalyzeFrame(context.Background(), frame, timestamp)
	if err != nil {
		slog.Error("frame analysis failed", "err", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(analysis)
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a description to search for is required")
	}

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := findandseek.NewDatabase(c.String("db"), findandseek.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	ctx := context.Background()
	parsed := searcher.ParseQuery(ctx, query)
	fmt.Println(parsed.Response)
	for _, filter := range parsed.Filters {
		fmt.Printf("  %s: %s\n", filter.Category, filter.Value)
	}

	results, err := searcher.Search(ctx, core.SearchCriteria{
		Description: query,
		Location:    c.String("location"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		location := "unknown"
		if hit.Camera != nil {
			location = hit.Camera.Location
		}
		fmt.Printf("%d: '%s' at %s (%d)[%0.3f]\n",
			i, hit.Detection.Description, location, hit.Detection.Id, hit.Similarity)
	}

	if analysis := searcher.Explain(ctx, query, results); analysis != "" {
		fmt.Println()
		fmt.Println(analysis)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	// Validate flags
	dbPath := c.String("db")
	if dbPath == "" {
		return fmt.Errorf("database path is required")
	}

	// Open database
	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewDetectionRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	// Create AI config
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	// Create embedder
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	// Create reembedding config
	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		OnlyMissing:    c.Bool("only-missing"),
	}

	// Validate config
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	// Create reembedder
	reembedder := reembed.NewReembedder(repo, embedder, reembedConfig, os.Stderr)

	// Run reembedding
	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
