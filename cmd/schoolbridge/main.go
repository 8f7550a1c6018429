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
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/schoolbridge"
	"github.com/poiesic/schoolbridge/backfill"
	"github.com/poiesic/schoolbridge/config"
	"github.com/poiesic/schoolbridge/core"
	"github.com/poiesic/schoolbridge/ingestion"
	"github.com/poiesic/schoolbridge/mcp"
	"github.com/poiesic/schoolbridge/storage/airtable"
	"github.com/poiesic/schoolbridge/storage/badgerstore"
	"github.com/urfave/cli/v2"
)

const version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "schoolbridge",
		Usage:   "School announcement retrieval and assistant tooling",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (defaults to the per-user config)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the announcement tools over MCP on stdio",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to a local BadgerDB store (uses the Airtable API when omitted)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search announcements from the command line",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to a local BadgerDB store (uses the Airtable API when omitted)",
					},
					&cli.StringFlag{
						Name:  "sender",
						Usage: "Filter by sender name",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "Natural language date filter like 'last week' or 'June 2025'",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 15,
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Load announcements from a JSON file into a local store",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the BadgerDB store directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "JSON file holding an array of announcements",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of announcements per write batch",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent write workers",
					},
				},
			},
			{
				Name:   "sync",
				Usage:  "Copy all announcements from the Airtable API into a local store",
				Action: syncCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the BadgerDB store directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of announcements per write batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N announcements",
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
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(c *cli.Context) (*schoolbridge.App, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	var opts []schoolbridge.AppOption
	if dbPath := c.String("db"); dbPath != "" {
		opts = append(opts, schoolbridge.WithLocalStore(dbPath))
	}
	return schoolbridge.NewApp(cfg, opts...)
}

func serveCommand(c *cli.Context) error {
	app, err := newApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	server, err := mcp.NewServer(app.Registry(), mcp.WithVersion(version))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("serving MCP on stdio", "tools", len(app.Registry().Definitions()))
	return server.Serve(ctx)
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	app, err := newApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()
	searcher := app.Searcher()

	if dateExpr := c.String("date"); dateExpr != "" {
		dateRange := searcher.ResolveDateExpression(dateExpr)
		fmt.Printf("Date range: %s to %s\n\n", dateRange.StartDate(), dateRange.EndDate())
	}

	results := searcher.Search(ctx, core.SearchQuery{
		Query:    query,
		Sender:   c.String("sender"),
		DateExpr: c.String("date"),
		Limit:    c.Int("limit"),
	})
	if len(results) == 0 {
		fmt.Println("No announcements found.")
		return nil
	}

	for i, a := range results {
		fmt.Printf("%d. %s\n", i+1, a.Title)
		fmt.Printf("   From: %s  Sent: %s\n", a.Sender, a.SentAt)
		if a.Description != "" {
			fmt.Printf("   %s\n", a.Description)
		}
	}
	fmt.Printf("\n%d announcements\n", len(results))
	return nil
}

func seedCommand(c *cli.Context) error {
	backend, err := badgerstore.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer backend.Close()

	var opts []ingestion.Option
	opts = append(opts, ingestion.WithBatchSize(c.Int("batch-size")))
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, ingestion.WithPoolSize(workers))
	}

	pipeline, err := ingestion.NewPipeline(badgerstore.NewRepository(backend), opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	written, err := pipeline.ImportFile(context.Background(), c.String("file"))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Imported %d announcements into %s\n", written, c.String("db"))
	return nil
}

func syncCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.RequireAirtable(); err != nil {
		return err
	}

	source, err := airtable.NewRepository(cfg.Airtable.APIKey, cfg.Airtable.BaseID,
		airtable.WithTable(cfg.Airtable.Table))
	if err != nil {
		return fmt.Errorf("creating Airtable client: %w", err)
	}

	backend, err := badgerstore.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer backend.Close()

	backfillConfig := &backfill.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if backfillConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}
	if backfillConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	backfiller, err := backfill.NewBackfiller(source, badgerstore.NewRepository(backend),
		backfillConfig, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Source: Airtable base %s, table %s\n", cfg.Airtable.BaseID, cfg.Airtable.Table)
	fmt.Fprintf(os.Stderr, "Destination: %s\n\n", c.String("db"))

	_, err = backfiller.Run(context.Background())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

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

	// Logs go to stderr so stdout stays clean for MCP framing.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
