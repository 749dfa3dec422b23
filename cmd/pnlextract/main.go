package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/statementlens/pnlextract/internal/config"
	"github.com/statementlens/pnlextract/internal/identify"
	"github.com/statementlens/pnlextract/internal/llmsvc"
	"github.com/statementlens/pnlextract/internal/notes"
	"github.com/statementlens/pnlextract/internal/ocrsvc"
	"github.com/statementlens/pnlextract/internal/pipeline"
	"github.com/statementlens/pnlextract/internal/report"
	"github.com/statementlens/pnlextract/internal/tables"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging builds the process logger at the configured level.
func setupLogging(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// buildPipeline wires the extraction stages from configuration.
func buildPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	llm, err := llmsvc.New(llmsvc.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	structured := tables.NewStructuredEngine(tables.StructuredConfig{
		URL:     cfg.TableServiceURL,
		Timeout: cfg.TableServiceTimeout,
	}, logger)
	layout := tables.NewLayoutEngine(&ocrsvc.ExecRunner{}, logger)

	ocrCfg := ocrsvc.Config{
		DocAI: ocrsvc.DocAIConfig{
			ProjectID:       cfg.DocAIProjectID,
			Location:        cfg.DocAILocation,
			ProcessorID:     cfg.DocAIProcessorID,
			CredentialsFile: cfg.DocAICredentialsFile,
		},
		LocalOCR:  cfg.LocalOCR,
		LocalDPI:  cfg.LocalOCRDPI,
		LocalLang: cfg.LocalOCRLang,
	}

	p := pipeline.New(
		pipeline.Limits{MaxFileSize: cfg.MaxFileSize, MaxPages: cfg.MaxPages},
		identify.New(llm, logger),
		tables.NewExtractor(structured, layout, logger),
		notes.NewExtractor(structured, layout, logger),
		ocrCfg,
		logger,
	)
	if !cfg.NonInteractive {
		p.SetConfirmer(promptForPage)
	}
	return p, nil
}

// promptMu serializes stdin prompts across workers.
var promptMu sync.Mutex

// promptForPage asks the operator to pick among candidate statement
// pages. Candidates arrive zero-based and are shown one-based.
func promptForPage(candidates []int) (int, bool) {
	promptMu.Lock()
	defer promptMu.Unlock()

	fmt.Fprintf(os.Stderr, "\nMultiple possible profit and loss pages found:\n")
	for i, page := range candidates {
		fmt.Fprintf(os.Stderr, "  [%d] page %d\n", i+1, page+1)
	}
	fmt.Fprintf(os.Stderr, "Choose 1-%d (enter to keep the first): ", len(candidates))

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return 0, false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > len(candidates) {
		fmt.Fprintf(os.Stderr, "Invalid choice %q, keeping the first candidate\n", line)
		return 0, false
	}
	return candidates[choice-1], true
}

// outputPath maps an input PDF to its XLSX path in the output dir.
func outputPath(outDir, pdfPath string) string {
	base := filepath.Base(pdfPath)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".xlsx"
	return filepath.Join(outDir, base)
}

func run() int {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return 0
		}
	}

	// A .env file is optional; flags and real env vars take precedence
	_ = godotenv.Load()

	cfg, files, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 2
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No input files given")
		flagUsage()
		return 2
	}

	logger := setupLogging(cfg)
	if version != "dev" {
		cfg.Version = version
	}
	if cfg.IsDebug() {
		logger.Debug("starting", "config", cfg.String())
	}

	pipe, err := buildPipeline(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build pipeline: %v\n", err)
		return 2
	}

	writer := report.NewWriter(logger)

	var mu sync.Mutex
	failures := 0
	queue := pipeline.NewQueue(pipe, func(job pipeline.Job, res *pipeline.Result, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "FAIL  %s: %v\n", job.Path, err)
			return
		}
		out := outputPath(cfg.OutputDir, job.Path)
		if werr := writer.WriteFile(res, out); werr != nil {
			failures++
			fmt.Fprintf(os.Stderr, "FAIL  %s: %v\n", job.Path, werr)
			return
		}
		status := "ok"
		if !res.ChecksPassed() {
			status = "ok (reconciliation warnings)"
		}
		fmt.Printf("DONE  %s -> %s  [%s, %d items, %s]\n",
			job.Path, out, res.Statement.Company, len(res.Statement.Items), status)
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
		}
	}, logger,
		pipeline.WithWorkers(cfg.Workers),
		pipeline.WithJobTimeout(cfg.JobTimeout),
	)

	for _, f := range files {
		queue.Enqueue(pipeline.Job{Path: f})
	}

	// Drain the queue, but let SIGINT/SIGTERM cut the wait short.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	drainCtx, cancel := context.WithTimeout(ctx, time.Duration(len(files))*cfg.JobTimeout)
	defer cancel()
	queue.Shutdown(drainCtx)

	mu.Lock()
	defer mu.Unlock()
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d documents failed\n", failures, len(files))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}

func flagUsage() {
	fmt.Fprintf(os.Stderr, "Run '%s --help' for usage\n", os.Args[0])
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("pnlextract\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
