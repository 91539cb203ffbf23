package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/extraction"
	"github.com/jonathan/resume-screener/internal/logging"
	"github.com/jonathan/resume-screener/internal/screening"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/vocabulary"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Persistent flags shared by every command
var (
	configFile     string
	flagVocabulary string
	flagEvalDate   string
	flagOutput     string
	flagWorkers    int
	flagDatabase   string
	flagActorID    string
	flagCache      bool
	flagVerbose    bool
	flagDebug      bool
	flagJSONLog    bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a JSON or YAML config file")
	flags.StringVar(&flagVocabulary, "vocabulary", "", "Vocabulary JSON (embedded table when empty)")
	flags.StringVar(&flagEvalDate, "evaluation-date", "", "Month used to resolve \"present\" (YYYY-MM, default current month)")
	flags.StringVarP(&flagOutput, "output", "o", "", "Output format: text or json")
	flags.IntVar(&flagWorkers, "workers", 0, "Concurrent documents in a batch")
	flags.StringVar(&flagDatabase, "database-url", "", "PostgreSQL URL for results, audit events and the profile cache")
	flags.StringVar(&flagActorID, "actor-id", "", "Evaluator recorded in audit events")
	flags.BoolVar(&flagCache, "cache", false, "Reuse extracted profiles of identical uploads")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Print formatted summaries")
	flags.BoolVarP(&flagDebug, "debug", "d", false, "Debug logging")
	flags.BoolVarP(&flagJSONLog, "json-log", "j", false, "JSON format for logging")
}

// appContext holds what setup resolved for the running command
type appContext struct {
	cfg       config.Config
	logger    *zap.Logger
	vocab     *vocabulary.Vocabulary
	evalMonth types.YearMonth
}

var app *appContext

// setup merges flags over the config file and environment, then builds the logger and vocabulary
func setup(_ *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	flagCfg := config.Config{
		Vocabulary:     flagVocabulary,
		EvaluationDate: flagEvalDate,
		Output:         flagOutput,
		Workers:        flagWorkers,
		DatabaseURL:    flagDatabase,
		ActorID:        flagActorID,
		CacheEnabled:   flagCache,
		Verbose:        flagVerbose,
		Debug:          flagDebug,
		JSONLog:        flagJSONLog,
	}
	cfg := flagCfg.MergeWithDefaults(*fileCfg)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	evalMonth, err := cfg.EvaluationMonth(time.Now())
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.JSONLog, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	vocab := vocabulary.Default()
	if cfg.Vocabulary != "" {
		if vocab, err = vocabulary.LoadFile(cfg.Vocabulary); err != nil {
			return fmt.Errorf("failed to load vocabulary: %w", err)
		}
	}
	logger.Debug("configuration resolved",
		zap.String("vocabulary_version", vocab.Version()),
		zap.Stringer("evaluation_month", evalMonth),
		zap.Int("workers", cfg.Workers),
		zap.Bool("database", cfg.DatabaseURL != ""),
	)

	app = &appContext{cfg: cfg, logger: logger, vocab: vocab, evalMonth: evalMonth}
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if app != nil {
		_ = app.logger.Sync()
	}
}

// newEngine builds a screening engine. With a database URL configured the database
// receives results and audit events and, when caching is on, backs the profile cache.
// The returned close function must be called when done.
func (a *appContext) newEngine(ctx context.Context) (*screening.Engine, func(), error) {
	opts := screening.Options{
		Extraction: extraction.Options{EvaluationDate: a.evalMonth, ParserVersion: a.cfg.ParserVersion},
		Workers:    a.cfg.Workers,
		ActorID:    a.cfg.ActorID,
		Logger:     a.logger,
	}

	closeFn := func() {}
	if a.cfg.DatabaseURL != "" {
		database, err := connectDB(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		opts.Results = database
		opts.Audit = database
		if a.cfg.CacheEnabled {
			opts.Cache = database
		}
		closeFn = database.Close
	} else {
		sink := &logSink{logger: a.logger}
		opts.Results = sink
		opts.Audit = sink
		if a.cfg.CacheEnabled {
			opts.Cache = screening.NewMemoryCache()
		}
	}

	return screening.NewEngine(a.vocab, opts), closeFn, nil
}

func (a *appContext) requireDB(ctx context.Context) (*db.DB, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("--database-url or DATABASE_URL is required")
	}
	return connectDB(ctx, a.cfg.DatabaseURL)
}

func connectDB(ctx context.Context, url string) (*db.DB, error) {
	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func (a *appContext) jsonOutput() bool {
	return a.cfg.Output == config.OutputJSON
}

// readDocument loads a resume from disk. The file extension is passed on as the declared format
// and the base name becomes the source ID.
func readDocument(path string) (types.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return types.Document{
		SourceID:       filepath.Base(path),
		DeclaredFormat: filepath.Ext(path),
		Content:        content,
	}, nil
}

func readDocuments(paths []string) ([]types.Document, error) {
	docs := make([]types.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// loadRequirements reads requirement specs, falling back to the configured requirement file
func (a *appContext) loadRequirements(paths []string) ([]*types.RequirementSpec, error) {
	if len(paths) == 0 && a.cfg.Requirement != "" {
		paths = []string{a.cfg.Requirement}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("--requirement is required")
	}

	specs := make([]*types.RequirementSpec, 0, len(paths))
	for _, path := range paths {
		spec, err := types.LoadRequirementSpec(path, a.vocab)
		if err != nil {
			return nil, err
		}
		if spec.ID == "" {
			spec.ID = trimExt(filepath.Base(path))
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
