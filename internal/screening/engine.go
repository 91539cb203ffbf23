// Package screening orchestrates ingestion, extraction and matching for single
// documents and batches, with a read-through profile cache.
package screening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-screener/internal/aggregation"
	"github.com/jonathan/resume-screener/internal/extraction"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/logging"
	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/vocabulary"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ResultSink receives the repository payload of every completed screening
type ResultSink interface {
	SaveMatchResult(ctx context.Context, payload types.PersistablePayload) error
}

// AuditSink receives an audit event for every screening, successful or not
type AuditSink interface {
	RecordAuditEvent(ctx context.Context, event types.AuditEvent) error
}

// Options configures an Engine. Every field is optional.
type Options struct {
	Extraction extraction.Options
	// Workers bounds concurrent documents in a batch; zero means DefaultWorkers
	Workers int
	Cache   ProfileCache
	Results ResultSink
	Audit   AuditSink
	ActorID string
	Logger  *zap.Logger
	// Now stamps aggregated payloads; defaults to time.Now
	Now func() time.Time
}

// DefaultWorkers is used when Options.Workers is zero
const DefaultWorkers = 4

// Engine runs the screening pipeline. It is safe for concurrent use.
type Engine struct {
	vocab     *vocabulary.Vocabulary
	ingestor  *ingestion.Ingestor
	extractor *extraction.Extractor
	matcher   *matching.Matcher
	opts      Options
	logger    *zap.Logger
	flights   singleflight.Group
}

// NewEngine wires the pipeline stages around one immutable vocabulary
func NewEngine(vocab *vocabulary.Vocabulary, opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		vocab:     vocab,
		ingestor:  ingestion.NewIngestor(vocab),
		extractor: extraction.NewExtractor(vocab, opts.Extraction),
		matcher:   matching.NewMatcher(vocab),
		opts:      opts,
		logger:    logging.OrNop(opts.Logger),
	}
}

// Vocabulary returns the vocabulary the engine was built with
func (e *Engine) Vocabulary() *vocabulary.Vocabulary {
	return e.vocab
}

// Ingest decodes a document without extracting a profile
func (e *Engine) Ingest(doc types.Document) (*types.NormalizedText, error) {
	return e.ingestor.Ingest(doc)
}

// CacheKey identifies a profile: the same bytes evaluated in the same month by the
// same parser and vocabulary always extract to the same profile.
func (e *Engine) CacheKey(doc types.Document) string {
	return fmt.Sprintf("%s:%s:%s:%s", doc.ContentHash(), e.extractor.EvaluationDate(),
		e.extractor.ParserVersion(), e.vocab.Version())
}

// Profile ingests and extracts a document, consulting the cache first. Concurrent calls
// for the same content run extraction once.
func (e *Engine) Profile(ctx context.Context, doc types.Document) (*types.CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := e.CacheKey(doc)
	// The flight outlives any single caller; each caller stops waiting on its own ctx
	flightCtx := context.WithoutCancel(ctx)
	ch := e.flights.DoChan(key, func() (any, error) {
		return e.loadProfile(flightCtx, key, doc)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		e.logger.Debug("shared in-flight extraction", zap.String("document", doc.SourceID))
	}

	// Identical bytes may arrive under different document IDs
	profile := res.Val.(*types.CandidateProfile).Clone()
	profile.CandidateID = doc.SourceID
	return profile, nil
}

func (e *Engine) loadProfile(ctx context.Context, key string, doc types.Document) (*types.CandidateProfile, error) {
	if e.opts.Cache != nil {
		cached, ok, err := e.opts.Cache.GetProfile(ctx, key)
		if err != nil {
			e.logger.Warn("profile cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			e.logger.Debug("profile cache hit", zap.String("document", doc.SourceID))
			return cached, nil
		}
	}

	start := time.Now()
	text, err := e.ingestor.Ingest(doc)
	if err != nil {
		e.logger.Warn("ingestion failed", zap.String("document", doc.SourceID), zap.Error(err))
		return nil, err
	}
	ingested := time.Since(start)

	profile := e.extractor.Extract(text)
	e.logger.Debug("extracted profile",
		zap.String("document", doc.SourceID),
		zap.String("format", string(text.Format)),
		zap.Int("lines", len(text.Lines)),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experience_months", profile.TotalExperienceMonths),
		zap.Duration("ingest", ingested),
		zap.Duration("total", time.Since(start)),
	)

	if e.opts.Cache != nil {
		if err := e.opts.Cache.PutProfile(ctx, key, profile); err != nil {
			e.logger.Warn("profile cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return profile, nil
}

// Screen scores one document against one requirement. The requirement is validated
// first; ingestion and sink failures are returned after being audited.
func (e *Engine) Screen(ctx context.Context, doc types.Document, spec *types.RequirementSpec) (types.MatchResult, error) {
	if err := e.validate(spec); err != nil {
		_ = e.audit(ctx, aggregation.AggregateFailure(err, e.aggregationContext(doc, spec, nil)))
		return types.MatchResult{}, err
	}
	return e.screenValidated(ctx, doc, spec)
}

func (e *Engine) validate(spec *types.RequirementSpec) error {
	if spec == nil {
		return &types.InvalidRequirementError{Message: "requirement is missing"}
	}
	return spec.Validate(e.vocab)
}

func (e *Engine) screenValidated(ctx context.Context, doc types.Document, spec *types.RequirementSpec) (types.MatchResult, error) {
	profile, err := e.Profile(ctx, doc)
	if err != nil {
		_ = e.audit(ctx, aggregation.AggregateFailure(err, e.aggregationContext(doc, spec, nil)))
		return types.MatchResult{}, err
	}

	return e.score(ctx, doc, profile, spec)
}

// score matches an extracted profile and publishes the outcome
func (e *Engine) score(ctx context.Context, doc types.Document, profile *types.CandidateProfile, spec *types.RequirementSpec) (types.MatchResult, error) {
	result := e.matcher.Match(profile, spec)
	e.logger.Debug("scored document",
		zap.String("document", doc.SourceID),
		zap.String("requirement", spec.ID),
		zap.Int("score", result.OverallScore),
		zap.Bool("passed", result.Passed),
	)

	if err := e.publish(ctx, result, e.aggregationContext(doc, spec, &profile.Contact)); err != nil {
		return result, err
	}
	return result, nil
}

// publish hands the aggregated payloads to the configured sinks
func (e *Engine) publish(ctx context.Context, result types.MatchResult, c aggregation.Context) error {
	if e.opts.Results == nil && e.opts.Audit == nil {
		return nil
	}

	payload, event := aggregation.Aggregate(result, c)
	var errs []error
	if e.opts.Results != nil {
		if err := e.opts.Results.SaveMatchResult(ctx, payload); err != nil {
			errs = append(errs, fmt.Errorf("failed to save match result: %w", err))
		}
	}
	if err := e.audit(ctx, event); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (e *Engine) audit(ctx context.Context, event types.AuditEvent) error {
	if e.opts.Audit == nil {
		return nil
	}
	if err := e.opts.Audit.RecordAuditEvent(ctx, event); err != nil {
		e.logger.Warn("audit write failed", zap.String("event", string(event.Type)), zap.Error(err))
		return fmt.Errorf("failed to record audit event: %w", err)
	}
	return nil
}

func (e *Engine) aggregationContext(doc types.Document, spec *types.RequirementSpec, contact *types.Contact) aggregation.Context {
	c := aggregation.Context{
		DocumentID:  doc.SourceID,
		ContentHash: doc.ContentHash(),
		ActorID:     e.opts.ActorID,
		Now:         e.opts.Now(),
		Contact:     contact,
	}
	if spec != nil {
		c.RequirementID = spec.ID
	}
	return c
}
