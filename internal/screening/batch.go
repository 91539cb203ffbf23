package screening

import (
	"context"

	"github.com/jonathan/resume-screener/internal/aggregation"
	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Failure records a document that could not be screened
type Failure struct {
	DocumentID string `json:"document_id"`
	Err        error  `json:"-"`
	Message    string `json:"error"`
}

// BatchResult is the outcome of screening many documents against one requirement.
// Ranked holds successful results in ranking order; Failures keeps input order.
type BatchResult struct {
	types.RankedResults
	Failures []Failure `json:"failures,omitempty"`
}

// PostingResult is the outcome of screening one document against one of several requirements
type PostingResult struct {
	RequirementID string             `json:"requirement_id"`
	Result        *types.MatchResult `json:"result,omitempty"`
	Err           error              `json:"-"`
	Message       string             `json:"error,omitempty"`
}

// ScreenBatch screens docs against spec with at most Workers documents in flight.
// A document that fails ingestion is reported in Failures without stopping the batch.
// The returned error is non-nil only for an invalid requirement or a cancelled context.
func (e *Engine) ScreenBatch(ctx context.Context, docs []types.Document, spec *types.RequirementSpec) (*BatchResult, error) {
	if err := e.validate(spec); err != nil {
		return nil, err
	}

	results := make([]*types.MatchResult, len(docs))
	errs := make([]error, len(docs))

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i := range docs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			result, err := e.screenValidated(ctx, docs[i], spec)
			if err != nil && result.ID == "" {
				errs[i] = err
				return nil
			}
			if err != nil {
				// Scored but not persisted
				errs[i] = err
			}
			results[i] = &result
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch := &BatchResult{RankedResults: types.RankedResults{RequirementID: spec.ID}}
	scored := make([]types.MatchResult, 0, len(docs))
	for i, doc := range docs {
		if results[i] != nil {
			scored = append(scored, *results[i])
		}
		if errs[i] != nil {
			batch.Failures = append(batch.Failures, Failure{DocumentID: doc.SourceID, Err: errs[i], Message: errs[i].Error()})
		}
	}
	batch.Ranked = matching.Rank(scored)

	e.logger.Info("screened batch",
		zap.String("requirement", spec.ID),
		zap.Int("documents", len(docs)),
		zap.Int("scored", len(scored)),
		zap.Int("failed", len(batch.Failures)),
	)
	return batch, nil
}

// ScreenPostings screens one document against several requirements. The profile is
// extracted once. Results keep the order of specs; an invalid spec fails only its own entry.
func (e *Engine) ScreenPostings(ctx context.Context, doc types.Document, specs []*types.RequirementSpec) ([]PostingResult, error) {
	profile, err := e.Profile(ctx, doc)
	if err != nil {
		_ = e.audit(ctx, aggregation.AggregateFailure(err, e.aggregationContext(doc, nil, nil)))
		return nil, err
	}

	out := make([]PostingResult, len(specs))
	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if spec != nil {
				out[i].RequirementID = spec.ID
			}
			if err := e.validate(spec); err != nil {
				_ = e.audit(ctx, aggregation.AggregateFailure(err, e.aggregationContext(doc, spec, nil)))
				out[i].Err = err
				out[i].Message = err.Error()
				return nil
			}
			result, err := e.score(ctx, doc, profile, spec)
			if err != nil {
				out[i].Err = err
				out[i].Message = err.Error()
			}
			out[i].Result = &result
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
