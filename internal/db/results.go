package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-screener/internal/types"
)

// DefaultListLimit caps ListResultsForRequirement when no limit is given
const DefaultListLimit = 100

const resultColumns = `result_id, document_id, content_hash, requirement_id, evaluator_id, strategy,
	overall_score, skill_score, experience_score, education_score,
	matched_skills, missing_skills, strengths, weaknesses,
	total_experience_months, passed, status, explanation, evaluated_at`

// SaveMatchResult stores a result payload. Saving the same result ID again replaces it.
func (db *DB) SaveMatchResult(ctx context.Context, p types.PersistablePayload) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO match_results (`+resultColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 ON CONFLICT (result_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			skill_score = EXCLUDED.skill_score,
			experience_score = EXCLUDED.experience_score,
			education_score = EXCLUDED.education_score,
			matched_skills = EXCLUDED.matched_skills,
			missing_skills = EXCLUDED.missing_skills,
			strengths = EXCLUDED.strengths,
			weaknesses = EXCLUDED.weaknesses,
			total_experience_months = EXCLUDED.total_experience_months,
			passed = EXCLUDED.passed,
			status = EXCLUDED.status,
			explanation = EXCLUDED.explanation,
			evaluated_at = EXCLUDED.evaluated_at`,
		p.ResultID, p.DocumentID, p.ContentHash, p.RequirementID, p.EvaluatorID, string(p.Strategy),
		p.OverallScore, p.SkillScore, p.ExperienceScore, p.EducationScore,
		nonNil(p.MatchedSkills), nonNil(p.MissingSkills), nonNil(p.Strengths), nonNil(p.Weaknesses),
		p.TotalExperienceMonths, p.Passed, p.Status, p.Explanation, p.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save match result %s: %w", p.ResultID, err)
	}
	return nil
}

// ListResultsForRequirement returns stored results for a requirement in ranking order
func (db *DB) ListResultsForRequirement(ctx context.Context, requirementID string, limit int) ([]types.PersistablePayload, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+resultColumns+`
		 FROM match_results
		 WHERE requirement_id = $1
		 ORDER BY overall_score DESC, skill_score DESC, total_experience_months DESC, document_id ASC
		 LIMIT $2`,
		requirementID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	results, err := pgx.CollectRows(rows, scanResult)
	if err != nil {
		return nil, fmt.Errorf("failed to scan results: %w", err)
	}
	return results, nil
}

func scanResult(row pgx.CollectableRow) (types.PersistablePayload, error) {
	var p types.PersistablePayload
	var strategy string
	err := row.Scan(
		&p.ResultID, &p.DocumentID, &p.ContentHash, &p.RequirementID, &p.EvaluatorID, &strategy,
		&p.OverallScore, &p.SkillScore, &p.ExperienceScore, &p.EducationScore,
		&p.MatchedSkills, &p.MissingSkills, &p.Strengths, &p.Weaknesses,
		&p.TotalExperienceMonths, &p.Passed, &p.Status, &p.Explanation, &p.EvaluatedAt,
	)
	p.Strategy = types.ScoringStrategy(strategy)
	return p, err
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL
func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
