// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MatchResult is the outcome of scoring one profile against one requirement.
// It is created fresh per evaluation and never mutated afterwards.
type MatchResult struct {
	ID                     string          `json:"id"`
	CandidateID            string          `json:"candidate_id"`
	RequirementID          string          `json:"requirement_id,omitempty"`
	Strategy               ScoringStrategy `json:"strategy"`
	OverallScore           int             `json:"overall_score"` // 0-100
	Subscores              Subscores       `json:"subscores"`
	MatchedSkills          []MatchedSkill  `json:"matched_skills"`
	MissingRequiredSkills  []string        `json:"missing_required_skills"`
	MissingPreferredSkills []string        `json:"missing_preferred_skills,omitempty"`
	TotalExperienceMonths  int             `json:"total_experience_months"`
	CandidateEducation     EducationLevel  `json:"candidate_education"`
	Passed                 bool            `json:"passed"`
	Strengths              []string        `json:"strengths,omitempty"`
	Gaps                   []string        `json:"gaps,omitempty"`
	Explanation            string          `json:"explanation"`
}

// Subscores holds the per-criterion scores, each in [0,100]
type Subscores struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
}

// MatchedSkill is a requirement skill found in the candidate profile
type MatchedSkill struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Weight     float64 `json:"weight"`
	Required   bool    `json:"required"`
}

// RankedResults is an ordered list of match results for a single requirement
type RankedResults struct {
	RequirementID string        `json:"requirement_id,omitempty"`
	Ranked        []MatchResult `json:"ranked"`
}
