// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ScoringStrategy selects how a profile is scored against a requirement
type ScoringStrategy string

// Supported scoring strategies
const (
	StrategyWeightedLinear  ScoringStrategy = "weighted_linear"
	StrategyStrictThreshold ScoringStrategy = "strict_threshold"
)

// DefaultPassThreshold is the overall score at or above which a candidate passes screening
const DefaultPassThreshold = 70.0

// RequirementSpec is a declarative description of what a job posting needs
type RequirementSpec struct {
	ID                  string             `json:"id,omitempty"`
	Title               string             `json:"title,omitempty"`
	RequiredSkills      []SkillRequirement `json:"required_skills" validate:"dive"`
	PreferredSkills     []SkillRequirement `json:"preferred_skills" validate:"dive"`
	MinExperienceMonths int                `json:"min_experience_months" validate:"gte=0"`
	MinEducation        EducationLevel     `json:"min_education"`
	Strategy            ScoringStrategy    `json:"strategy,omitempty" validate:"omitempty,oneof=weighted_linear strict_threshold"`
	NormalizeWeights    bool               `json:"normalize_weights"`
	CategoryWeights     *CategoryWeights   `json:"category_weights,omitempty"`
	PassThreshold       *float64           `json:"pass_threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// SkillRequirement is a required or preferred skill with its relative weight
type SkillRequirement struct {
	Name   string  `json:"name" validate:"required"`
	Weight float64 `json:"weight" validate:"gt=0"`
}

// CategoryWeights weights the skills, experience and education subscores in the overall score
type CategoryWeights struct {
	Skills     float64 `json:"skills" validate:"gte=0"`
	Experience float64 `json:"experience" validate:"gte=0"`
	Education  float64 `json:"education" validate:"gte=0"`
}

// DefaultCategoryWeights returns the standard 50/30/20 split
func DefaultCategoryWeights() CategoryWeights {
	return CategoryWeights{Skills: 0.5, Experience: 0.3, Education: 0.2}
}

// Sum returns the total of the three weights
func (w CategoryWeights) Sum() float64 {
	return w.Skills + w.Experience + w.Education
}

// EffectiveStrategy returns the configured strategy, defaulting to weighted-linear
func (r *RequirementSpec) EffectiveStrategy() ScoringStrategy {
	if r.Strategy == "" {
		return StrategyWeightedLinear
	}
	return r.Strategy
}

// EffectiveCategoryWeights returns the configured category weights or the defaults
func (r *RequirementSpec) EffectiveCategoryWeights() CategoryWeights {
	if r.CategoryWeights == nil {
		return DefaultCategoryWeights()
	}
	return *r.CategoryWeights
}

// EffectivePassThreshold returns the configured pass threshold or DefaultPassThreshold
func (r *RequirementSpec) EffectivePassThreshold() float64 {
	if r.PassThreshold == nil {
		return DefaultPassThreshold
	}
	return *r.PassThreshold
}

// HasSkillCriteria reports whether any required or preferred skills are declared
func (r *RequirementSpec) HasSkillCriteria() bool {
	return len(r.RequiredSkills)+len(r.PreferredSkills) > 0
}

// ErrInvalidRequirement is the sentinel wrapped by every requirement validation failure
var ErrInvalidRequirement = errors.New("invalid requirement")

// InvalidRequirementError describes why a RequirementSpec was rejected
type InvalidRequirementError struct {
	Field   string
	Message string
}

func (e *InvalidRequirementError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid requirement: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid requirement: %s", e.Message)
}

// Unwrap lets errors.Is match ErrInvalidRequirement
func (e *InvalidRequirementError) Unwrap() error {
	return ErrInvalidRequirement
}

// SkillCanonicalizer maps a skill surface form to its canonical name
type SkillCanonicalizer interface {
	Canonical(name string) string
}

var requirementValidator = validator.New()

// Validate checks the spec's invariants. Skill names are compared after canonicalization
// when canon is non-nil, so "JS" and "JavaScript" are treated as the same skill.
func (r *RequirementSpec) Validate(canon SkillCanonicalizer) error {
	if err := requirementValidator.Struct(r); err != nil {
		return translateValidationError(err)
	}

	if !r.MinEducation.Valid() {
		return &InvalidRequirementError{Field: "min_education", Message: fmt.Sprintf("unknown level %d", int(r.MinEducation))}
	}

	if r.CategoryWeights != nil {
		if r.CategoryWeights.Sum() <= 0 {
			return &InvalidRequirementError{Field: "category_weights", Message: "at least one category weight must be positive"}
		}
	}

	weights := make(map[string]float64)
	check := func(list string, reqs []SkillRequirement) error {
		for _, req := range reqs {
			key := canonicalKey(canon, req.Name)
			if prev, seen := weights[key]; seen && prev != req.Weight {
				return &InvalidRequirementError{
					Field:   list,
					Message: fmt.Sprintf("skill %q declared with contradictory weights %g and %g", req.Name, prev, req.Weight),
				}
			}
			weights[key] = req.Weight
		}
		return nil
	}
	if err := check("required_skills", r.RequiredSkills); err != nil {
		return err
	}
	return check("preferred_skills", r.PreferredSkills)
}

func canonicalKey(canon SkillCanonicalizer, name string) string {
	name = strings.TrimSpace(name)
	if canon != nil {
		name = canon.Canonical(name)
	}
	return strings.ToLower(name)
}

// translateValidationError converts validator errors into an InvalidRequirementError
func translateValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &InvalidRequirementError{Message: err.Error()}
	}
	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "gt":
		msg = fmt.Sprintf("must be greater than %s (got %v)", fe.Param(), fe.Value())
	case "gte":
		msg = fmt.Sprintf("must be at least %s (got %v)", fe.Param(), fe.Value())
	case "lte":
		msg = fmt.Sprintf("must be at most %s (got %v)", fe.Param(), fe.Value())
	case "required":
		msg = "is required"
	case "oneof":
		msg = fmt.Sprintf("must be one of [%s] (got %v)", fe.Param(), fe.Value())
	default:
		msg = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return &InvalidRequirementError{Field: fe.Namespace(), Message: msg}
}
