package matching

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-screener/internal/types"
)

// resultNamespace scopes the name-based UUIDs given to match results
var resultNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("resume-screener/match-result"))

// Matcher scores profiles against validated requirement specs. It is a pure,
// total function over valid inputs and safe for concurrent use.
type Matcher struct {
	canon types.SkillCanonicalizer
}

// NewMatcher creates a Matcher. canon maps requirement skill names to the canonical
// names used in profiles; nil compares names as written, ignoring case.
func NewMatcher(canon types.SkillCanonicalizer) *Matcher {
	return &Matcher{canon: canon}
}

// Match scores profile against spec using the spec's strategy. An unknown strategy
// falls back to weighted-linear; Validate rejects such specs before they get here.
func (m *Matcher) Match(profile *types.CandidateProfile, spec *types.RequirementSpec) types.MatchResult {
	if profile == nil {
		profile = &types.CandidateProfile{}
	}
	if spec == nil {
		spec = &types.RequirementSpec{}
	}

	strategy, ok := Lookup(spec.EffectiveStrategy())
	if !ok {
		strategy = weightedLinear{}
	}

	b := m.breakdown(profile, spec)
	overall := roundScore(strategy.Overall(b, spec))
	threshold := spec.EffectivePassThreshold()

	result := types.MatchResult{
		ID:                     resultID(profile, spec, strategy.Name()),
		CandidateID:            profile.CandidateID,
		RequirementID:          spec.ID,
		Strategy:               strategy.Name(),
		OverallScore:           overall,
		Subscores:              b.Subscores,
		MatchedSkills:          b.Matched,
		MissingRequiredSkills:  b.MissingRequired,
		MissingPreferredSkills: b.MissingPreferred,
		TotalExperienceMonths:  profile.TotalExperienceMonths,
		CandidateEducation:     profile.HighestEducation,
		Passed:                 float64(overall) >= threshold,
	}
	result.Strengths, result.Gaps = strengthsAndGaps(b, profile, spec)
	result.Explanation = explain(&result, b, spec, threshold)

	return result
}

func (m *Matcher) canonical(name string) string {
	name = strings.TrimSpace(name)
	if m.canon == nil {
		return name
	}
	return m.canon.Canonical(name)
}

// roundScore rounds half away from zero and clamps to [0,100]
func roundScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Round(clamp(score, 0, 100)))
}

func resultID(profile *types.CandidateProfile, spec *types.RequirementSpec, strategy types.ScoringStrategy) string {
	name := strings.Join([]string{profile.CandidateID, spec.ID, string(strategy), profile.EvaluatedAt.String()}, "\x00")
	return uuid.NewSHA1(resultNamespace, []byte(name)).String()
}
