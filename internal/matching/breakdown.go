package matching

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// Breakdown holds the strategy-independent comparison of a profile with a spec
type Breakdown struct {
	Subscores        types.Subscores
	Matched          []types.MatchedSkill
	MissingRequired  []string
	MissingPreferred []string
	ExperienceMet    bool
	EducationMet     bool
	RequiredCount    int
	PreferredCount   int
}

// breakdown computes subscores and skill lists. Requirement skill names are canonicalized
// and a skill declared twice counts once, under its first declaration.
func (m *Matcher) breakdown(profile *types.CandidateProfile, spec *types.RequirementSpec) *Breakdown {
	b := &Breakdown{
		Matched:         []types.MatchedSkill{},
		MissingRequired: []string{},
	}

	seen := make(map[string]bool)
	totalWeight := 0.0
	matchedWeight := 0.0

	consider := func(req types.SkillRequirement, required bool) {
		canonical := m.canonical(req.Name)
		key := strings.ToLower(canonical)
		if seen[key] {
			return
		}
		seen[key] = true

		if required {
			b.RequiredCount++
		} else {
			b.PreferredCount++
		}
		totalWeight += req.Weight

		mention, found := profile.SkillByName(canonical)
		if !found {
			if required {
				b.MissingRequired = append(b.MissingRequired, canonical)
			} else {
				b.MissingPreferred = append(b.MissingPreferred, canonical)
			}
			return
		}

		confidence := clamp(mention.Confidence, 0, 1)
		factor := 1.0
		if spec.NormalizeWeights {
			factor = confidence
		}
		matchedWeight += req.Weight * factor

		b.Matched = append(b.Matched, types.MatchedSkill{
			Name:       mention.Name,
			Confidence: confidence,
			Weight:     req.Weight,
			Required:   required,
		})
	}

	for _, req := range spec.RequiredSkills {
		consider(req, true)
	}
	for _, req := range spec.PreferredSkills {
		consider(req, false)
	}

	sort.SliceStable(b.Matched, func(i, j int) bool {
		if b.Matched[i].Confidence != b.Matched[j].Confidence {
			return b.Matched[i].Confidence > b.Matched[j].Confidence
		}
		return b.Matched[i].Name < b.Matched[j].Name
	})

	switch {
	case totalWeight <= 0:
		b.Subscores.Skills = 100
	default:
		b.Subscores.Skills = matchedWeight / totalWeight * 100
	}

	b.Subscores.Experience = experienceSubscore(profile.TotalExperienceMonths, spec.MinExperienceMonths)
	b.ExperienceMet = profile.TotalExperienceMonths >= spec.MinExperienceMonths

	b.Subscores.Education = educationSubscore(profile.HighestEducation, spec.MinEducation)
	b.EducationMet = profile.HighestEducation >= spec.MinEducation

	return b
}

// experienceSubscore is min(1, total/required) scaled to 100; no requirement is fully met
func experienceSubscore(totalMonths, requiredMonths int) float64 {
	if requiredMonths <= 0 {
		return 100
	}
	ratio := float64(max(totalMonths, 0)) / float64(requiredMonths)
	return min(1, ratio) * 100
}

// educationSubscore is 100 at or above the required level, otherwise the ordinal ratio
func educationSubscore(candidate, required types.EducationLevel) float64 {
	if candidate >= required || required.Ordinal() == 0 {
		return 100
	}
	return float64(candidate.Ordinal()) / float64(required.Ordinal()) * 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
