package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// strengthsAndGaps lists what the candidate brings and what is missing, in a fixed order
func strengthsAndGaps(b *Breakdown, profile *types.CandidateProfile, spec *types.RequirementSpec) ([]string, []string) {
	var strengths, gaps []string

	var required, preferred []string
	for _, s := range b.Matched {
		if s.Required {
			required = append(required, s.Name)
		} else {
			preferred = append(preferred, s.Name)
		}
	}
	if len(required) > 0 {
		strengths = append(strengths, "has required skills: "+strings.Join(required, ", "))
	}
	if len(preferred) > 0 {
		strengths = append(strengths, "has preferred skills: "+strings.Join(preferred, ", "))
	}
	if len(b.MissingRequired) > 0 {
		gaps = append(gaps, "missing required skills: "+strings.Join(b.MissingRequired, ", "))
	}
	if len(b.MissingPreferred) > 0 {
		gaps = append(gaps, "missing preferred skills: "+strings.Join(b.MissingPreferred, ", "))
	}

	if spec.MinExperienceMonths > 0 {
		if b.ExperienceMet {
			strengths = append(strengths, fmt.Sprintf("%d months of experience meets the %d month minimum",
				profile.TotalExperienceMonths, spec.MinExperienceMonths))
		} else {
			gaps = append(gaps, fmt.Sprintf("%d months of experience is below the %d month minimum",
				profile.TotalExperienceMonths, spec.MinExperienceMonths))
		}
	}

	if spec.MinEducation > types.EducationNone {
		if b.EducationMet {
			strengths = append(strengths, fmt.Sprintf("education %s meets the %s minimum", profile.HighestEducation, spec.MinEducation))
		} else {
			gaps = append(gaps, fmt.Sprintf("education %s is below the %s minimum", profile.HighestEducation, spec.MinEducation))
		}
	}

	return strengths, gaps
}

// explain renders the breakdown as one deterministic sentence per criterion
func explain(r *types.MatchResult, b *Breakdown, spec *types.RequirementSpec, threshold float64) string {
	var sb strings.Builder

	verdict := "not passed"
	if r.Passed {
		verdict = "passed"
	}
	fmt.Fprintf(&sb, "%s score %d/100 (threshold %g, %s).", r.Strategy, r.OverallScore, threshold, verdict)

	requiredMatched := b.RequiredCount - len(b.MissingRequired)
	preferredMatched := b.PreferredCount - len(b.MissingPreferred)
	fmt.Fprintf(&sb, " Skills %.1f: %d of %d required and %d of %d preferred matched.",
		r.Subscores.Skills, requiredMatched, b.RequiredCount, preferredMatched, b.PreferredCount)

	fmt.Fprintf(&sb, " Experience %.1f: %d months against a minimum of %d.",
		r.Subscores.Experience, r.TotalExperienceMonths, spec.MinExperienceMonths)

	fmt.Fprintf(&sb, " Education %.1f: %s against a minimum of %s.",
		r.Subscores.Education, r.CandidateEducation, spec.MinEducation)

	if len(b.MissingRequired) > 0 {
		fmt.Fprintf(&sb, " Missing required: %s.", strings.Join(b.MissingRequired, ", "))
	}
	if r.Strategy == types.StrategyStrictThreshold {
		sb.WriteString(" Subscores are informational under strict_threshold.")
	}

	return sb.String()
}
