package matching

import (
	"sort"

	"github.com/jonathan/resume-screener/internal/types"
)

// Rank orders results for one requirement: higher overall score first, then higher
// skills subscore, then more experience, then candidate ID ascending.
// The input slice is not modified.
func Rank(results []types.MatchResult) []types.MatchResult {
	ranked := make([]types.MatchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})
	return ranked
}

func less(a, b types.MatchResult) bool {
	if a.OverallScore != b.OverallScore {
		return a.OverallScore > b.OverallScore
	}
	if a.Subscores.Skills != b.Subscores.Skills {
		return a.Subscores.Skills > b.Subscores.Skills
	}
	if a.TotalExperienceMonths != b.TotalExperienceMonths {
		return a.TotalExperienceMonths > b.TotalExperienceMonths
	}
	return a.CandidateID < b.CandidateID
}
