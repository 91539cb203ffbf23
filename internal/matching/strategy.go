// Package matching scores candidate profiles against requirement specs.
package matching

import (
	"sort"

	"github.com/jonathan/resume-screener/internal/types"
)

// Strategy turns a scored breakdown into an overall score in [0,100].
// Adding a strategy means adding a type and one registry entry.
type Strategy interface {
	Name() types.ScoringStrategy
	Overall(b *Breakdown, spec *types.RequirementSpec) float64
}

// registry is the closed set of scoring strategies
var registry = map[types.ScoringStrategy]Strategy{
	types.StrategyWeightedLinear:  weightedLinear{},
	types.StrategyStrictThreshold: strictThreshold{},
}

// Lookup returns the strategy registered under name
func Lookup(name types.ScoringStrategy) (Strategy, bool) {
	s, ok := registry[name]
	return s, ok
}

// Strategies returns the registered strategy names in sorted order
func Strategies() []types.ScoringStrategy {
	names := make([]types.ScoringStrategy, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// weightedLinear averages the three subscores using the spec's category weights
type weightedLinear struct{}

func (weightedLinear) Name() types.ScoringStrategy {
	return types.StrategyWeightedLinear
}

func (weightedLinear) Overall(b *Breakdown, spec *types.RequirementSpec) float64 {
	w := spec.EffectiveCategoryWeights()
	if w.Sum() <= 0 {
		w = types.DefaultCategoryWeights()
	}
	total := w.Skills*b.Subscores.Skills + w.Experience*b.Subscores.Experience + w.Education*b.Subscores.Education
	return total / w.Sum()
}

// strictThreshold scores 100 when every required criterion is met and 0 otherwise.
// Preferred skills never affect the outcome.
type strictThreshold struct{}

func (strictThreshold) Name() types.ScoringStrategy {
	return types.StrategyStrictThreshold
}

func (strictThreshold) Overall(b *Breakdown, _ *types.RequirementSpec) float64 {
	if len(b.MissingRequired) == 0 && b.ExperienceMet && b.EducationMet {
		return 100
	}
	return 0
}
