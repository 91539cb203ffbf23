package extraction

import (
	"sort"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/vocabulary"
)

// extractSkills scans every line for vocabulary phrases using a greedy longest match.
// Mentions in the skills section get full confidence; the highest confidence wins per skill.
func extractSkills(lines []types.Line, vocab *vocabulary.Vocabulary) []types.SkillMention {
	best := make(map[string]types.SkillMention)
	maxWindow := vocab.MaxPhraseTokens()

	for _, line := range lines {
		if line.IsBlank() {
			continue
		}
		confidence := elsewhereConfidence
		if line.Section == types.SectionSkills {
			confidence = skillsSectionConfidence
		}

		tokens := vocabulary.Tokenize(line.Text)
		for i := 0; i < len(tokens); {
			window := min(maxWindow, len(tokens)-i)
			matched := 0
			for n := window; n >= 1; n-- {
				canonical, ok := vocab.MatchPhrase(tokens[i : i+n])
				if !ok {
					continue
				}
				mention := types.SkillMention{
					Name:       canonical,
					Surface:    line.Text[tokens[i].Start:tokens[i+n-1].End],
					Confidence: confidence,
					Section:    line.Section,
				}
				if prev, seen := best[canonical]; !seen || mention.Confidence > prev.Confidence {
					best[canonical] = mention
				}
				matched = n
				break
			}
			if matched == 0 {
				matched = 1
			}
			i += matched
		}
	}

	skills := make([]types.SkillMention, 0, len(best))
	for _, mention := range best {
		skills = append(skills, mention)
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills
}
