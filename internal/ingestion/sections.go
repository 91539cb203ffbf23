package ingestion

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/vocabulary"
)

const (
	maxHeadingWords = 5
	maxHeadingChars = 40
)

// tagSections labels each line with the section it belongs to. A heading starts a
// section and every following line inherits its label until the next heading.
func tagSections(lines []string, vocab *vocabulary.Vocabulary) []types.Line {
	tagged := make([]types.Line, len(lines))
	current := types.SectionUnknown

	for i, text := range lines {
		line := types.Line{Number: i + 1, Text: text}
		if section, ok := detectHeading(text, vocab); ok {
			current = section
			line.Heading = true
		}
		line.Section = current
		tagged[i] = line
	}

	return tagged
}

// detectHeading reports whether a line is a section heading and which section it opens
func detectHeading(text string, vocab *vocabulary.Vocabulary) (string, bool) {
	if text == "" || strings.HasPrefix(text, "- ") {
		return "", false
	}

	if section, ok := vocab.SectionForHeading(text); ok {
		return section, true
	}

	// Inline heading: "Skills: Python, Go"
	if idx := strings.Index(text, ":"); idx > 0 {
		if section, ok := vocab.SectionForHeading(text[:idx]); ok {
			return section, true
		}
	}

	if isAllCapsHeading(text) && !isSkillList(text, vocab) {
		return sectionFromPhrase(text, vocab), true
	}

	return "", false
}

// isAllCapsHeading matches short upper-case lines such as "PROJECTS" or "WORK HISTORY"
func isAllCapsHeading(text string) bool {
	if len(text) > maxHeadingChars || len(strings.Fields(text)) > maxHeadingWords {
		return false
	}
	if strings.ContainsAny(text, ",;@|/") {
		return false
	}

	letters := 0
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			return false
		case unicode.IsLower(r):
			return false
		case unicode.IsLetter(r):
			letters++
		}
	}
	return letters >= 3
}

// isSkillList reports whether every token is a known skill, e.g. "AWS SQL" in a skills block
func isSkillList(text string, vocab *vocabulary.Vocabulary) bool {
	tokens := vocabulary.Tokenize(text)
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if _, ok := vocab.MatchPhrase([]vocabulary.Token{tok}); !ok {
			return false
		}
	}
	return true
}

// sectionFromPhrase maps an unrecognized heading such as "PROFESSIONAL EXPERIENCE AND PROJECTS"
// to a known section when one of its word runs is a heading keyword.
func sectionFromPhrase(text string, vocab *vocabulary.Vocabulary) string {
	words := strings.Fields(vocabulary.NormalizeHeading(text))
	for size := len(words); size >= 1; size-- {
		for start := 0; start+size <= len(words); start++ {
			if section, ok := vocab.SectionForHeading(strings.Join(words[start:start+size], " ")); ok {
				return section
			}
		}
	}
	return types.SectionUnknown
}
