package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/vocabulary"
)

// Confidence of an education entry by how much of it was recognized
const (
	degreeWithDetailConfidence = 1.0
	degreeOnlyConfidence       = 0.8
	institutionOnlyConfidence  = 0.3
	unrecognizedConfidence     = 0.1
)

var (
	fieldMarker     = regexp.MustCompile(`(?i)\s+(?:in|of)\s+`)
	fieldTerminator = regexp.MustCompile(`(?i)\s*(?:,|\||;|\(|\s[-–—]\s|\sat\s|\s\d{4}).*$`)
	partSeparator   = regexp.MustCompile(`\s*(?:,|\||;|\s[-–—]\s|\sat\s)\s*`)
)

type educationSegment struct {
	lines []string
	level types.EducationLevel
	found bool // a degree keyword was seen
}

// extractEducation groups education lines into entries. A blank line or a second
// degree line starts a new entry; a segment with no degree keyword has level none.
func extractEducation(lines []types.Line, vocab *vocabulary.Vocabulary) []types.EducationEntry {
	keywords := vocab.DegreeKeywords()

	var segments []educationSegment
	current := educationSegment{}
	flush := func() {
		for _, l := range current.lines {
			if !isBullet(l) {
				segments = append(segments, current)
				break
			}
		}
		current = educationSegment{}
	}

	for _, line := range lines {
		text := lineContent(line)
		if text == "" {
			if !line.Heading {
				flush()
			}
			continue
		}

		level, ok := degreeLevel(text, keywords)
		if ok && !isBullet(text) {
			if current.found {
				flush()
			}
			current.level = level
			current.found = true
		}
		current.lines = append(current.lines, text)
	}
	flush()

	entries := make([]types.EducationEntry, 0, len(segments))
	for _, seg := range segments {
		entries = append(entries, parseEducationSegment(seg, keywords, vocab))
	}
	return entries
}

// degreeLevel returns the highest level whose keyword appears in text
func degreeLevel(text string, keywords []vocabulary.DegreeKeyword) (types.EducationLevel, bool) {
	for _, kw := range keywords {
		if kw.MatchIn(text) {
			return kw.Level, true
		}
	}
	return types.EducationNone, false
}

func parseEducationSegment(seg educationSegment, keywords []vocabulary.DegreeKeyword, vocab *vocabulary.Vocabulary) types.EducationEntry {
	entry := types.EducationEntry{Level: types.EducationNone}
	if seg.found {
		entry.Level = seg.level
	}

	for _, l := range seg.lines {
		if isBullet(l) {
			continue
		}
		if entry.Field == nil && seg.found {
			if _, ok := degreeLevel(l, keywords); ok {
				if field := fieldOf(l); field != "" {
					entry.Field = stringPtr(field)
				}
			}
		}
		if entry.Institution == nil {
			if inst := institutionOf(l, keywords, vocab); inst != "" {
				entry.Institution = stringPtr(inst)
			}
		}
	}

	switch {
	case seg.found && (entry.Field != nil || entry.Institution != nil):
		entry.Confidence = degreeWithDetailConfidence
	case seg.found:
		entry.Confidence = degreeOnlyConfidence
	case entry.Institution != nil:
		entry.Confidence = institutionOnlyConfidence
	default:
		entry.Confidence = unrecognizedConfidence
	}
	return entry
}

// fieldOf returns the study field after " in " or " of ", e.g. "Computer Science" from
// "B.S. in Computer Science, State University".
func fieldOf(line string) string {
	locs := fieldMarker.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return ""
	}

	// "Master of Science in X" names X
	chosen := locs[len(locs)-1]
	for _, loc := range locs {
		if strings.EqualFold(strings.TrimSpace(line[loc[0]:loc[1]]), "in") {
			chosen = loc
			break
		}
	}

	field := fieldTerminator.ReplaceAllString(line[chosen[1]:], "")
	return strings.Trim(field, headerTrim)
}

// institutionOf returns the comma/pipe separated part of a line that names an institution.
// Parts naming a degree ("High School Diploma") are skipped.
func institutionOf(line string, keywords []vocabulary.DegreeKeyword, vocab *vocabulary.Vocabulary) string {
	for _, part := range partSeparator.Split(line, -1) {
		part = strings.Trim(part, headerTrim)
		if part == "" || !vocab.IsInstitution(part) {
			continue
		}
		if _, isDegree := degreeLevel(part, keywords); isDegree {
			continue
		}
		return part
	}
	return ""
}
