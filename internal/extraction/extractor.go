// Package extraction turns section-tagged resume text into a structured CandidateProfile.
//
// Extraction never fails: sparse or malformed input yields empty fields and low
// confidences, because an unscoreable resume is a legitimate low-scoring input.
package extraction

import (
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/vocabulary"
)

// DefaultParserVersion is recorded on profiles when Options.ParserVersion is empty
const DefaultParserVersion = "1.0.0"

// Confidence assigned to a skill depending on where it was mentioned
const (
	skillsSectionConfidence = 1.0
	elsewhereConfidence     = 0.6
)

// Options configures an Extractor
type Options struct {
	// EvaluationDate resolves "present" in date ranges. Zero means the current month
	// at construction time.
	EvaluationDate types.YearMonth
	ParserVersion  string
}

// Extractor is a pure function of NormalizedText, the vocabulary and its options.
// It is safe for concurrent use.
type Extractor struct {
	vocab *vocabulary.Vocabulary
	opts  Options
	dates *dateParser
}

// NewExtractor creates an Extractor bound to an immutable vocabulary
func NewExtractor(vocab *vocabulary.Vocabulary, opts Options) *Extractor {
	if opts.EvaluationDate.IsZero() {
		opts.EvaluationDate = types.NewYearMonth(time.Now())
	}
	if opts.ParserVersion == "" {
		opts.ParserVersion = DefaultParserVersion
	}
	return &Extractor{
		vocab: vocab,
		opts:  opts,
		dates: newDateParser(vocab.PresentWords()),
	}
}

// EvaluationDate returns the month used to resolve open-ended date ranges
func (e *Extractor) EvaluationDate() types.YearMonth {
	return e.opts.EvaluationDate
}

// ParserVersion returns the version recorded on extracted profiles
func (e *Extractor) ParserVersion() string {
	return e.opts.ParserVersion
}

// Extract builds a CandidateProfile. A nil text yields an empty profile.
func (e *Extractor) Extract(text *types.NormalizedText) *types.CandidateProfile {
	profile := &types.CandidateProfile{
		Skills:           []types.SkillMention{},
		Experience:       []types.ExperienceEntry{},
		Education:        []types.EducationEntry{},
		HighestEducation: types.EducationNone,
		ParserVersion:    e.opts.ParserVersion,
		EvaluatedAt:      e.opts.EvaluationDate,
	}
	if text == nil {
		return profile
	}

	profile.CandidateID = text.SourceID
	profile.Contact = extractContact(text.Lines, e.vocab)
	profile.Skills = extractSkills(text.Lines, e.vocab)

	profile.Experience = e.extractExperience(text.SectionLines(types.SectionExperience))
	profile.TotalExperienceMonths = totalExperienceMonths(profile.Experience, e.opts.EvaluationDate)

	profile.Education = extractEducation(text.SectionLines(types.SectionEducation), e.vocab)
	for _, entry := range profile.Education {
		if entry.Level > profile.HighestEducation {
			profile.HighestEducation = entry.Level
		}
	}

	profile.Certifications = collectList(text.SectionLines(types.SectionCertifications), false)
	profile.Languages = collectList(text.SectionLines(types.SectionLanguages), true)

	profile.Confidence = profileConfidence(profile)
	return profile
}

// profileConfidence is the mean of the per-category mean confidences over non-empty categories
func profileConfidence(p *types.CandidateProfile) float64 {
	var means []float64

	if len(p.Skills) > 0 {
		sum := 0.0
		for _, s := range p.Skills {
			sum += s.Confidence
		}
		means = append(means, sum/float64(len(p.Skills)))
	}
	if len(p.Experience) > 0 {
		sum := 0.0
		for _, x := range p.Experience {
			sum += x.Confidence
		}
		means = append(means, sum/float64(len(p.Experience)))
	}
	if len(p.Education) > 0 {
		sum := 0.0
		for _, ed := range p.Education {
			sum += ed.Confidence
		}
		means = append(means, sum/float64(len(p.Education)))
	}

	if len(means) == 0 {
		return 0
	}
	total := 0.0
	for _, m := range means {
		total += m
	}
	return total / float64(len(means))
}

// lineContent returns the text a line contributes to its section. Pure heading lines
// contribute nothing; inline headings ("Skills: Python, Go") contribute the part after the colon.
func lineContent(line types.Line) string {
	if !line.Heading {
		return line.Text
	}
	if idx := strings.Index(line.Text, ":"); idx >= 0 {
		return strings.TrimSpace(line.Text[idx+1:])
	}
	return ""
}

// isBullet reports whether a cleaned line carries the normalized bullet prefix
func isBullet(text string) bool {
	return strings.HasPrefix(text, "- ")
}

func stringPtr(s string) *string {
	return &s
}
