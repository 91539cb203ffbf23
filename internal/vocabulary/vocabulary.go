// Package vocabulary holds the static tables that drive resume extraction: canonical skills
// and their synonyms, section-heading keywords, degree-level keywords and "present" words.
// A Vocabulary is built once at startup and is read-only afterwards, so it is safe to share
// across goroutines.
package vocabulary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
	embedded "github.com/jonathan/resume-screener/schemas"
)

//go:embed default_vocabulary.json
var defaultVocabulary []byte

// LoadError represents an error reading or validating a vocabulary file
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vocabulary load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("vocabulary load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// file mirrors the JSON layout described by schemas/vocabulary.schema.json
type file struct {
	Version             string              `json:"version"`
	Skills              []skillEntry        `json:"skills"`
	SectionHeadings     map[string][]string `json:"section_headings"`
	DegreeLevels        map[string][]string `json:"degree_levels"`
	PresentWords        []string            `json:"present_words"`
	InstitutionKeywords []string            `json:"institution_keywords"`
}

type skillEntry struct {
	Name          string   `json:"name"`
	Aliases       []string `json:"aliases"`
	CaseSensitive bool     `json:"case_sensitive"`
}

// DegreeKeyword maps a degree keyword (e.g. "b.s.") to its education level
type DegreeKeyword struct {
	Keyword string
	Level   types.EducationLevel
	pattern *regexp.Regexp
}

// MatchIn reports whether the keyword occurs in text as a whole word
func (d DegreeKeyword) MatchIn(text string) bool {
	return d.pattern.MatchString(text)
}

// Vocabulary is the immutable, process-wide table set
type Vocabulary struct {
	version string

	canonical   map[string]string // lowercase phrase -> canonical, used to canonicalize requirement names
	scanFold    map[string]string // lowercase phrase -> canonical, case-insensitive text scanning
	scanExact   map[string]string // exact phrase -> canonical, case-sensitive text scanning
	maxPhrase   int
	headings    map[string]string // normalized heading -> section label
	degrees     []DegreeKeyword
	present     map[string]struct{}
	institution []string
}

var (
	defaultOnce sync.Once
	defaultVoc  *Vocabulary
	defaultErr  error
)

// Default returns the vocabulary embedded in the binary.
// It panics if the embedded table is invalid, which is a build defect.
func Default() *Vocabulary {
	defaultOnce.Do(func() {
		defaultVoc, defaultErr = Parse(defaultVocabulary)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded vocabulary is invalid: %v", defaultErr))
	}
	return defaultVoc
}

// LoadFile reads and parses a vocabulary JSON file
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return Parse(data)
}

// Parse validates vocabulary JSON against its schema and builds the lookup tables
func Parse(data []byte) (*Vocabulary, error) {
	if err := schemas.ValidateEmbedded(embedded.Vocabulary, data); err != nil {
		return nil, &LoadError{Message: "schema validation failed", Cause: err}
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Message: "invalid JSON", Cause: err}
	}

	return build(f)
}

func build(f file) (*Vocabulary, error) {
	v := &Vocabulary{
		version:   f.Version,
		canonical: make(map[string]string),
		scanFold:  make(map[string]string),
		scanExact: make(map[string]string),
		headings:  make(map[string]string),
		present:   make(map[string]struct{}),
	}

	register := func(surface, canonical string, exact bool) error {
		tokens := Tokenize(surface)
		if len(tokens) == 0 {
			return &LoadError{Message: fmt.Sprintf("skill surface %q has no tokens", surface)}
		}
		foldKey := PhraseKey(tokens, false)
		if prev, ok := v.canonical[foldKey]; ok && prev != canonical {
			return &LoadError{Message: fmt.Sprintf("surface %q maps to both %q and %q", surface, prev, canonical)}
		}
		v.canonical[foldKey] = canonical
		if exact {
			v.scanExact[PhraseKey(tokens, true)] = canonical
		} else {
			v.scanFold[foldKey] = canonical
		}
		if len(tokens) > v.maxPhrase {
			v.maxPhrase = len(tokens)
		}
		return nil
	}

	for _, skill := range f.Skills {
		name := strings.TrimSpace(skill.Name)
		if err := register(name, name, skill.CaseSensitive); err != nil {
			return nil, err
		}
		for _, alias := range skill.Aliases {
			if err := register(alias, name, false); err != nil {
				return nil, err
			}
		}
	}

	for section, titles := range f.SectionHeadings {
		for _, title := range titles {
			v.headings[NormalizeHeading(title)] = section
		}
	}

	for levelName, keywords := range f.DegreeLevels {
		level, err := types.ParseEducationLevel(levelName)
		if err != nil {
			return nil, &LoadError{Message: "invalid degree level", Cause: err}
		}
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			v.degrees = append(v.degrees, DegreeKeyword{
				Keyword: kw,
				Level:   level,
				pattern: regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(kw) + `(?:$|[^\p{L}\p{N}])`),
			})
		}
	}
	// Highest level first, longer keywords before their prefixes, then alphabetical for determinism
	sort.Slice(v.degrees, func(i, j int) bool {
		a, b := v.degrees[i], v.degrees[j]
		if a.Level != b.Level {
			return a.Level > b.Level
		}
		if len(a.Keyword) != len(b.Keyword) {
			return len(a.Keyword) > len(b.Keyword)
		}
		return a.Keyword < b.Keyword
	})

	for _, w := range f.PresentWords {
		v.present[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	for _, kw := range f.InstitutionKeywords {
		v.institution = append(v.institution, strings.ToLower(strings.TrimSpace(kw)))
	}

	return v, nil
}

// Version returns the vocabulary version string
func (v *Vocabulary) Version() string {
	return v.version
}

// Canonical maps a skill name or synonym to its canonical name, ignoring case.
// Unknown names are returned trimmed but otherwise unchanged.
func (v *Vocabulary) Canonical(name string) string {
	tokens := Tokenize(name)
	if len(tokens) == 0 {
		return strings.TrimSpace(name)
	}
	if canonical, ok := v.canonical[PhraseKey(tokens, false)]; ok {
		return canonical
	}
	return strings.TrimSpace(name)
}

// MatchPhrase reports whether the token window is a known skill surface form,
// honouring case-sensitive entries such as "Go".
func (v *Vocabulary) MatchPhrase(tokens []Token) (string, bool) {
	if len(tokens) == 0 {
		return "", false
	}
	if canonical, ok := v.scanExact[PhraseKey(tokens, true)]; ok {
		return canonical, true
	}
	canonical, ok := v.scanFold[PhraseKey(tokens, false)]
	return canonical, ok
}

// MaxPhraseTokens returns the token length of the longest skill surface form
func (v *Vocabulary) MaxPhraseTokens() int {
	return v.maxPhrase
}

// SectionForHeading returns the section label for a heading line, if it is a known heading
func (v *Vocabulary) SectionForHeading(text string) (string, bool) {
	section, ok := v.headings[NormalizeHeading(text)]
	return section, ok
}

// DegreeKeywords returns the degree keywords ordered from highest level to lowest
func (v *Vocabulary) DegreeKeywords() []DegreeKeyword {
	out := make([]DegreeKeyword, len(v.degrees))
	copy(out, v.degrees)
	return out
}

// IsPresentWord reports whether w means "until now" in a date range
func (v *Vocabulary) IsPresentWord(w string) bool {
	_, ok := v.present[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// PresentWords returns the present words sorted alphabetically
func (v *Vocabulary) PresentWords() []string {
	out := make([]string, 0, len(v.present))
	for w := range v.present {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// IsInstitution reports whether text names a school, college or university
func (v *Vocabulary) IsInstitution(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range v.institution {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// NormalizeHeading lowercases a heading and strips decoration so "WORK EXPERIENCE:" and
// "Work Experience" compare equal.
func NormalizeHeading(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.ReplaceAll(text, "&", " and ")
	text = strings.Trim(text, " :-–—|#*=_.")
	return strings.Join(strings.Fields(text), " ")
}
