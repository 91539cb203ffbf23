package vocabulary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	v := Default()
	require.NotNil(t, v)
	assert.NotEmpty(t, v.Version())
	assert.GreaterOrEqual(t, v.MaxPhraseTokens(), 2)
	assert.Same(t, v, Default(), "default vocabulary is built once")
}

func TestCanonical(t *testing.T) {
	v := Default()

	tests := map[string]string{
		"JS":         "JavaScript",
		"javascript": "JavaScript",
		"golang":     "Go",
		"go":         "Go",
		"K8s":        "Kubernetes",
		"postgres":   "PostgreSQL",
		"  Rust  ":   "Rust",
		"c++":        "C++",
		"ci/cd":      "CI/CD",
		"Cobol":      "Cobol",
	}
	for input, want := range tests {
		assert.Equal(t, want, v.Canonical(input), input)
	}
}

func TestMatchPhrase_CaseSensitive(t *testing.T) {
	v := Default()

	canonical, ok := v.MatchPhrase(Tokenize("Go"))
	assert.True(t, ok)
	assert.Equal(t, "Go", canonical)

	_, ok = v.MatchPhrase(Tokenize("go"))
	assert.False(t, ok, "lowercase 'go' is an ordinary word")

	canonical, ok = v.MatchPhrase(Tokenize("GOLANG"))
	assert.True(t, ok)
	assert.Equal(t, "Go", canonical)

	canonical, ok = v.MatchPhrase(Tokenize("amazon web services"))
	assert.True(t, ok)
	assert.Equal(t, "AWS", canonical)
}

func TestTokenize(t *testing.T) {
	texts := func(tokens []Token) []string {
		out := make([]string, len(tokens))
		for i, tok := range tokens {
			out[i] = tok.Text
		}
		return out
	}

	assert.Equal(t, []string{"Skills", "Python", "Go"}, texts(Tokenize("Skills: Python, Go")))
	assert.Equal(t, []string{"C++", "C#", "Node.js", "and", "CI", "CD"}, texts(Tokenize("C++, C#; Node.js and CI/CD")))
	assert.Equal(t, []string{"Python"}, texts(Tokenize("Python.")))
	assert.Empty(t, Tokenize(" ... , "))

	tokens := Tokenize("use Kafka")
	require.Len(t, tokens, 2)
	assert.Equal(t, "Kafka", "use Kafka"[tokens[1].Start:tokens[1].End])
}

func TestSectionForHeading(t *testing.T) {
	v := Default()

	tests := map[string]string{
		"EXPERIENCE":                types.SectionExperience,
		"Work Experience:":          types.SectionExperience,
		"  education  ":             types.SectionEducation,
		"Technical Skills":          types.SectionSkills,
		"Licenses & Certifications": types.SectionCertifications,
	}
	for input, want := range tests {
		got, ok := v.SectionForHeading(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := v.SectionForHeading("Jane Doe")
	assert.False(t, ok)
}

func TestDegreeKeywords_Ordered(t *testing.T) {
	keywords := Default().DegreeKeywords()
	require.NotEmpty(t, keywords)

	for i := 1; i < len(keywords); i++ {
		assert.GreaterOrEqual(t, keywords[i-1].Level, keywords[i].Level)
	}

	var bs DegreeKeyword
	for _, kw := range keywords {
		if kw.Keyword == "b.s." {
			bs = kw
		}
	}
	require.Equal(t, types.EducationBachelor, bs.Level)
	assert.True(t, bs.MatchIn("B.S. in Computer Science"))
	assert.False(t, bs.MatchIn("MB.S.X"))
}

func TestPresentAndInstitution(t *testing.T) {
	v := Default()
	assert.True(t, v.IsPresentWord("Present"))
	assert.True(t, v.IsPresentWord(" current "))
	assert.False(t, v.IsPresentWord("yesterday"))
	assert.Contains(t, v.PresentWords(), "now")

	assert.True(t, v.IsInstitution("Stanford University"))
	assert.False(t, v.IsInstitution("Acme Corp"))
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse([]byte(`{"version": "1", "skills": []}`))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestParse_ConflictingAlias(t *testing.T) {
	data := `{
		"version": "t",
		"skills": [
			{"name": "JavaScript", "aliases": ["js"]},
			{"name": "JSON", "aliases": ["js"]}
		],
		"section_headings": {"skills": ["skills"]},
		"degree_levels": {"bachelor": ["bachelor"]},
		"present_words": ["present"]
	}`

	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maps to both")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "custom",
		"skills": [{"name": "Elixir", "aliases": ["ex"]}],
		"section_headings": {"skills": ["toolbox"]},
		"degree_levels": {"master": ["msc"]},
		"present_words": ["present"]
	}`), 0644))

	v, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", v.Version())
	assert.Equal(t, "Elixir", v.Canonical("EX"))

	section, ok := v.SectionForHeading("Toolbox")
	assert.True(t, ok)
	assert.Equal(t, types.SectionSkills, section)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
