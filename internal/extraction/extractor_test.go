package extraction

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evaluation = types.YearMonth{Year: 2024, Month: time.June}

func newTestExtractor() *Extractor {
	return NewExtractor(vocabulary.Default(), Options{EvaluationDate: evaluation, ParserVersion: "test-1"})
}

func ingest(t *testing.T, text string) *types.NormalizedText {
	t.Helper()
	normalized, err := ingestion.NewIngestor(vocabulary.Default()).IngestBytes([]byte(text), "text/plain", "cand-1")
	require.NoError(t, err)
	return normalized
}

const sampleResume = `Jane Doe
jane.doe@example.com | +1 (555) 123-4567

SUMMARY
Backend engineer who enjoys JS tooling.

EXPERIENCE
Senior Engineer at Acme Corp
Jan 2020 - Jan 2022
- Built Kafka pipelines in Go

Staff Engineer | Globex
Jun 2021 - Jun 2023
- Led a team of five

EDUCATION
B.S. in Computer Science, State University

Skills: Python, Go, Docker

CERTIFICATIONS
AWS Certified Solutions Architect

LANGUAGES
English, Spanish; english
`

func TestExtract_SampleResume(t *testing.T) {
	profile := newTestExtractor().Extract(ingest(t, sampleResume))

	assert.Equal(t, "cand-1", profile.CandidateID)
	assert.Equal(t, "test-1", profile.ParserVersion)
	assert.Equal(t, evaluation, profile.EvaluatedAt)

	require.NotNil(t, profile.Contact.Name)
	assert.Equal(t, "Jane Doe", *profile.Contact.Name)
	require.NotNil(t, profile.Contact.Email)
	assert.Equal(t, "jane.doe@example.com", *profile.Contact.Email)
	require.NotNil(t, profile.Contact.Phone)
	assert.Equal(t, "+1 (555) 123-4567", *profile.Contact.Phone)

	require.Len(t, profile.Experience, 2)
	first := profile.Experience[0]
	require.NotNil(t, first.Title)
	require.NotNil(t, first.Organization)
	assert.Equal(t, "Senior Engineer", *first.Title)
	assert.Equal(t, "Acme Corp", *first.Organization)
	assert.Equal(t, 24, first.DurationMonths)
	assert.Equal(t, 1.0, first.Confidence)

	second := profile.Experience[1]
	require.NotNil(t, second.Title)
	require.NotNil(t, second.Organization)
	assert.Equal(t, "Staff Engineer", *second.Title)
	assert.Equal(t, "Globex", *second.Organization)

	// Jan 2020 - Jun 2023 as a union, not 24 + 24
	assert.Equal(t, 41, profile.TotalExperienceMonths)

	require.Len(t, profile.Education, 1)
	edu := profile.Education[0]
	assert.Equal(t, types.EducationBachelor, edu.Level)
	require.NotNil(t, edu.Field)
	assert.Equal(t, "Computer Science", *edu.Field)
	require.NotNil(t, edu.Institution)
	assert.Equal(t, "State University", *edu.Institution)
	assert.Equal(t, types.EducationBachelor, profile.HighestEducation)

	assert.Equal(t, []string{"AWS Certified Solutions Architect"}, profile.Certifications)
	assert.Equal(t, []string{"English", "Spanish"}, profile.Languages)

	assert.Greater(t, profile.Confidence, 0.0)
	assert.LessOrEqual(t, profile.Confidence, 1.0)
}

func TestExtract_SkillConfidenceBySection(t *testing.T) {
	profile := newTestExtractor().Extract(ingest(t, sampleResume))

	cases := map[string]float64{
		"Python":     1.0,
		"Go":         1.0, // also in an experience bullet at 0.6, highest wins
		"Docker":     1.0,
		"Kafka":      0.6,
		"JavaScript": 0.6, // "JS" synonym in the summary
		"AWS":        0.6,
	}
	for name, want := range cases {
		mention, ok := profile.SkillByName(name)
		require.True(t, ok, "missing skill %s", name)
		assert.Equal(t, want, mention.Confidence, name)
	}

	js, _ := profile.SkillByName("JavaScript")
	assert.Equal(t, "JS", js.Surface)

	// One mention per canonical name
	seen := map[string]bool{}
	for _, s := range profile.Skills {
		assert.False(t, seen[s.Name], "duplicate %s", s.Name)
		seen[s.Name] = true
	}
}

func TestExtract_LowercaseGoIsNotASkill(t *testing.T) {
	profile := newTestExtractor().Extract(ingest(t, "SUMMARY\nReady to go the extra mile.\n"))
	_, ok := profile.SkillByName("Go")
	assert.False(t, ok)
}

func TestExtract_LongestPhraseWins(t *testing.T) {
	profile := newTestExtractor().Extract(ingest(t, "SKILLS\nAmazon Web Services, Google Cloud Platform\n"))

	_, ok := profile.SkillByName("AWS")
	assert.True(t, ok)
	gcp, ok := profile.SkillByName("GCP")
	require.True(t, ok)
	assert.Equal(t, "Google Cloud Platform", gcp.Surface)
}

func TestExtract_Idempotent(t *testing.T) {
	ex := newTestExtractor()

	a, err := json.Marshal(ex.Extract(ingest(t, sampleResume)))
	require.NoError(t, err)
	b, err := json.Marshal(ex.Extract(ingest(t, sampleResume)))
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}

func TestExtract_SparseInputDoesNotFail(t *testing.T) {
	ex := newTestExtractor()

	profile := ex.Extract(ingest(t, "lorem ipsum dolor sit amet\n"))
	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.Experience)
	assert.Empty(t, profile.Education)
	assert.Nil(t, profile.Contact.Email)
	assert.Nil(t, profile.Contact.Phone)
	assert.Nil(t, profile.Contact.Name)
	assert.Equal(t, types.EducationNone, profile.HighestEducation)
	assert.Equal(t, 0.0, profile.Confidence)

	empty := ex.Extract(nil)
	assert.NotNil(t, empty.Skills)
	assert.Equal(t, 0, empty.TotalExperienceMonths)
}

func TestExtract_EducationWithoutKeyword(t *testing.T) {
	profile := newTestExtractor().Extract(ingest(t, "EDUCATION\nCoursework in distributed systems\n\nPhD in Mathematics\nUniversity of London\n"))

	require.Len(t, profile.Education, 2)
	assert.Equal(t, types.EducationNone, profile.Education[0].Level)
	assert.Equal(t, types.EducationDoctorate, profile.Education[1].Level)
	require.NotNil(t, profile.Education[1].Institution)
	assert.Equal(t, "University of London", *profile.Education[1].Institution)
	assert.Equal(t, types.EducationDoctorate, profile.HighestEducation)
}

func TestNewExtractor_Defaults(t *testing.T) {
	ex := NewExtractor(vocabulary.Default(), Options{})
	assert.False(t, ex.EvaluationDate().IsZero())
	assert.Equal(t, DefaultParserVersion, ex.Extract(nil).ParserVersion)
}
