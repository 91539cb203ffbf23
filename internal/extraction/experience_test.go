package extraction

import (
	"testing"
	"time"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ym(year int, month time.Month) types.YearMonth {
	return types.YearMonth{Year: year, Month: month}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		want     types.YearMonth
		yearOnly bool
		ok       bool
	}{
		{"Jan 2020", ym(2020, time.January), false, true},
		{"January 2020", ym(2020, time.January), false, true},
		{"Sept. 2019", ym(2019, time.September), false, true},
		{"01/2020", ym(2020, time.January), false, true},
		{"3/2021", ym(2021, time.March), false, true},
		{"2020-01", ym(2020, time.January), false, true},
		{"2018", ym(2018, time.January), true, true},
		{"13/2020", types.YearMonth{}, false, false},
		{"Smarch 2020", types.YearMonth{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, yearOnly, ok := parseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.yearOnly, yearOnly)
			}
		})
	}
}

func TestFindRange(t *testing.T) {
	p := newDateParser([]string{"present", "current", "now"})

	tests := []struct {
		name    string
		input   string
		start   types.YearMonth
		end     types.YearMonth
		current bool
	}{
		{"month names", "Jan 2020 - Jan 2022", ym(2020, time.January), ym(2022, time.January), false},
		{"en dash present", "Mar 2019 – Present", ym(2019, time.March), types.YearMonth{}, true},
		{"slashes with to", "01/2018 to 06/2019", ym(2018, time.January), ym(2019, time.June), false},
		{"iso", "2017-02 - 2018-11", ym(2017, time.February), ym(2018, time.November), false},
		{"years", "2015-2017", ym(2015, time.January), ym(2017, time.January), false},
		{"embedded", "Engineer, Initech (Feb 2016 - current)", ym(2016, time.February), types.YearMonth{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := p.findRange(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
			assert.Equal(t, tt.current, r.Current)
		})
	}

	_, ok := p.findRange("Built 3 services in 2019")
	assert.False(t, ok)
}

func TestExtractExperience_Layouts(t *testing.T) {
	ex := newTestExtractor()

	t.Run("no blank lines between positions", func(t *testing.T) {
		text := ingest(t, "EXPERIENCE\nEngineer at Acme\nJan 2020 - Jan 2021\n- Wrote code\nAnalyst at Initech\n2018 - 2019\n- Wrote reports\n")
		entries := ex.Extract(text).Experience

		require.Len(t, entries, 2)
		assert.Equal(t, "Engineer", *entries[0].Title)
		assert.Equal(t, "Acme", *entries[0].Organization)
		assert.Equal(t, 12, entries[0].DurationMonths)
		assert.Equal(t, "Analyst", *entries[1].Title)
		assert.Equal(t, "Initech", *entries[1].Organization)
		assert.Equal(t, 12, entries[1].DurationMonths)
		assert.Equal(t, yearPrecisionConfidence, entries[1].Confidence)
	})

	t.Run("single line headers", func(t *testing.T) {
		text := ingest(t, "EXPERIENCE\nLead Engineer | Globex | Mar 2023 - Present\nDeveloper, Hooli, 2021-01 - 2023-03\n")
		entries := ex.Extract(text).Experience

		require.Len(t, entries, 2)
		assert.Equal(t, "Lead Engineer", *entries[0].Title)
		assert.Equal(t, "Globex", *entries[0].Organization)
		assert.True(t, entries[0].Current)
		assert.Nil(t, entries[0].End)
		assert.Equal(t, 15, entries[0].DurationMonths) // Mar 2023 to Jun 2024
		assert.Equal(t, "Developer", *entries[1].Title)
		assert.Equal(t, "Hooli", *entries[1].Organization)
		assert.Equal(t, 26, entries[1].DurationMonths)
	})

	t.Run("unparsed dates", func(t *testing.T) {
		text := ingest(t, "EXPERIENCE\nConsultant at Self\nSometime in the past\n")
		entries := ex.Extract(text).Experience

		require.Len(t, entries, 1)
		assert.Equal(t, 0, entries[0].DurationMonths)
		assert.Equal(t, 0.0, entries[0].Confidence)
		assert.Nil(t, entries[0].Start)
	})

	t.Run("reversed range", func(t *testing.T) {
		text := ingest(t, "EXPERIENCE\nIntern at Acme\nJan 2022 - Jan 2020\n")
		entries := ex.Extract(text).Experience

		require.Len(t, entries, 1)
		assert.Equal(t, 0, entries[0].DurationMonths)
		assert.Equal(t, 0.0, entries[0].Confidence)
		require.NotNil(t, entries[0].Start)
	})
}

func TestTotalExperienceMonths(t *testing.T) {
	entry := func(start, end types.YearMonth) types.ExperienceEntry {
		s, e := start, end
		return types.ExperienceEntry{Start: &s, End: &e, DurationMonths: types.MonthsBetween(start, end)}
	}

	tests := []struct {
		name    string
		entries []types.ExperienceEntry
		want    int
	}{
		{"none", nil, 0},
		{
			"overlapping",
			[]types.ExperienceEntry{
				entry(ym(2020, time.January), ym(2022, time.January)),
				entry(ym(2021, time.June), ym(2023, time.June)),
			},
			41,
		},
		{
			"disjoint",
			[]types.ExperienceEntry{
				entry(ym(2015, time.January), ym(2016, time.January)),
				entry(ym(2018, time.January), ym(2018, time.July)),
			},
			18,
		},
		{
			"contained",
			[]types.ExperienceEntry{
				entry(ym(2010, time.January), ym(2020, time.January)),
				entry(ym(2012, time.January), ym(2013, time.January)),
			},
			120,
		},
		{
			"current uses evaluation date",
			[]types.ExperienceEntry{{Start: ptrYM(ym(2024, time.January)), Current: true, DurationMonths: 5}},
			5,
		},
		{
			"undated entries ignored",
			[]types.ExperienceEntry{{DurationMonths: 0}},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, totalExperienceMonths(tt.entries, evaluation))
		})
	}
}

func ptrYM(v types.YearMonth) *types.YearMonth {
	return &v
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		header, title, org string
	}{
		{"Senior Engineer at Acme Corp", "Senior Engineer", "Acme Corp"},
		{"Engineer | Globex", "Engineer", "Globex"},
		{"Engineer - Globex", "Engineer", "Globex"},
		{"Engineer, Globex", "Engineer", "Globex"},
		{"Freelancer", "Freelancer", ""},
	}
	for _, tt := range tests {
		title, org := splitTitle(tt.header)
		assert.Equal(t, tt.title, title, tt.header)
		assert.Equal(t, tt.org, org, tt.header)
	}
}

func TestFieldOf(t *testing.T) {
	assert.Equal(t, "Computer Science", fieldOf("B.S. in Computer Science, State University"))
	assert.Equal(t, "Physics", fieldOf("Bachelor of Science in Physics (2014)"))
	assert.Equal(t, "Business Administration", fieldOf("Master of Business Administration"))
	assert.Equal(t, "", fieldOf("MBA"))
}

func TestInstitutionOf(t *testing.T) {
	vocab := vocabulary.Default()
	keywords := vocab.DegreeKeywords()

	assert.Equal(t, "State University", institutionOf("B.S. in Computer Science, State University", keywords, vocab))
	assert.Equal(t, "Imperial College", institutionOf("MSc Physics | Imperial College | 2016", keywords, vocab))
	assert.Equal(t, "", institutionOf("Bachelor of Science in Physics", keywords, vocab))
}
