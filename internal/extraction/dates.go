package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/types"
)

const monthNamePattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

// dateTokenPattern matches one endpoint: "Jan 2020", "January 2020", "01/2020", "2020-01" or "2020"
const dateTokenPattern = monthNamePattern + `\s+\d{4}|\d{1,2}/\d{4}|\d{4}-(?:0?[1-9]|1[0-2])\b|\d{4}`

var (
	monthNameYear = regexp.MustCompile(`(?i)^(` + monthNamePattern + `)\s+(\d{4})$`)
	slashDate     = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	isoDate       = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	yearOnly      = regexp.MustCompile(`^(\d{4})$`)
)

var monthByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// dateRange is a parsed "start - end" span found in a line
type dateRange struct {
	Start   types.YearMonth
	End     types.YearMonth // zero when Current
	Current bool
	// YearOnly is set when either endpoint lacked a month
	YearOnly bool
	// Text is the matched substring, removed from the line when reading titles
	Text string
}

// dateParser recognizes date ranges. Present words come from the vocabulary.
type dateParser struct {
	rangePattern *regexp.Regexp
	present      map[string]struct{}
}

func newDateParser(presentWords []string) *dateParser {
	quoted := make([]string, 0, len(presentWords))
	present := make(map[string]struct{}, len(presentWords))
	for _, w := range presentWords {
		quoted = append(quoted, regexp.QuoteMeta(w))
		present[w] = struct{}{}
	}

	endAlternatives := dateTokenPattern
	if len(quoted) > 0 {
		endAlternatives += `|` + strings.Join(quoted, "|")
	}

	pattern := `(?i)\b(` + dateTokenPattern + `)\s*(?:-|–|—|\bto\b|\buntil\b|\bthrough\b)\s*(` + endAlternatives + `)\b`
	return &dateParser{
		rangePattern: regexp.MustCompile(pattern),
		present:      present,
	}
}

// findRange returns the first date range in text
func (p *dateParser) findRange(text string) (dateRange, bool) {
	m := p.rangePattern.FindStringSubmatchIndex(text)
	if m == nil {
		return dateRange{}, false
	}

	startText := text[m[2]:m[3]]
	endText := text[m[4]:m[5]]

	start, startYearOnly, ok := parseDate(startText)
	if !ok {
		return dateRange{}, false
	}

	r := dateRange{Start: start, YearOnly: startYearOnly, Text: text[m[0]:m[1]]}
	if _, isPresent := p.present[strings.ToLower(endText)]; isPresent {
		r.Current = true
		return r, true
	}

	end, endYearOnly, ok := parseDate(endText)
	if !ok {
		return dateRange{}, false
	}
	r.End = end
	r.YearOnly = r.YearOnly || endYearOnly
	return r, true
}

// hasRange reports whether the line contains a date range
func (p *dateParser) hasRange(text string) bool {
	_, ok := p.findRange(text)
	return ok
}

// parseDate parses a single endpoint. Year-only dates resolve to January.
func parseDate(text string) (types.YearMonth, bool, bool) {
	text = strings.TrimSpace(text)

	if m := monthNameYear.FindStringSubmatch(text); m != nil {
		prefix := strings.ToLower(strings.TrimSuffix(m[1], "."))
		if len(prefix) < 3 {
			return types.YearMonth{}, false, false
		}
		month, ok := monthByPrefix[prefix[:3]]
		year, err := strconv.Atoi(m[2])
		if !ok || err != nil {
			return types.YearMonth{}, false, false
		}
		return types.YearMonth{Year: year, Month: month}, false, true
	}

	if m := slashDate.FindStringSubmatch(text); m != nil {
		return numericDate(m[2], m[1])
	}

	if m := isoDate.FindStringSubmatch(text); m != nil {
		return numericDate(m[1], m[2])
	}

	if m := yearOnly.FindStringSubmatch(text); m != nil {
		year, err := strconv.Atoi(m[1])
		if err != nil {
			return types.YearMonth{}, false, false
		}
		return types.YearMonth{Year: year, Month: time.January}, true, true
	}

	return types.YearMonth{}, false, false
}

func numericDate(yearText, monthText string) (types.YearMonth, bool, bool) {
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return types.YearMonth{}, false, false
	}
	month, err := strconv.Atoi(monthText)
	if err != nil || month < 1 || month > 12 {
		return types.YearMonth{}, false, false
	}
	return types.YearMonth{Year: year, Month: time.Month(month)}, false, true
}
