package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/vocabulary"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{5,}\d`)
	yearPattern  = regexp.MustCompile(`\d+`)
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
	maxNameWords   = 4
	maxNameChars   = 50
)

// extractContact finds the first email and phone anywhere in the document and a name
// near the top, before the first non-contact section.
func extractContact(lines []types.Line, vocab *vocabulary.Vocabulary) types.Contact {
	var contact types.Contact

	for _, line := range lines {
		if contact.Email == nil {
			if m := emailPattern.FindString(line.Text); m != "" {
				contact.Email = stringPtr(m)
			}
		}
		if contact.Phone == nil {
			if phone, ok := findPhone(line.Text); ok {
				contact.Phone = stringPtr(phone)
			}
		}
		if contact.Email != nil && contact.Phone != nil {
			break
		}
	}

	contact.Name = findName(lines, vocab)
	return contact
}

// findPhone returns the first phone-shaped run with 7 to 15 digits that is not a year range
func findPhone(text string) (string, bool) {
	for _, m := range phonePattern.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		digits := countDigits(m)
		if digits < minPhoneDigits || digits > maxPhoneDigits {
			continue
		}
		if isYearRun(m) {
			continue
		}
		return m, true
	}
	return "", false
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// isYearRun reports whether every digit group is a plausible year, as in "2019 - 2021"
func isYearRun(s string) bool {
	groups := yearPattern.FindAllString(s, -1)
	if len(groups) == 0 {
		return false
	}
	for _, g := range groups {
		if len(g) != 4 || (g[:2] != "19" && g[:2] != "20") {
			return false
		}
	}
	return true
}

func findName(lines []types.Line, vocab *vocabulary.Vocabulary) *string {
	for _, line := range lines {
		if line.Section != types.SectionUnknown && line.Section != types.SectionContact {
			return nil
		}
		if line.IsBlank() {
			continue
		}
		if _, known := vocab.SectionForHeading(line.Text); known {
			continue
		}
		if isNameShaped(line.Text) {
			return stringPtr(line.Text)
		}
	}
	return nil
}

// isNameShaped accepts 2-4 words made of letters and name punctuation
func isNameShaped(text string) bool {
	if len(text) > maxNameChars {
		return false
	}
	words := strings.Fields(text)
	if len(words) < 2 || len(words) > maxNameWords {
		return false
	}
	for _, w := range words {
		letters := 0
		for _, r := range w {
			switch {
			case unicode.IsLetter(r):
				letters++
			case r == '.' || r == '\'' || r == '-' || r == '’':
			default:
				return false
			}
		}
		if letters == 0 {
			return false
		}
		first := []rune(w)[0]
		if !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}
