// Package ingestion converts raw resume documents into normalized, section-tagged text.
package ingestion

import (
	"strings"
	"unicode"
)

// bulletPrefixes are list markers normalized to "- "
var bulletPrefixes = []string{"- ", "* ", "• ", "· ", "▪ ", "◦ ", "● ", "○ ", "■ ", "➢ ", "– ", "— "}

// lineBreaks splits on every line-ending convention seen in extracted documents
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n", "\v", "\n", "\u2028", "\n", "\u2029", "\n", "\u0085", "\n")

// CleanLines normalizes decoded text into lines. Control characters are stripped,
// whitespace runs inside a line collapse to one space, bullet glyphs become "- ",
// and runs of blank lines collapse to a single blank line. Line breaks are kept
// because they mark entry and section boundaries.
func CleanLines(content string) []string {
	if content == "" {
		return nil
	}

	content = lineBreaks.Replace(content)
	raw := strings.Split(content, "\n")

	lines := make([]string, 0, len(raw))
	blank := true // suppresses leading blank lines
	for _, line := range raw {
		cleaned := cleanLine(line)
		if cleaned == "" {
			if !blank {
				lines = append(lines, "")
			}
			blank = true
			continue
		}
		lines = append(lines, cleaned)
		blank = false
	}

	// Drop the trailing blank line, if any
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// CleanText is CleanLines joined back into a single string
func CleanText(content string) string {
	return strings.Join(CleanLines(content), "\n")
}

// cleanLine cleans a single line
func cleanLine(line string) string {
	line = strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r == '\uFEFF' || r == '\u200B':
			return -1
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, line)

	line = strings.Join(strings.Fields(line), " ")
	if line == "" {
		return ""
	}

	if glyph, ok := bulletGlyph(line); ok {
		rest := strings.TrimSpace(strings.TrimPrefix(line, glyph))
		if rest == "" {
			return ""
		}
		return "- " + rest
	}
	return line
}

// bulletGlyph returns the list marker a collapsed line starts with. A bare marker
// with nothing after it counts, since whitespace collapsing drops its trailing space.
func bulletGlyph(line string) (string, bool) {
	for _, prefix := range bulletPrefixes {
		glyph := strings.TrimSpace(prefix)
		if line == glyph || strings.HasPrefix(line, prefix) {
			return glyph, true
		}
	}
	return "", false
}
