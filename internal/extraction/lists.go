package extraction

import (
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// collectList gathers one item per line from a section, optionally splitting on commas
// and semicolons. Order is preserved and case-insensitive duplicates are dropped.
func collectList(lines []types.Line, split bool) []string {
	seen := make(map[string]struct{})
	var items []string

	add := func(item string) {
		item = strings.Trim(strings.TrimPrefix(item, "- "), headerTrim)
		if item == "" {
			return
		}
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		items = append(items, item)
	}

	for _, line := range lines {
		text := lineContent(line)
		if text == "" {
			continue
		}
		if !split {
			add(text)
			continue
		}
		for _, part := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ';' }) {
			add(part)
		}
	}
	return items
}
