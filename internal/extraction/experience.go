package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// Confidence of an experience entry by date quality
const (
	monthPrecisionConfidence = 1.0
	yearPrecisionConfidence  = 0.7
	undatedConfidence        = 0.0
)

// titleSeparators split "Title at Org" style header lines, tried in order
var titleSeparators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+at\s+`),
	regexp.MustCompile(`\s*\|\s*`),
	regexp.MustCompile(`\s+[-–—]\s+`),
	regexp.MustCompile(`\s*,\s*`),
	regexp.MustCompile(`\s+@\s+`),
}

// headerTrim is stripped from header text once a date range has been cut out of it
const headerTrim = " \t|,-–—()[]:;"

// experienceSegment is the run of lines that describes one position
type experienceSegment struct {
	lines   []string
	dateIdx int // index into lines of the date-range line, -1 if none
}

func (s *experienceSegment) empty() bool {
	return len(s.lines) == 0
}

// extractExperience segments the experience section into entries and parses each one
func (e *Extractor) extractExperience(lines []types.Line) []types.ExperienceEntry {
	segments := e.segmentExperience(lines)

	entries := make([]types.ExperienceEntry, 0, len(segments))
	for _, seg := range segments {
		entries = append(entries, e.parseExperienceSegment(seg))
	}
	return entries
}

// segmentExperience splits lines into positions. A blank line ends a position; a second
// date range starts a new one, taking the header lines that directly precede it.
func (e *Extractor) segmentExperience(lines []types.Line) []experienceSegment {
	var segments []experienceSegment
	current := experienceSegment{dateIdx: -1}

	flush := func() {
		if hasHeaderOrDate(current) {
			segments = append(segments, current)
		} else if len(segments) > 0 && !current.empty() {
			// Bullets separated from their position by a blank line
			last := &segments[len(segments)-1]
			last.lines = append(last.lines, current.lines...)
		}
		current = experienceSegment{dateIdx: -1}
	}

	for _, line := range lines {
		text := lineContent(line)
		if text == "" {
			if !line.Heading {
				flush()
			}
			continue
		}

		if e.dates.hasRange(text) {
			if current.dateIdx >= 0 {
				// Header lines written after the previous position's bullets belong to the new one
				split := len(current.lines)
				for split > current.dateIdx+1 && !isBullet(current.lines[split-1]) {
					split--
				}
				carried := append([]string(nil), current.lines[split:]...)
				current.lines = current.lines[:split]
				flush()
				current.lines = carried
			}
			current.dateIdx = len(current.lines)
		}
		current.lines = append(current.lines, text)
	}
	flush()

	return segments
}

func hasHeaderOrDate(seg experienceSegment) bool {
	if seg.dateIdx >= 0 {
		return true
	}
	for _, l := range seg.lines {
		if !isBullet(l) {
			return true
		}
	}
	return false
}

func (e *Extractor) parseExperienceSegment(seg experienceSegment) types.ExperienceEntry {
	entry := types.ExperienceEntry{Confidence: undatedConfidence}

	var headers []string
	for i, l := range seg.lines {
		if isBullet(l) {
			continue
		}
		if i == seg.dateIdx {
			if r, ok := e.dates.findRange(l); ok {
				e.applyRange(&entry, r)
				l = strings.Replace(l, r.Text, " ", 1)
			}
		}
		l = strings.Trim(strings.Join(strings.Fields(l), " "), headerTrim)
		if l != "" {
			headers = append(headers, l)
		}
	}

	if len(headers) > 0 {
		title, org := splitTitle(headers[0])
		if org == "" && len(headers) > 1 {
			org = headers[1]
		}
		if title != "" {
			entry.Title = stringPtr(title)
		}
		if org != "" {
			entry.Organization = stringPtr(org)
		}
	}

	return entry
}

// applyRange fills dates, duration and confidence. A range ending before it starts
// keeps its dates but counts as zero months with zero confidence.
func (e *Extractor) applyRange(entry *types.ExperienceEntry, r dateRange) {
	start := r.Start
	entry.Start = &start

	end := e.opts.EvaluationDate
	if r.Current {
		entry.Current = true
	} else {
		end = r.End
		entry.End = &end
	}

	if end.Before(start) {
		entry.DurationMonths = 0
		entry.Confidence = undatedConfidence
		return
	}

	entry.DurationMonths = types.MonthsBetween(start, end)
	if r.YearOnly {
		entry.Confidence = yearPrecisionConfidence
	} else {
		entry.Confidence = monthPrecisionConfidence
	}
}

// splitTitle splits a header on the first separator that yields two non-empty parts
func splitTitle(header string) (string, string) {
	for _, sep := range titleSeparators {
		parts := sep.Split(header, 2)
		if len(parts) != 2 {
			continue
		}
		title := strings.Trim(parts[0], headerTrim)
		org := strings.Trim(parts[1], headerTrim)
		if title != "" && org != "" {
			return title, org
		}
	}
	return header, ""
}

// totalExperienceMonths sums the union of dated intervals so overlapping positions count once
func totalExperienceMonths(entries []types.ExperienceEntry, evaluation types.YearMonth) int {
	type interval struct{ start, end int }

	intervals := make([]interval, 0, len(entries))
	for _, entry := range entries {
		if entry.Start == nil || entry.DurationMonths <= 0 {
			continue
		}
		end := evaluation
		if entry.End != nil {
			end = *entry.End
		}
		intervals = append(intervals, interval{start: entry.Start.Index(), end: end.Index()})
	}
	if len(intervals) == 0 {
		return 0
	}

	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].start != intervals[j].start {
			return intervals[i].start < intervals[j].start
		}
		return intervals[i].end < intervals[j].end
	})

	total := 0
	cur := intervals[0]
	for _, iv := range intervals[1:] {
		if iv.start <= cur.end {
			if iv.end > cur.end {
				cur.end = iv.end
			}
			continue
		}
		total += cur.end - cur.start
		cur = iv
	}
	total += cur.end - cur.start
	return total
}
