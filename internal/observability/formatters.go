// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, marking the cut with "..."
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// writeList writes up to limit items under a heading, with a "more" line for the rest
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintProfile outputs a human-readable summary of an extracted candidate profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate:  %s\n", profile.CandidateID))
	sb.WriteString(fmt.Sprintf("Name:       %s\n", orDash(profile.Contact.Name)))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", orDash(profile.Contact.Email)))
	sb.WriteString(fmt.Sprintf("Phone:      %s\n", orDash(profile.Contact.Phone)))
	sb.WriteString(fmt.Sprintf("Experience: %d months\n", profile.TotalExperienceMonths))
	sb.WriteString(fmt.Sprintf("Education:  %s\n", profile.HighestEducation))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", profile.Confidence))
	sb.WriteString("\n")

	skills := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		skills = append(skills, fmt.Sprintf("%s (%.1f)", s.Name, s.Confidence))
	}
	writeList(&sb, "Skills", skills, maxItemsToShow)

	positions := make([]string, 0, len(profile.Experience))
	for _, e := range profile.Experience {
		positions = append(positions, fmt.Sprintf("%s @ %s, %d mo", orDash(e.Title), orDash(e.Organization), e.DurationMonths))
	}
	writeList(&sb, "Positions", positions, 3)

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRequirement outputs the requirement a screening run is evaluated against.
func (p *Printer) PrintRequirement(spec *types.RequirementSpec) {
	if spec == nil {
		return
	}

	var sb strings.Builder
	if spec.ID != "" {
		sb.WriteString(fmt.Sprintf("ID:         %s\n", spec.ID))
	}
	if spec.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:      %s\n", spec.Title))
	}
	sb.WriteString(fmt.Sprintf("Strategy:   %s\n", spec.EffectiveStrategy()))
	sb.WriteString(fmt.Sprintf("Experience: >= %d months\n", spec.MinExperienceMonths))
	sb.WriteString(fmt.Sprintf("Education:  >= %s\n", spec.MinEducation))
	sb.WriteString("\n")

	skillNames := func(reqs []types.SkillRequirement) []string {
		out := make([]string, 0, len(reqs))
		for _, r := range reqs {
			out = append(out, fmt.Sprintf("%s (w=%.1f)", r.Name, r.Weight))
		}
		return out
	}
	writeList(&sb, "Required", skillNames(spec.RequiredSkills), maxItemsToShow)
	writeList(&sb, "Preferred", skillNames(spec.PreferredSkills), 3)

	p.printBox("REQUIREMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs the scores and explanation for one evaluation.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	verdict := "✗ FAILED"
	if result.Passed {
		verdict = "✓ PASSED"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate:  %s\n", result.CandidateID))
	sb.WriteString(fmt.Sprintf("Overall:    %d  %s\n", result.OverallScore, verdict))
	sb.WriteString(fmt.Sprintf("Skills:     %.1f\n", result.Subscores.Skills))
	sb.WriteString(fmt.Sprintf("Experience: %.1f\n", result.Subscores.Experience))
	sb.WriteString(fmt.Sprintf("Education:  %.1f\n", result.Subscores.Education))
	sb.WriteString("\n")

	matched := make([]string, 0, len(result.MatchedSkills))
	for _, m := range result.MatchedSkills {
		matched = append(matched, m.Name)
	}
	writeList(&sb, "Matched", matched, maxItemsToShow)
	writeList(&sb, "Missing required", result.MissingRequiredSkills, maxItemsToShow)
	writeList(&sb, "Missing preferred", result.MissingPreferredSkills, 3)

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedResults outputs the top N ranked candidates for a requirement.
func (p *Printer) PrintRankedResults(ranked *types.RankedResults) {
	if ranked == nil || len(ranked.Ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(ranked.Ranked)))

	count := min(len(ranked.Ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := ranked.Ranked[i]
		mark := " "
		if r.Passed {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("#%d %s %s\n", i+1, mark, r.CandidateID))
		sb.WriteString(fmt.Sprintf("    Score: %d (skills %.1f, exp %d mo)\n", r.OverallScore, r.Subscores.Skills, r.TotalExperienceMonths))
		if len(r.MissingRequiredSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", strings.Join(r.MissingRequiredSkills, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked.Ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked.Ranked)-maxItemsToShow))
	}

	title := "RANKED CANDIDATES"
	if ranked.RequirementID != "" {
		title += " (" + ranked.RequirementID + ")"
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFailures outputs documents that could not be screened.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFailures(failures map[string]string) {
	if len(failures) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL DOCUMENTS SCREENED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	ids := make([]string, 0, len(failures))
	for id := range failures {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Failed %d documents:\n\n", len(ids)))
	for i, id := range ids {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", id))
		sb.WriteString(fmt.Sprintf("  %s\n", failures[id]))
		if i < len(ids)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SCREENING FAILURES", strings.TrimSuffix(sb.String(), "\n"))
}
