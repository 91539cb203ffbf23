// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// CandidateProfile is the structured view of a resume produced by extraction
type CandidateProfile struct {
	CandidateID           string            `json:"candidate_id"`
	Contact               Contact           `json:"contact"`
	Skills                []SkillMention    `json:"skills"`
	Experience            []ExperienceEntry `json:"experience"`
	Education             []EducationEntry  `json:"education"`
	Certifications        []string          `json:"certifications,omitempty"`
	Languages             []string          `json:"languages,omitempty"`
	TotalExperienceMonths int               `json:"total_experience_months"`
	HighestEducation      EducationLevel    `json:"highest_education"`
	Confidence            float64           `json:"confidence"` // 0-1 overall extraction confidence
	ParserVersion         string            `json:"parser_version"`
	EvaluatedAt           YearMonth         `json:"evaluated_at"` // month used to resolve "present"
}

// Contact holds optional contact details. A nil field was not found in the document.
type Contact struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// SkillMention is a canonical skill found in the resume
type SkillMention struct {
	Name       string  `json:"name"`    // canonical skill name
	Surface    string  `json:"surface"` // raw text as written
	Confidence float64 `json:"confidence"`
	Section    string  `json:"section"`
}

// ExperienceEntry is one position from the experience section.
// End is nil when the position is current.
type ExperienceEntry struct {
	Title          *string    `json:"title,omitempty"`
	Organization   *string    `json:"organization,omitempty"`
	Start          *YearMonth `json:"start,omitempty"`
	End            *YearMonth `json:"end,omitempty"`
	Current        bool       `json:"current,omitempty"`
	DurationMonths int        `json:"duration_months"`
	Confidence     float64    `json:"confidence"`
}

// EducationEntry is one degree or school from the education section
type EducationEntry struct {
	Level       EducationLevel `json:"level"`
	Field       *string        `json:"field,omitempty"`
	Institution *string        `json:"institution,omitempty"`
	Confidence  float64        `json:"confidence"`
}

// Clone returns a deep copy, so that a cached profile can be handed out without
// callers sharing its slices or optional fields.
func (p *CandidateProfile) Clone() *CandidateProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Contact = Contact{Name: clonePtr(p.Contact.Name), Email: clonePtr(p.Contact.Email), Phone: clonePtr(p.Contact.Phone)}
	c.Skills = slices.Clone(p.Skills)
	c.Certifications = slices.Clone(p.Certifications)
	c.Languages = slices.Clone(p.Languages)

	if p.Experience != nil {
		c.Experience = make([]ExperienceEntry, len(p.Experience))
		for i, e := range p.Experience {
			e.Title = clonePtr(e.Title)
			e.Organization = clonePtr(e.Organization)
			e.Start = clonePtr(e.Start)
			e.End = clonePtr(e.End)
			c.Experience[i] = e
		}
	}
	if p.Education != nil {
		c.Education = make([]EducationEntry, len(p.Education))
		for i, e := range p.Education {
			e.Field = clonePtr(e.Field)
			e.Institution = clonePtr(e.Institution)
			c.Education[i] = e
		}
	}
	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// SkillByName returns the mention for a canonical skill, matched case-insensitively
func (p *CandidateProfile) SkillByName(name string) (SkillMention, bool) {
	for _, s := range p.Skills {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return SkillMention{}, false
}

// YearMonth is a month-granularity date
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// NewYearMonth returns the month containing t
func NewYearMonth(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Index returns a monotonically increasing month count, so that
// b.Index()-a.Index() is the number of months between a and b.
func (ym YearMonth) Index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// IsZero reports whether the value is unset
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// Before reports whether ym is strictly earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Index() < other.Index()
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// MonthsBetween returns the whole months from start to end, never negative.
func MonthsBetween(start, end YearMonth) int {
	diff := end.Index() - start.Index()
	if diff < 0 {
		return 0
	}
	return diff
}
