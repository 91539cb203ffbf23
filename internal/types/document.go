// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// Format identifies the encoding of an uploaded resume document
type Format string

// Supported document formats
const (
	FormatUnknown Format = "unknown"
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatHTML    Format = "html"
	FormatText    Format = "text"
)

// Document is a raw resume upload. It is treated as immutable once ingested.
type Document struct {
	SourceID       string `json:"source_id"`
	DeclaredFormat string `json:"declared_format,omitempty"` // MIME type or file extension supplied by the uploader
	Content        []byte `json:"-"`
}

// ContentHash returns the hex-encoded SHA-256 of the document content.
// Identical uploads share a hash, which keys the extraction cache.
func (d Document) ContentHash() string {
	sum := sha256.Sum256(d.Content)
	return hex.EncodeToString(sum[:])
}

// Section labels assigned to normalized lines
const (
	SectionUnknown        = "unknown"
	SectionContact        = "contact"
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
)

// NormalizedText is the cleaned, line-ordered text of a document with inferred section labels.
// It is derived from a Document and discarded after extraction.
type NormalizedText struct {
	SourceID string `json:"source_id"`
	Format   Format `json:"format"`
	Lines    []Line `json:"lines"`
}

// Line is a single normalized line. Blank lines are kept as entry boundaries.
type Line struct {
	Number  int    `json:"number"`
	Text    string `json:"text"`
	Section string `json:"section"`
	Heading bool   `json:"heading,omitempty"`
}

// IsBlank reports whether the line carries no text
func (l Line) IsBlank() bool {
	return l.Text == ""
}

// SectionLines returns the lines tagged with the given section, in order.
func (n *NormalizedText) SectionLines(section string) []Line {
	if n == nil {
		return nil
	}
	out := make([]Line, 0)
	for _, line := range n.Lines {
		if line.Section == section {
			out = append(out, line)
		}
	}
	return out
}

// HasSection reports whether any line carries the given section label
func (n *NormalizedText) HasSection(section string) bool {
	if n == nil {
		return false
	}
	for _, line := range n.Lines {
		if line.Section == section {
			return true
		}
	}
	return false
}
