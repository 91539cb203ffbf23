package ingestion

import (
	"testing"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestFormatFromHint(t *testing.T) {
	tests := map[string]types.Format{
		"":                          types.FormatUnknown,
		"application/pdf":           types.FormatPDF,
		"pdf":                       types.FormatPDF,
		".PDF":                      types.FormatPDF,
		"resume.docx":               types.FormatDOCX,
		mimeDOCX:                    types.FormatDOCX,
		"text/plain; charset=utf-8": types.FormatText,
		"notes.md":                  types.FormatText,
		"text/html":                 types.FormatHTML,
		"index.htm":                 types.FormatHTML,
		"application/msword":        types.FormatUnknown,
		"resume.doc":                types.FormatUnknown,
	}
	for hint, want := range tests {
		assert.Equal(t, want, formatFromHint(hint), hint)
	}
}

func TestDetectFormat(t *testing.T) {
	text := []byte("Jane Doe\nSkills: Python, Go\n")
	html := []byte("<!DOCTYPE html><html><body><p>Jane Doe</p></body></html>")
	pdfMagic := []byte("%PDF-1.7\n%garbage")
	docxBytes := buildDOCX(t, "Jane Doe")

	tests := []struct {
		name     string
		declared string
		content  []byte
		want     types.Format
	}{
		{"sniffed text", "", text, types.FormatText},
		{"declared text", "text/plain", text, types.FormatText},
		{"sniffed html", "", html, types.FormatHTML},
		{"sniffed pdf", "", pdfMagic, types.FormatPDF},
		{"declared text but pdf bytes", "text/plain", pdfMagic, types.FormatPDF},
		{"declared pdf but text bytes", "application/pdf", text, types.FormatText},
		{"declared docx", "resume.docx", docxBytes, types.FormatDOCX},
		{"sniffed docx", "", docxBytes, types.FormatDOCX},
		{"unknown binary", "", []byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0x00}, types.FormatUnknown},
		{"declared pdf binary", "pdf", []byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0x00}, types.FormatPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.declared, tt.content))
		})
	}
}
