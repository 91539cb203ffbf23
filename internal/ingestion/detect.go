package ingestion

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/resume-screener/internal/types"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZIP  = "application/zip"
	mimeHTML = "text/html"
	mimeText = "text/plain"
)

// formatFromHint maps a declared MIME type, file name, extension or bare format name to a Format
func formatFromHint(hint string) types.Format {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return types.FormatUnknown
	}

	if mediaType, _, err := mime.ParseMediaType(hint); err == nil && strings.Contains(mediaType, "/") {
		switch mediaType {
		case mimePDF:
			return types.FormatPDF
		case mimeDOCX:
			return types.FormatDOCX
		case mimeHTML, "application/xhtml+xml":
			return types.FormatHTML
		case mimeText, "text/markdown":
			return types.FormatText
		}
		return types.FormatUnknown
	}

	ext := hint
	if strings.Contains(hint, ".") {
		ext = filepath.Ext(hint)
	}
	switch strings.TrimPrefix(ext, ".") {
	case "pdf":
		return types.FormatPDF
	case "docx":
		return types.FormatDOCX
	case "html", "htm", "xhtml":
		return types.FormatHTML
	case "txt", "text", "md", "markdown":
		return types.FormatText
	}
	return types.FormatUnknown
}

// sniffFormat detects the format from magic bytes
func sniffFormat(content []byte) types.Format {
	detected := mimetype.Detect(content)
	switch {
	case detected.Is(mimePDF):
		return types.FormatPDF
	case detected.Is(mimeDOCX):
		return types.FormatDOCX
	case detected.Is(mimeHTML):
		return types.FormatHTML
	case detected.Is(mimeText):
		return types.FormatText
	}
	// Text subtypes (csv, json, markdown) are still readable as plain text
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(mimeText) {
			return types.FormatText
		}
	}
	return types.FormatUnknown
}

// isZip reports whether content is a generic ZIP container (a DOCX missing the usual entry order)
func isZip(content []byte) bool {
	for m := mimetype.Detect(content); m != nil; m = m.Parent() {
		if m.Is(mimeZIP) {
			return true
		}
	}
	return false
}

// consistent reports whether a declared format agrees with the sniffed bytes
func consistent(declared, sniffed types.Format, content []byte) bool {
	if declared == sniffed {
		return true
	}
	switch declared {
	case types.FormatDOCX:
		return isZip(content)
	case types.FormatText:
		// Markdown or HTML-looking text declared as plain text is still plain text
		return sniffed == types.FormatHTML
	}
	return false
}

// DetectFormat picks the decoder for a document: the declared hint wins when it agrees
// with the content, otherwise the sniffed type is used.
func DetectFormat(declared string, content []byte) types.Format {
	hinted := formatFromHint(declared)
	sniffed := sniffFormat(content)

	if hinted != types.FormatUnknown && consistent(hinted, sniffed, content) {
		return hinted
	}
	if sniffed != types.FormatUnknown {
		return sniffed
	}
	return hinted
}
