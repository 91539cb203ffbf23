package ingestion

import (
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/jonathan/resume-screener/internal/vocabulary"
)

// Ingestor turns raw documents into NormalizedText. It holds no mutable state and
// is safe for concurrent use.
type Ingestor struct {
	vocab    *vocabulary.Vocabulary
	decoders map[types.Format]decodeFunc
}

// NewIngestor creates an Ingestor that tags sections using vocab
func NewIngestor(vocab *vocabulary.Vocabulary) *Ingestor {
	return &Ingestor{
		vocab: vocab,
		decoders: map[types.Format]decodeFunc{
			types.FormatPDF:  decodePDF,
			types.FormatDOCX: decodeDOCX,
			types.FormatHTML: decodeHTML,
			types.FormatText: decodeText,
		},
	}
}

// Ingest decodes, cleans and section-tags a document.
// It returns an *IngestError matching ErrUnsupportedFormat or ErrCorruptDocument;
// a document with no extractable text is an error, never an empty result.
func (i *Ingestor) Ingest(doc types.Document) (*types.NormalizedText, error) {
	if len(doc.Content) == 0 {
		return nil, corrupt(doc, formatFromHint(doc.DeclaredFormat), "document is empty", nil)
	}

	format := DetectFormat(doc.DeclaredFormat, doc.Content)
	decode, ok := i.decoders[format]
	if !ok {
		return nil, unsupported(doc, "no decoder for declared type "+quoteOrNone(doc.DeclaredFormat))
	}

	raw, err := decode(doc.Content)
	if err != nil {
		return nil, corrupt(doc, format, "decoder failed", err)
	}

	lines := CleanLines(raw)
	if len(lines) == 0 {
		return nil, corrupt(doc, format, "no extractable text", nil)
	}

	return &types.NormalizedText{
		SourceID: doc.SourceID,
		Format:   format,
		Lines:    tagSections(lines, i.vocab),
	}, nil
}

// IngestBytes is a convenience wrapper around Ingest
func (i *Ingestor) IngestBytes(content []byte, declaredFormat, sourceID string) (*types.NormalizedText, error) {
	return i.Ingest(types.Document{SourceID: sourceID, DeclaredFormat: declaredFormat, Content: content})
}

func quoteOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return `"` + s + `"`
}
