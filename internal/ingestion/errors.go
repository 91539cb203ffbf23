package ingestion

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-screener/internal/types"
)

// Sentinel errors for errors.Is checks
var (
	// ErrUnsupportedFormat means no decoder matches the declared or sniffed type
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrCorruptDocument means the decoder could not produce any text
	ErrCorruptDocument = errors.New("corrupt document")
)

// IngestError reports why a document could not be turned into text.
// Kind is ErrUnsupportedFormat or ErrCorruptDocument.
type IngestError struct {
	Kind     error
	SourceID string
	Format   types.Format
	Message  string
	Cause    error
}

func (e *IngestError) Error() string {
	msg := fmt.Sprintf("%v: %s", e.Kind, e.Message)
	if e.SourceID != "" {
		msg = fmt.Sprintf("%s (document %s)", msg, e.SourceID)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Is matches the error kind sentinel
func (e *IngestError) Is(target error) bool {
	return target == e.Kind
}

func (e *IngestError) Unwrap() error {
	return e.Cause
}

// Code returns a stable machine-readable code for the error kind
func (e *IngestError) Code() string {
	switch e.Kind {
	case ErrUnsupportedFormat:
		return "unsupported_format"
	case ErrCorruptDocument:
		return "corrupt_document"
	default:
		return "ingest_error"
	}
}

func corrupt(doc types.Document, format types.Format, message string, cause error) *IngestError {
	return &IngestError{Kind: ErrCorruptDocument, SourceID: doc.SourceID, Format: format, Message: message, Cause: cause}
}

func unsupported(doc types.Document, message string) *IngestError {
	return &IngestError{Kind: ErrUnsupportedFormat, SourceID: doc.SourceID, Format: types.FormatUnknown, Message: message}
}
