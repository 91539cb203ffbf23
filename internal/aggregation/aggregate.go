// Package aggregation turns match results into the payloads consumed by the results
// repository and the audit log. It performs no I/O.
package aggregation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/types"
)

// ActionScreen is the audit action recorded for screening events
const ActionScreen = "screen_resume"

// Error codes for failures that do not carry their own
const (
	CodeInvalidRequirement = "invalid_requirement"
	CodeCanceled           = "canceled"
	CodeInternal           = "internal_error"
)

var eventNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("resume-screener/audit-event"))

// Context carries the request facts the result itself does not know about.
// Now supplies every timestamp so that aggregation stays pure.
type Context struct {
	DocumentID    string
	ContentHash   string
	RequirementID string
	ActorID       string
	RequestID     string
	Now           time.Time
	// Contact is copied into audit metadata in masked form
	Contact *types.Contact
	// Metadata is merged into the audit event after sensitive keys are masked
	Metadata map[string]any
}

// Aggregate builds the repository payload and the audit event for a completed match
func Aggregate(result types.MatchResult, c Context) (types.PersistablePayload, types.AuditEvent) {
	requirementID := c.RequirementID
	if requirementID == "" {
		requirementID = result.RequirementID
	}

	status := types.StatusRejected
	if result.Passed {
		status = types.StatusEvaluated
	}

	matched := make([]string, 0, len(result.MatchedSkills))
	for _, s := range result.MatchedSkills {
		matched = append(matched, s.Name)
	}
	missing := make([]string, 0, len(result.MissingRequiredSkills)+len(result.MissingPreferredSkills))
	missing = append(missing, result.MissingRequiredSkills...)
	missing = append(missing, result.MissingPreferredSkills...)

	payload := types.PersistablePayload{
		ResultID:              result.ID,
		DocumentID:            c.DocumentID,
		ContentHash:           c.ContentHash,
		RequirementID:         requirementID,
		EvaluatorID:           c.ActorID,
		Strategy:              result.Strategy,
		OverallScore:          result.OverallScore,
		SkillScore:            result.Subscores.Skills,
		ExperienceScore:       result.Subscores.Experience,
		EducationScore:        result.Subscores.Education,
		MatchedSkills:         matched,
		MissingSkills:         missing,
		Strengths:             nonNil(result.Strengths),
		Weaknesses:            nonNil(result.Gaps),
		TotalExperienceMonths: result.TotalExperienceMonths,
		Passed:                result.Passed,
		Status:                status,
		Explanation:           result.Explanation,
		EvaluatedAt:           c.Now.UTC(),
	}

	metadata := baseMetadata(c)
	metadata["strategy"] = string(result.Strategy)
	metadata["passed"] = result.Passed
	metadata["matched_skills"] = len(matched)
	metadata["missing_required_skills"] = len(result.MissingRequiredSkills)

	event := types.AuditEvent{
		ID:        eventID(types.AuditScreeningCompleted, result.ID, c),
		Type:      types.AuditScreeningCompleted,
		Severity:  types.SeverityLow,
		Action:    ActionScreen,
		ActorID:   c.ActorID,
		RequestID: c.RequestID,
		Success:   true,
		Message:   fmt.Sprintf("scored %d/100 against %s", result.OverallScore, displayID(requirementID)),
		Record: types.AuditRecord{
			Timestamp:     c.Now.UTC(),
			DocumentID:    c.DocumentID,
			RequirementID: requirementID,
			Score:         result.OverallScore,
		},
		Metadata: metadata,
	}

	return payload, event
}

// AggregateFailure builds the audit event for a screening that did not produce a result.
// The record score is zero.
func AggregateFailure(err error, c Context) types.AuditEvent {
	code, severity := classify(err)

	metadata := baseMetadata(c)
	message := ""
	if err != nil {
		message = err.Error()
	}

	return types.AuditEvent{
		ID:        eventID(types.AuditScreeningFailed, code, c),
		Type:      types.AuditScreeningFailed,
		Severity:  severity,
		Action:    ActionScreen,
		ActorID:   c.ActorID,
		RequestID: c.RequestID,
		Success:   false,
		ErrorCode: code,
		Message:   message,
		Record: types.AuditRecord{
			Timestamp:     c.Now.UTC(),
			DocumentID:    c.DocumentID,
			RequirementID: c.RequirementID,
		},
		Metadata: metadata,
	}
}

// classify maps an error to a stable code and severity.
// Ingestion failures are medium; invalid requirements and unknown failures are high.
func classify(err error) (string, types.AuditSeverity) {
	var coded interface{ Code() string }
	switch {
	case errors.Is(err, ingestion.ErrUnsupportedFormat), errors.Is(err, ingestion.ErrCorruptDocument):
		if errors.As(err, &coded) {
			return coded.Code(), types.SeverityMedium
		}
		if errors.Is(err, ingestion.ErrUnsupportedFormat) {
			return "unsupported_format", types.SeverityMedium
		}
		return "corrupt_document", types.SeverityMedium
	case errors.Is(err, types.ErrInvalidRequirement):
		return CodeInvalidRequirement, types.SeverityHigh
	case isCanceled(err):
		return CodeCanceled, types.SeverityLow
	default:
		return CodeInternal, types.SeverityHigh
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func baseMetadata(c Context) map[string]any {
	metadata := MaskSensitive(c.Metadata)
	if metadata == nil {
		metadata = make(map[string]any)
	}
	if c.ContentHash != "" {
		metadata["content_hash"] = c.ContentHash
	}
	if c.Contact != nil {
		metadata["contact"] = MaskContact(*c.Contact)
	}
	return metadata
}

func eventID(eventType types.AuditEventType, subject string, c Context) string {
	name := strings.Join([]string{
		string(eventType), subject, c.DocumentID, c.RequirementID, c.RequestID,
		c.Now.UTC().Format(time.RFC3339Nano),
	}, "\x00")
	return uuid.NewSHA1(eventNamespace, []byte(name)).String()
}

func displayID(id string) string {
	if id == "" {
		return "unnamed requirement"
	}
	return "requirement " + id
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
