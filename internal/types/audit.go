// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// AuditEventType names the kind of audit event emitted by screening
type AuditEventType string

// Audit event types
const (
	AuditScreeningCompleted AuditEventType = "screening.completed"
	AuditScreeningFailed    AuditEventType = "screening.failed"
)

// AuditSeverity ranks how much attention an audit event needs
type AuditSeverity string

// Audit severities
const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

// Screening status values stored with persisted results
const (
	StatusEvaluated = "evaluated"
	StatusRejected  = "rejected"
	StatusFailed    = "failed"
)

// PersistablePayload is the record handed to the results repository
type PersistablePayload struct {
	ResultID              string          `json:"result_id"`
	DocumentID            string          `json:"document_id"`
	ContentHash           string          `json:"content_hash,omitempty"`
	RequirementID         string          `json:"requirement_id"`
	EvaluatorID           string          `json:"evaluator_id,omitempty"`
	Strategy              ScoringStrategy `json:"strategy"`
	OverallScore          int             `json:"overall_score"`
	SkillScore            float64         `json:"skill_score"`
	ExperienceScore       float64         `json:"experience_score"`
	EducationScore        float64         `json:"education_score"`
	MatchedSkills         []string        `json:"matched_skills"`
	MissingSkills         []string        `json:"missing_skills"`
	Strengths             []string        `json:"strengths"`
	Weaknesses            []string        `json:"weaknesses"`
	TotalExperienceMonths int             `json:"total_experience_months"`
	Passed                bool            `json:"passed"`
	Status                string          `json:"status"`
	Explanation           string          `json:"explanation"`
	EvaluatedAt           time.Time       `json:"evaluated_at"`
}

// AuditRecord is the minimal audit fact: when, which document, which requirement, what score
type AuditRecord struct {
	Timestamp     time.Time `json:"timestamp"`
	DocumentID    string    `json:"document_id"`
	RequirementID string    `json:"requirement_id"`
	Score         int       `json:"score"`
}

// AuditEvent is handed to the audit-log collaborator. It is never stored by the core.
type AuditEvent struct {
	ID        string         `json:"id"`
	Type      AuditEventType `json:"event_type"`
	Severity  AuditSeverity  `json:"severity"`
	Action    string         `json:"action"`
	ActorID   string         `json:"actor_id,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Success   bool           `json:"success"`
	ErrorCode string         `json:"error_code,omitempty"`
	Message   string         `json:"message,omitempty"`
	Record    AuditRecord    `json:"record"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
