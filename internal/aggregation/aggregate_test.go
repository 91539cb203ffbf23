package aggregation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)

func sampleResult() types.MatchResult {
	return types.MatchResult{
		ID:            "result-1",
		CandidateID:   "cand-1",
		RequirementID: "req-from-result",
		Strategy:      types.StrategyWeightedLinear,
		OverallScore:  75,
		Subscores:     types.Subscores{Skills: 50, Experience: 100, Education: 100},
		MatchedSkills: []types.MatchedSkill{
			{Name: "Python", Confidence: 1, Weight: 1, Required: true},
		},
		MissingRequiredSkills:  []string{"Rust"},
		MissingPreferredSkills: []string{"Docker"},
		TotalExperienceMonths:  41,
		Passed:                 true,
		Strengths:              []string{"has required skills: Python"},
		Gaps:                   []string{"missing required skills: Rust"},
		Explanation:            "weighted_linear score 75/100",
	}
}

func strPtr(s string) *string { return &s }

func TestAggregate(t *testing.T) {
	c := Context{
		DocumentID:    "doc-1",
		ContentHash:   "abc123",
		RequirementID: "req-1",
		ActorID:       "recruiter-7",
		RequestID:     "request-9",
		Now:           now,
		Contact: &types.Contact{
			Name:  strPtr("Jane Doe"),
			Email: strPtr("jane.doe@example.com"),
			Phone: strPtr("+1 (555) 123-4567"),
		},
		Metadata: map[string]any{"api_key": "k-123", "source": "upload"},
	}

	payload, event := Aggregate(sampleResult(), c)

	assert.Equal(t, "result-1", payload.ResultID)
	assert.Equal(t, "doc-1", payload.DocumentID)
	assert.Equal(t, "abc123", payload.ContentHash)
	assert.Equal(t, "req-1", payload.RequirementID, "context requirement id wins")
	assert.Equal(t, "recruiter-7", payload.EvaluatorID)
	assert.Equal(t, 75, payload.OverallScore)
	assert.Equal(t, 50.0, payload.SkillScore)
	assert.Equal(t, []string{"Python"}, payload.MatchedSkills)
	assert.Equal(t, []string{"Rust", "Docker"}, payload.MissingSkills)
	assert.Equal(t, []string{"missing required skills: Rust"}, payload.Weaknesses)
	assert.Equal(t, types.StatusEvaluated, payload.Status)
	assert.Equal(t, now, payload.EvaluatedAt)

	assert.Equal(t, types.AuditScreeningCompleted, event.Type)
	assert.Equal(t, types.SeverityLow, event.Severity)
	assert.True(t, event.Success)
	assert.Equal(t, ActionScreen, event.Action)
	assert.Equal(t, types.AuditRecord{Timestamp: now, DocumentID: "doc-1", RequirementID: "req-1", Score: 75}, event.Record)
	assert.Equal(t, "request-9", event.RequestID)

	assert.Equal(t, Masked, event.Metadata["api_key"])
	assert.Equal(t, "upload", event.Metadata["source"])
	assert.Equal(t, map[string]string{"name": "J*** D***", "email": "j***@example.com", "phone": "***4567"}, event.Metadata["contact"])

	// The caller's map is not modified
	assert.Equal(t, "k-123", c.Metadata["api_key"])
}

func TestAggregate_Deterministic(t *testing.T) {
	c := Context{DocumentID: "doc-1", RequirementID: "req-1", Now: now}
	p1, e1 := Aggregate(sampleResult(), c)
	p2, e2 := Aggregate(sampleResult(), c)

	assert.Equal(t, p1, p2)
	assert.Equal(t, e1, e2)
	assert.NotEmpty(t, e1.ID)

	c.Now = now.Add(time.Second)
	_, e3 := Aggregate(sampleResult(), c)
	assert.NotEqual(t, e1.ID, e3.ID)
}

func TestAggregate_RejectedStatusAndFallbacks(t *testing.T) {
	r := sampleResult()
	r.Passed = false
	r.Strengths = nil

	payload, event := Aggregate(r, Context{Now: now})
	assert.Equal(t, types.StatusRejected, payload.Status)
	assert.Equal(t, "req-from-result", payload.RequirementID)
	assert.Equal(t, "req-from-result", event.Record.RequirementID)
	assert.NotNil(t, payload.Strengths)
	assert.NotContains(t, event.Metadata, "contact")
}

func TestAggregateFailure(t *testing.T) {
	ing := ingestion.NewIngestor(nil)
	_, corruptErr := ing.IngestBytes(nil, "", "doc-1")
	require.Error(t, corruptErr)

	tests := []struct {
		name     string
		err      error
		code     string
		severity types.AuditSeverity
	}{
		{"corrupt", corruptErr, "corrupt_document", types.SeverityMedium},
		{"wrapped unsupported", fmt.Errorf("screening: %w", ingestion.ErrUnsupportedFormat), "unsupported_format", types.SeverityMedium},
		{"invalid requirement", &types.InvalidRequirementError{Field: "x", Message: "bad"}, CodeInvalidRequirement, types.SeverityHigh},
		{"canceled", fmt.Errorf("batch: %w", context.Canceled), CodeCanceled, types.SeverityLow},
		{"unknown", errors.New("boom"), CodeInternal, types.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := AggregateFailure(tt.err, Context{DocumentID: "doc-1", RequirementID: "req-1", Now: now})
			assert.Equal(t, types.AuditScreeningFailed, event.Type)
			assert.False(t, event.Success)
			assert.Equal(t, tt.code, event.ErrorCode)
			assert.Equal(t, tt.severity, event.Severity)
			assert.Equal(t, tt.err.Error(), event.Message)
			assert.Equal(t, 0, event.Record.Score)
			assert.Equal(t, "doc-1", event.Record.DocumentID)
		})
	}
}

func TestMaskSensitive(t *testing.T) {
	input := map[string]any{
		"user_password": "hunter2",
		"nested": map[string]any{
			"auth_token": "t",
			"keep":       1,
		},
		"list":            []any{map[string]any{"client_secret": "s"}, "plain"},
		"candidate_email": "a@b.co",
	}

	masked := MaskSensitive(input)
	assert.Equal(t, Masked, masked["user_password"])
	assert.Equal(t, Masked, masked["candidate_email"])
	assert.Equal(t, map[string]any{"auth_token": Masked, "keep": 1}, masked["nested"])
	assert.Equal(t, []any{map[string]any{"client_secret": Masked}, "plain"}, masked["list"])
	assert.Nil(t, MaskSensitive(nil))
}

func TestMaskContact(t *testing.T) {
	assert.Empty(t, MaskContact(types.Contact{}))
	assert.Equal(t, map[string]string{"email": Masked, "phone": "***"}, MaskContact(types.Contact{Email: strPtr("not-an-email"), Phone: strPtr("123")}))
}
