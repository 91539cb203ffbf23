package main

import (
	"context"

	"github.com/jonathan/resume-screener/internal/logging"
	"github.com/jonathan/resume-screener/internal/types"
	"go.uber.org/zap"
)

// logSink records results and audit events in the log when no database is configured
type logSink struct {
	logger *zap.Logger
}

func (s *logSink) SaveMatchResult(_ context.Context, p types.PersistablePayload) error {
	s.logger.Debug("match result",
		zap.String("result_id", p.ResultID),
		zap.String("document_id", p.DocumentID),
		zap.String("requirement_id", p.RequirementID),
		zap.Int("overall_score", p.OverallScore),
		zap.String("status", p.Status),
	)
	return nil
}

func (s *logSink) RecordAuditEvent(_ context.Context, e types.AuditEvent) error {
	fields := []zap.Field{
		zap.String("event_id", e.ID),
		zap.String("event_type", string(e.Type)),
		zap.String("severity", string(e.Severity)),
		zap.String("document_id", e.Record.DocumentID),
		zap.String("requirement_id", e.Record.RequirementID),
	}
	if !e.Success {
		fields = append(fields, zap.String("error_code", e.ErrorCode), zap.String("message", logging.Truncate(e.Message, 200)))
		s.logger.Warn("audit", fields...)
		return nil
	}
	s.logger.Debug("audit", append(fields, zap.Int("score", e.Record.Score))...)
	return nil
}
