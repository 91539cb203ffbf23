package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-screener/internal/types"
)

// RecordAuditEvent appends an audit event. Events are immutable; a repeated ID is ignored.
func (db *DB) RecordAuditEvent(ctx context.Context, e types.AuditEvent) error {
	metadata, err := marshalMetadata(e.Metadata)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO audit_events (id, event_type, severity, action, actor_id, request_id, success,
			error_code, message, document_id, requirement_id, score, metadata, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (id) DO NOTHING`,
		e.ID, string(e.Type), string(e.Severity), e.Action, e.ActorID, e.RequestID, e.Success,
		e.ErrorCode, e.Message, e.Record.DocumentID, e.Record.RequirementID, e.Record.Score,
		metadata, e.Record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit event %s: %w", e.ID, err)
	}
	return nil
}

// ListAuditEvents returns the events recorded for a document, oldest first
func (db *DB) ListAuditEvents(ctx context.Context, documentID string) ([]types.AuditEvent, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, event_type, severity, action, actor_id, request_id, success,
			error_code, message, document_id, requirement_id, score, metadata, occurred_at
		 FROM audit_events
		 WHERE document_id = $1
		 ORDER BY occurred_at, id`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []types.AuditEvent
	for rows.Next() {
		var e types.AuditEvent
		var eventType, severity string
		var metadata []byte
		if err := rows.Scan(&e.ID, &eventType, &severity, &e.Action, &e.ActorID, &e.RequestID, &e.Success,
			&e.ErrorCode, &e.Message, &e.Record.DocumentID, &e.Record.RequirementID, &e.Record.Score,
			&metadata, &e.Record.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		e.Type = types.AuditEventType(eventType)
		e.Severity = types.AuditSeverity(severity)
		if e.Metadata, err = unmarshalMetadata(metadata); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit events: %w", err)
	}
	return events, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit metadata: %w", err)
	}
	return data, nil
}

func unmarshalMetadata(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var metadata map[string]any
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit metadata: %w", err)
	}
	if len(metadata) == 0 {
		return nil, nil
	}
	return metadata, nil
}
