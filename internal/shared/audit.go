package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLog is one row of audit_logs. A zero ActorID is stored as NULL and
// shown as the system actor.
type AuditLog struct {
	ActorID  int64
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
	At       time.Time
}

func (l AuditLog) validate() error {
	var missing []error
	if l.Action == "" {
		missing = append(missing, errors.New("action"))
	}
	if l.Entity == "" {
		missing = append(missing, errors.New("entity"))
	}
	if l.EntityID == "" {
		missing = append(missing, errors.New("entity id"))
	}
	if len(missing) > 0 {
		return fmt.Errorf("audit: missing %w", errors.Join(missing...))
	}
	return nil
}

// AuditLogger appends entries to audit_logs.
type AuditLogger struct {
	pool *pgxpool.Pool
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(pool *pgxpool.Pool) *AuditLogger {
	return &AuditLogger{pool: pool}
}

const insertAudit = `INSERT INTO audit_logs (actor_id, action, entity, entity_id, meta, occurred_at)
VALUES (NULLIF($1, 0), $2, $3, $4, $5, COALESCE($6, NOW()))`

// Record writes entries in one round trip. Nothing is written when any
// entry is incomplete.
func (l *AuditLogger) Record(ctx context.Context, entries ...AuditLog) error {
	if l == nil || l.pool == nil {
		return errors.New("audit: logger not initialised")
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return err
		}
		meta := e.Meta
		if meta == nil {
			meta = map[string]any{}
		}
		raw, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("audit: encode meta: %w", err)
		}
		var at *time.Time
		if !e.At.IsZero() {
			at = &e.At
		}
		batch.Queue(insertAudit, e.ActorID, e.Action, e.Entity, e.EntityID, raw, at)
	}
	if batch.Len() == 0 {
		return nil
	}
	return l.pool.SendBatch(ctx, batch).Close()
}
