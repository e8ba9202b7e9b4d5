package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carpetdist/carpet-erp/internal/platform/db"
)

// AuditLog is one committed write. ActorID stays 0 while the API is
// unauthenticated.
type AuditLog struct {
	ActorID  int64
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
	At       time.Time
}

func (l AuditLog) validate() error {
	switch {
	case l.Action == "":
		return Validationf("audit log action is required")
	case l.Entity == "":
		return Validationf("audit log entity is required")
	case l.EntityID == "":
		return Validationf("audit log entity id is required")
	}
	return nil
}

const insertAuditLog = `INSERT INTO audit_logs (actor_id, action, entity, entity_id, meta, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// AuditLogger appends rows to audit_logs.
type AuditLogger struct {
	db  db.DBTX
	now func() time.Time
}

// NewAuditLogger returns a logger writing through conn.
func NewAuditLogger(conn db.DBTX) *AuditLogger {
	return &AuditLogger{db: conn, now: time.Now}
}

// Record persists entry. Empty meta is stored as NULL; a zero At is stamped
// with the current time.
func (l *AuditLogger) Record(ctx context.Context, entry AuditLog) error {
	if l == nil || l.db == nil {
		return fmt.Errorf("audit logger not initialised")
	}
	if err := entry.validate(); err != nil {
		return err
	}
	var meta []byte
	if len(entry.Meta) > 0 {
		raw, err := json.Marshal(entry.Meta)
		if err != nil {
			return fmt.Errorf("audit: encode meta for %s %s: %w", entry.Entity, entry.EntityID, err)
		}
		meta = raw
	}
	at := entry.At
	if at.IsZero() {
		at = l.now()
	}
	if _, err := l.db.Exec(ctx, insertAuditLog, entry.ActorID, entry.Action, entry.Entity, entry.EntityID, meta, at); err != nil {
		return fmt.Errorf("audit: insert %s: %w", entry.Action, err)
	}
	return nil
}
