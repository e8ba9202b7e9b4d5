package shared

import (
	"context"
	"log/slog"
)

// Auditor records audit entries.
type Auditor interface {
	Record(ctx context.Context, log AuditLog) error
}

// Invalidator drops derived read models after a committed write.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// CommitCounter counts committed writes per action.
type CommitCounter interface {
	CountCommit(action string)
}

// CommitHooks runs the side effects that follow a committed write. Failures
// are logged and never reach the caller: the write itself already succeeded.
type CommitHooks struct {
	Audit   Auditor
	Cache   Invalidator
	Metrics CommitCounter
	Logger  *slog.Logger
}

// Committed records the audit entry, counts the commit and invalidates
// cached read models.
func (h CommitHooks) Committed(ctx context.Context, entry AuditLog) {
	if h.Metrics != nil {
		h.Metrics.CountCommit(entry.Action)
	}
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if h.Audit != nil {
		if err := h.Audit.Record(ctx, entry); err != nil {
			logger.Warn("audit record failed", slog.String("action", entry.Action), slog.String("entity_id", entry.EntityID), slog.Any("error", err))
		}
	}
	if h.Cache != nil {
		if err := h.Cache.Bump(ctx); err != nil {
			logger.Warn("cache bump failed", slog.String("action", entry.Action), slog.Any("error", err))
		}
	}
}
