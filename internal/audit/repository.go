package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository reads audit_logs from Postgres.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the audit reader.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const selectEntries = `SELECT id, actor_id, action, entity, entity_id, meta, occurred_at FROM audit_logs`

// Window returns limit entries after offset.
func (r *PGRepository) Window(ctx context.Context, filters TimelineFilters, offset, limit int) ([]Entry, error) {
	where, args := buildWhere(filters)
	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d", selectEntries, where, len(args)-1, len(args))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: query timeline: %w", err)
	}
	return pgx.CollectRows(rows, scanEntry)
}

func scanEntry(row pgx.CollectableRow) (Entry, error) {
	var (
		e    Entry
		meta []byte
	)
	if err := row.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &meta, &e.At); err != nil {
		return Entry{}, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &e.Meta); err != nil {
			return Entry{}, fmt.Errorf("audit: decode meta for %d: %w", e.ID, err)
		}
	}
	return e, nil
}

func buildWhere(f TimelineFilters) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if !f.From.IsZero() {
		add("occurred_at >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("occurred_at < $%d", f.To)
	}
	if f.Entity != "" {
		add("entity = $%d", f.Entity)
	}
	if f.EntityID != "" {
		add("entity_id = $%d", f.EntityID)
	}
	if f.Action != "" {
		add("action = $%d", f.Action)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
