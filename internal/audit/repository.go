package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Window bounds how many of the latest entries the timeline loads.
const Window = 1000

type Repository interface {
	Timeline(ctx context.Context) ([]Entry, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Timeline(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, occurred_at, COALESCE(actor_id::text, $2), action, entity, entity_id,
		COALESCE(meta->>'request_id', '')
		FROM audit_logs
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1`, Window, SystemActor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.At, &e.Actor, &e.Action, &e.Entity, &e.EntityID, &e.RequestID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
