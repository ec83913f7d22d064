package assets

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Asset, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Asset, error) {
	rows, err := r.db.Query(ctx, `SELECT a.id, a.code, a.name, COALESCE(c.name, ''), a.acquired_on, a.cost::float8,
		a.salvage_value::float8, a.useful_life_months, a.status
		FROM fixed_assets a
		LEFT JOIN categories c ON c.id = a.category_id
		ORDER BY a.acquired_on DESC, a.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Category, &a.AcquiredOn, &a.Cost, &a.Salvage, &a.UsefulLife, &a.Status); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM fixed_assets WHERE id = $1`, id)
	if err != nil {
		return shared.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
