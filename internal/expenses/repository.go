package expenses

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Expense, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Expense, error) {
	rows, err := r.db.Query(ctx, `SELECT e.id, e.reference, COALESCE(c.id, 0), COALESCE(c.name, ''),
		COALESCE(e.description, ''), e.amount::float8, e.status, e.spent_on
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		ORDER BY e.spent_on DESC, e.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Reference, &e.Category.ID, &e.Category.Name, &e.Description, &e.Amount, &e.Status, &e.SpentOn); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// Delete removes an expense that has not been paid yet.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND status <> 'paid'`, id)
	if err != nil {
		return shared.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM expenses WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return shared.ErrInvalidState
		}
		return shared.ErrNotFound
	}
	return nil
}
