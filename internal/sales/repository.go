package sales

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Sale, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const listSalesSQL = `SELECT s.id, s.number, c.id, c.name, s.sale_date, s.quantity::float8, s.unit_price::float8,
	s.discount_percent::float8, s.tax_percent::float8, s.status
FROM sales s
JOIN customers c ON c.id = s.customer_id
ORDER BY s.sale_date DESC, s.id DESC`

func (r *repository) List(ctx context.Context) ([]Sale, error) {
	rows, err := r.db.Query(ctx, listSalesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.Number, &s.Customer.ID, &s.Customer.Name, &s.SaleDate,
			&s.Quantity, &s.UnitPrice, &s.Discount, &s.Tax, &s.Status); err != nil {
			return nil, err
		}
		s.ApplyTotals()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes draft and cancelled sales only.
func (r *repository) Delete(ctx context.Context, id int64) error {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM sales WHERE id = $1`, id).Scan(&status)
	if err != nil {
		return shared.MapPgError(err)
	}
	if status == StatusConfirmed {
		return shared.ErrInvalidState
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id); err != nil {
		return shared.MapPgError(err)
	}
	return nil
}
