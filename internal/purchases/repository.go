package purchases

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Purchase, error)
	Delete(ctx context.Context, id int64) error
	MarkPaid(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Purchase, error) {
	rows, err := r.db.Query(ctx, `SELECT p.id, p.number, s.id, s.name, p.order_date, p.due_date, p.total::float8, p.status, p.paid_at
		FROM purchases p
		JOIN suppliers s ON s.id = p.supplier_id
		ORDER BY p.order_date DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.Number, &p.Supplier.ID, &p.Supplier.Name, &p.OrderDate, &p.DueDate, &p.Total, &p.Status, &p.PaidAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.withStatus(ctx, id, func(tx pgx.Tx, status string) error {
		if status == StatusPaid {
			return shared.ErrInvalidState
		}
		_, err := tx.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
		return shared.MapPgError(err)
	})
}

// MarkPaid moves an approved purchase to paid.
func (r *repository) MarkPaid(ctx context.Context, id int64) error {
	return r.withStatus(ctx, id, func(tx pgx.Tx, status string) error {
		if status != StatusApproved {
			return fmt.Errorf("purchase %d is %s: %w", id, status, shared.ErrInvalidState)
		}
		_, err := tx.Exec(ctx, `UPDATE purchases SET status = $2, paid_at = NOW(), updated_at = NOW() WHERE id = $1`, id, StatusPaid)
		return err
	})
}

// withStatus locks the purchase row and hands its status to fn inside one
// transaction.
func (r *repository) withStatus(ctx context.Context, id int64, fn func(tx pgx.Tx, status string) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	if err := tx.QueryRow(ctx, `SELECT status FROM purchases WHERE id = $1 FOR UPDATE`, id).Scan(&status); err != nil {
		return shared.MapPgError(err)
	}
	if err := fn(tx, status); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
