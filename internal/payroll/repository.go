package payroll

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type Repository interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	ListSchedules(ctx context.Context) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, id int64) error
	ScheduleStatus(ctx context.Context, id int64) (string, error)
	RecordRun(ctx context.Context, scheduleID int64, at time.Time) (Run, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, name, COALESCE(position, ''), COALESCE(department, ''), base_salary::float8, hired_on, status
		FROM employees ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Code, &e.Name, &e.Position, &e.Department, &e.BaseSalary, &e.HiredOn, &e.Status); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) DeleteEmployee(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return shared.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

const listSchedulesSQL = `SELECT s.id, s.name, s.frequency,
	COUNT(e.id) FILTER (WHERE e.status = 'active'),
	COALESCE(SUM(e.base_salary) FILTER (WHERE e.status = 'active'), 0)::float8,
	s.next_run, s.last_run, s.status
FROM payroll_schedules s
LEFT JOIN employees e ON e.schedule_id = s.id
GROUP BY s.id
ORDER BY s.next_run, s.id`

func (r *repository) ListSchedules(ctx context.Context) ([]Schedule, error) {
	rows, err := r.db.Query(ctx, listSchedulesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Schedule
	for rows.Next() {
		var s Schedule
		if err := rows.Scan(&s.ID, &s.Name, &s.Frequency, &s.Employees, &s.Total, &s.NextRun, &s.LastRun, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) DeleteSchedule(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payroll_schedules WHERE id = $1`, id)
	if err != nil {
		return shared.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) ScheduleStatus(ctx context.Context, id int64) (string, error) {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM payroll_schedules WHERE id = $1`, id).Scan(&status)
	return status, shared.MapPgError(err)
}

// RecordRun snapshots the active members of a schedule into payroll_runs and
// advances the schedule.
func (r *repository) RecordRun(ctx context.Context, scheduleID int64, at time.Time) (Run, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Run{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var frequency, status string
	if err := tx.QueryRow(ctx, `SELECT frequency, status FROM payroll_schedules WHERE id = $1 FOR UPDATE`, scheduleID).Scan(&frequency, &status); err != nil {
		return Run{}, shared.MapPgError(err)
	}
	if status != "active" {
		return Run{}, shared.ErrInvalidState
	}

	run := Run{ScheduleID: scheduleID, RunAt: at}
	if err := tx.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(base_salary), 0)::float8 FROM employees
		WHERE schedule_id = $1 AND status = 'active'`, scheduleID).Scan(&run.Employees, &run.Total); err != nil {
		return Run{}, err
	}
	if err := tx.QueryRow(ctx, `INSERT INTO payroll_runs (schedule_id, employees, total, run_at)
		VALUES ($1, $2, $3, $4) RETURNING id`, scheduleID, run.Employees, run.Total, at).Scan(&run.ID); err != nil {
		return Run{}, err
	}
	if _, err := tx.Exec(ctx, `UPDATE payroll_schedules SET last_run = $2, next_run = $3, updated_at = NOW() WHERE id = $1`,
		scheduleID, at, NextRunAfter(frequency, at)); err != nil {
		return Run{}, err
	}
	return run, tx.Commit(ctx)
}
