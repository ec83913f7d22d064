package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type memRepo struct {
	schedules map[int64]*Schedule
	runs      []Run
}

func (m *memRepo) ListEmployees(context.Context) ([]Employee, error) { return nil, nil }
func (m *memRepo) DeleteEmployee(context.Context, int64) error         { return nil }
func (m *memRepo) DeleteSchedule(context.Context, int64) error         { return nil }

func (m *memRepo) ListSchedules(context.Context) ([]Schedule, error) {
	var out []Schedule
	for _, s := range m.schedules {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memRepo) ScheduleStatus(_ context.Context, id int64) (string, error) {
	s, ok := m.schedules[id]
	if !ok {
		return "", shared.ErrNotFound
	}
	return s.Status, nil
}

func (m *memRepo) RecordRun(_ context.Context, id int64, at time.Time) (Run, error) {
	s, ok := m.schedules[id]
	if !ok {
		return Run{}, shared.ErrNotFound
	}
	run := Run{ID: int64(len(m.runs) + 1), ScheduleID: id, Employees: s.Employees, Total: s.Total, RunAt: at}
	s.LastRun = &at
	s.NextRun = NextRunAfter(s.Frequency, at)
	m.runs = append(m.runs, run)
	return run, nil
}

type memQueue struct{ ids []int64 }

func (q *memQueue) EnqueuePayrollRun(_ context.Context, id int64) error {
	q.ids = append(q.ids, id)
	return nil
}

func TestNextRunAfter(t *testing.T) {
	from := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 7, 0, 0, 0, 0, time.UTC), NextRunAfter(FrequencyWeekly, from))
	assert.Equal(t, time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC), NextRunAfter(FrequencyBiweekly, from))
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), NextRunAfter(FrequencyMonthly, from))
}

func TestRunActionQueuesActiveSchedules(t *testing.T) {
	repo := &memRepo{schedules: map[int64]*Schedule{
		1: {ID: 1, Name: "Monthly staff", Frequency: FrequencyMonthly, Status: "active"},
		2: {ID: 2, Name: "Contractors", Frequency: FrequencyWeekly, Status: "paused"},
	}}
	queue := &memQueue{}
	res := SchedulesResource(repo, NewService(repo, queue), listing.Deps{})

	err := res.Actions.Invoke(context.Background(), datatable.ActionRun, "1", false)
	assert.ErrorIs(t, err, datatable.ErrConfirmationRequired)

	require.NoError(t, res.Actions.Invoke(context.Background(), datatable.ActionRun, "1", true))
	assert.Equal(t, []int64{1}, queue.ids)

	err = res.Actions.Invoke(context.Background(), datatable.ActionRun, "2", true)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, []int64{1}, queue.ids)
}

func TestExecuteRecordsRun(t *testing.T) {
	repo := &memRepo{schedules: map[int64]*Schedule{
		1: {ID: 1, Frequency: FrequencyWeekly, Employees: 3, Total: 15_000_000, Status: "active"},
	}}
	svc := NewService(repo, nil)
	at := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	run, err := svc.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, run.Employees)
	assert.Equal(t, at.AddDate(0, 0, 7), repo.schedules[1].NextRun)
}

func TestScheduleColumnsLeaveLastRunBlank(t *testing.T) {
	rows := []datatable.Row{Schedule{ID: 1, Name: "Never run", Frequency: FrequencyMonthly, Status: "active"}}
	tbl, err := datatable.New(ScheduleColumns(nil), rows)
	require.NoError(t, err)
	v := tbl.View(datatable.ViewOptions{})
	require.Len(t, v.Rows, 1)
	for _, c := range v.Rows[0].Cells {
		if c.Key == "lastRun" {
			assert.Empty(t, c.Text)
		}
	}
}
