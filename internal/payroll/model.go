package payroll

import (
	"strconv"
	"time"
)

const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

// Employee is a person paid through a payroll schedule.
type Employee struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	BaseSalary float64   `json:"baseSalary"`
	HiredOn    time.Time `json:"hiredOn"`
	Status     string    `json:"status"`
}

func (e Employee) RowID() string {
	return strconv.FormatInt(e.ID, 10)
}

// Schedule pays its active employees every Frequency. Employees and Total
// are aggregated over the active members.
type Schedule struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Frequency string     `json:"frequency"`
	Employees int        `json:"employees"`
	Total     float64    `json:"total"`
	NextRun   time.Time  `json:"nextRun"`
	LastRun   *time.Time `json:"lastRun,omitempty"`
	Status    string     `json:"status"`
}

func (s Schedule) RowID() string {
	return strconv.FormatInt(s.ID, 10)
}

// Run is one executed payroll run.
type Run struct {
	ID         int64
	ScheduleID int64
	Employees  int
	Total      float64
	RunAt      time.Time
}

// NextRunAfter returns the next pay date of a schedule that ran at from.
func NextRunAfter(frequency string, from time.Time) time.Time {
	switch frequency {
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return from.AddDate(0, 0, 14)
	default:
		return from.AddDate(0, 1, 0)
	}
}
