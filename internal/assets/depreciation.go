package assets

import (
	"math"
	"time"
)

// MonthsElapsed counts the whole months between acquired and asOf.
func MonthsElapsed(acquired, asOf time.Time) int {
	if asOf.Before(acquired) {
		return 0
	}
	months := (asOf.Year()-acquired.Year())*12 + int(asOf.Month()-acquired.Month())
	if asOf.Day() < acquired.Day() {
		months--
	}
	return max(months, 0)
}

// Depreciate fills Accumulated and BookValue as of asOf. Depreciation stops
// once UsefulLife months have passed.
func Depreciate(a Asset, asOf time.Time) Asset {
	base := a.Cost - a.Salvage
	if a.UsefulLife <= 0 || base <= 0 {
		a.Accumulated = 0
		a.BookValue = a.Cost
		return a
	}
	months := min(MonthsElapsed(a.AcquiredOn, asOf), a.UsefulLife)
	a.Accumulated = math.Round(base/float64(a.UsefulLife)*float64(months)*100) / 100
	if months == a.UsefulLife {
		a.Accumulated = base
	}
	a.BookValue = a.Cost - a.Accumulated
	return a
}
