package assets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsElapsed(t *testing.T) {
	acquired := date(2023, time.January, 15)
	assert.Equal(t, 0, MonthsElapsed(acquired, date(2023, time.February, 14)))
	assert.Equal(t, 1, MonthsElapsed(acquired, date(2023, time.February, 15)))
	assert.Equal(t, 12, MonthsElapsed(acquired, date(2024, time.January, 15)))
	assert.Equal(t, 0, MonthsElapsed(acquired, date(2022, time.December, 1)))
}

func TestDepreciateStraightLine(t *testing.T) {
	a := Asset{Cost: 12_000_000, Salvage: 0, UsefulLife: 48, AcquiredOn: date(2023, time.January, 1)}

	got := Depreciate(a, date(2024, time.January, 1))
	assert.InDelta(t, 3_000_000, got.Accumulated, 0.001)
	assert.InDelta(t, 9_000_000, got.BookValue, 0.001)

	got = Depreciate(a, date(2030, time.January, 1))
	assert.InDelta(t, 12_000_000, got.Accumulated, 0.001)
	assert.InDelta(t, 0, got.BookValue, 0.001)
}

func TestDepreciateStopsAtSalvage(t *testing.T) {
	a := Asset{Cost: 10_000, Salvage: 1_000, UsefulLife: 36, AcquiredOn: date(2020, time.March, 10)}
	got := Depreciate(a, date(2024, time.March, 10))
	assert.InDelta(t, 9_000, got.Accumulated, 0.001)
	assert.InDelta(t, 1_000, got.BookValue, 0.001)
}

func TestDepreciateWithoutUsefulLife(t *testing.T) {
	got := Depreciate(Asset{Cost: 500}, date(2024, time.January, 1))
	assert.Zero(t, got.Accumulated)
	assert.Equal(t, 500.0, got.BookValue)
}

type stubRepo []Asset

func (s stubRepo) List(context.Context) ([]Asset, error) { return append([]Asset(nil), s...), nil }
func (s stubRepo) Delete(context.Context, int64) error    { return nil }

func TestResourceShowsBookValue(t *testing.T) {
	repo := stubRepo{{ID: 1, Code: "FA-1", Name: "Laptop", Cost: 24_000_000, UsefulLife: 24, AcquiredOn: date(2024, time.January, 1), Status: "active"}}
	svc := NewService(repo)
	svc.now = func() time.Time { return date(2024, time.July, 1) }
	res := Resource(repo, svc, listing.Deps{})

	rows, err := res.Load(context.Background())
	require.NoError(t, err)
	tbl, err := datatable.New(res.ColumnSet(), rows)
	require.NoError(t, err)
	require.NoError(t, tbl.SetFilter("bookValue", datatable.FilterValue{Min: "17000000", Max: "19000000"}))
	filtered := tbl.FilteredRows()
	require.Len(t, filtered, 1)
	v, ok := datatable.Lookup(filtered[0], "accumulatedDepreciation")
	require.True(t, ok)
	assert.InDelta(t, 6_000_000, v, 0.001)
}
