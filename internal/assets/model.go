package assets

import (
	"strconv"
	"time"
)

// Asset is a fixed asset depreciated straight-line over UsefulLife months
// down to its Salvage value.
type Asset struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	AcquiredOn  time.Time `json:"acquiredOn"`
	Cost        float64   `json:"cost"`
	Salvage     float64   `json:"salvage"`
	UsefulLife  int       `json:"usefulLife"`
	Accumulated float64   `json:"accumulatedDepreciation"`
	BookValue   float64   `json:"bookValue"`
	Status      string    `json:"status"`
}

func (a Asset) RowID() string {
	return strconv.FormatInt(a.ID, 10)
}
