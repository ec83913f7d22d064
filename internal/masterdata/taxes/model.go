package taxes

import "strconv"

// Tax is a tax rate applied to sales and purchases. Rate is a percentage.
type Tax struct {
	ID     int64   `json:"id"`
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Status string  `json:"status"`
}

func (t Tax) RowID() string {
	return strconv.FormatInt(t.ID, 10)
}
