package suppliers

import (
	"strconv"
	"time"
)

// Supplier is a vendor purchases are placed with.
type Supplier struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// RowID implements datatable.Row.
func (s Supplier) RowID() string {
	return strconv.FormatInt(s.ID, 10)
}
