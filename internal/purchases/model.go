package purchases

import (
	"strconv"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusApproved  = "approved"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

type SupplierRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Purchase is a purchase order. Only approved purchases can be paid.
type Purchase struct {
	ID        int64       `json:"id"`
	Number    string      `json:"number"`
	Supplier  SupplierRef `json:"supplier"`
	OrderDate time.Time   `json:"orderDate"`
	DueDate   *time.Time  `json:"dueDate,omitempty"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	PaidAt    *time.Time  `json:"paidAt,omitempty"`
}

func (p Purchase) RowID() string {
	return strconv.FormatInt(p.ID, 10)
}
