package sales

import (
	"strconv"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// CustomerRef is the customer a sale belongs to.
type CustomerRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Sale is a single-line sale. Discount and Tax are percentages; the amounts
// and Total are derived by ApplyTotals.
type Sale struct {
	ID             int64       `json:"id"`
	Number         string      `json:"number"`
	Customer       CustomerRef `json:"customer"`
	SaleDate       time.Time   `json:"saleDate"`
	Quantity       float64     `json:"quantity"`
	UnitPrice      float64     `json:"unitPrice"`
	Discount       float64     `json:"discount"`
	Tax            float64     `json:"tax"`
	DiscountAmount float64     `json:"discountAmount"`
	TaxAmount      float64     `json:"taxAmount"`
	Total          float64     `json:"total"`
	Status         string      `json:"status"`
}

func (s Sale) RowID() string {
	return strconv.FormatInt(s.ID, 10)
}

// ApplyTotals fills the derived amounts.
func (s *Sale) ApplyTotals() {
	s.DiscountAmount, s.TaxAmount, s.Total = CalculateLineTotals(s.Quantity, s.UnitPrice, s.Discount, s.Tax)
}
