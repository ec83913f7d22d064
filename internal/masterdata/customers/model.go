package customers

import "strconv"

// Customer is a party sales are made to. CreditLimit is in the base currency.
type Customer struct {
	ID          int64   `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	CreditLimit float64 `json:"creditLimit"`
	Status      string  `json:"status"`
}

func (c Customer) RowID() string {
	return strconv.FormatInt(c.ID, 10)
}
