package expenses

import (
	"strconv"
	"time"
)

// CategoryRef is the expense category shown in the list.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Expense struct {
	ID          int64       `json:"id"`
	Reference   string      `json:"reference"`
	Category    CategoryRef `json:"category"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Status      string      `json:"status"`
	SpentOn     time.Time   `json:"spentOn"`
}

func (e Expense) RowID() string {
	return strconv.FormatInt(e.ID, 10)
}
