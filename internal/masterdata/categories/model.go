package categories

import "strconv"

// Category groups expenses, products or assets. Kind says which.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

func (c Category) RowID() string {
	return strconv.FormatInt(c.ID, 10)
}

const (
	KindExpense = "expense"
	KindProduct = "product"
	KindAsset   = "asset"
)
