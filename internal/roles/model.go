package roles

import "strconv"

// Role groups permissions granted to users.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Permissions int    `json:"permissions"`
	Users       int    `json:"users"`
}

// RowID implements datatable.Row.
func (r Role) RowID() string {
	return strconv.FormatInt(r.ID, 10)
}
