// Package audit lists the trail written by row actions.
package audit

import (
	"strconv"
	"time"
)

// SystemActor names entries recorded without a signed-in user.
const SystemActor = "system"

// Entry is one recorded action.
type Entry struct {
	ID        int64     `json:"id"`
	At        time.Time `json:"at"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId"`
	RequestID string    `json:"requestId"`
}

// RowID implements datatable.Row.
func (e Entry) RowID() string {
	return strconv.FormatInt(e.ID, 10)
}
