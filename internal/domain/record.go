package domain

import "time"

// ActionRecord is the persisted audit row for one dispatched action.
// The journal is append-only and is never read back to rebuild state.
type ActionRecord struct {
	Seq       uint64    `gorm:"primaryKey" json:"seq"`
	Kind      string    `gorm:"index" json:"kind"`
	OrderID   string    `json:"order_id,omitempty"`
	Currency  string    `json:"currency,omitempty"`
	Value     string    `json:"value,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
