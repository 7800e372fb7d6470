package capital

import "time"

// PoolID is the single shared capital row. The pool is one scalar with
// last-write-wins semantics; it is not versioned or audited.
const PoolID uint64 = 1

type Balance struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Total     float64   `gorm:"type:decimal(18,2)" json:"total"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Balance) TableName() string { return "capital" }
