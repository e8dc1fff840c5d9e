package models

// Asset is a named holding contributing to net worth. Name is immutable
// after creation; only the amount can be updated.
type Asset struct {
	Base
	UserID string `gorm:"type:uuid;index;not null" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
	Amount int64  `gorm:"type:bigint;not null" json:"amount"`
}
