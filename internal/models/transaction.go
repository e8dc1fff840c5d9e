package models

// EntryKind classifies a transaction as money in or money out
type EntryKind string

const (
	EntryKindIncome  EntryKind = "income"
	EntryKindExpense EntryKind = "expense"
)

// Transaction represents a single income or expense event. UserID is the
// owner key: it is always stamped from the session identity and every query
// filters on it.
type Transaction struct {
	Base
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Date        string    `gorm:"not null" json:"date"` // calendar date, YYYY-MM-DD
	Description string    `gorm:"not null" json:"description"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"` // smallest currency unit
	Category    string    `gorm:"not null" json:"category"`
	Kind        EntryKind `gorm:"not null" json:"kind"`
}
