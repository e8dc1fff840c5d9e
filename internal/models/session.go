package models

import "time"

// Session binds a browser cookie to a resolved user for a rolling time
// window. The identity fields are copied from the user at login time; the
// session does not keep the user row alive.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"` // random token, hex
	UserID    string    `gorm:"type:uuid;index;not null"`
	KakaoID   string    `gorm:"not null"`
	Nickname  string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the session's rolling window has lapsed.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
