package models

// User anchors an external Kakao identity to a local account. Created on
// first successful login; the stored nickname is not refreshed on repeat
// logins.
type User struct {
	Base
	KakaoID  string `gorm:"uniqueIndex;not null" json:"kakao_id"`
	Nickname string `gorm:"not null" json:"nickname"`

	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	Assets       []Asset       `gorm:"foreignKey:UserID" json:"assets,omitempty"`
}
