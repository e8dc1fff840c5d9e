package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneybook/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique Kakao ID.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		KakaoID:  fmt.Sprintf("%d", 1000000+nextID()),
		Nickname: fmt.Sprintf("tester%d", nextID()),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestSession creates a live session for the user with the given TTL.
func CreateTestSession(t *testing.T, db *gorm.DB, user *models.User, ttl time.Duration) *models.Session {
	t.Helper()

	session := &models.Session{
		ID:        fmt.Sprintf("%064d", nextID()),
		UserID:    user.ID,
		KakaoID:   user.KakaoID,
		Nickname:  user.Nickname,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}
	return session
}

// CreateTestTransaction creates a transaction owned by the given user.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, kind models.EntryKind, amount int64) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		UserID:      userID,
		Date:        "2024-01-01",
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:      amount,
		Category:    "Test",
		Kind:        kind,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestAsset creates an asset owned by the given user.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID string, amount int64) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID: userID,
		Name:   fmt.Sprintf("Test Asset %d", nextID()),
		Amount: amount,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}
