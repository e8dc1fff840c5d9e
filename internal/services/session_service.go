package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "moneybook/internal/errors"
	"moneybook/internal/models"
)

// sessionService persists sessions in the database. Tokens are random and
// server-held; the cookie carries only the token.
type sessionService struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewSessionService creates a new SessionServicer with the given rolling TTL.
func NewSessionService(db *gorm.DB, ttl time.Duration) SessionServicer {
	return &sessionService{db: db, ttl: ttl}
}

// newSessionToken returns a 64-character hex token from 32 random bytes.
func newSessionToken() (string, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]), nil
}

// Create inserts a new session for the user and returns it once the write is
// acknowledged. Callers must not send the login redirect before this returns:
// a fast post-redirect API call has to observe the session.
func (s *sessionService) Create(user *models.User) (*models.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	session := &models.Session{
		ID:        token,
		UserID:    user.ID,
		KakaoID:   user.KakaoID,
		Nickname:  user.Nickname,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return session, nil
}

// Get loads a session by token. Missing or expired sessions resolve to
// Unauthorized; expired rows are deleted on sight. Every hit rolls the
// expiry window forward.
func (s *sessionService) Get(token string) (*models.Session, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var session models.Session
	if err := s.db.Where("id = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	if session.Expired(now) {
		if err := s.db.Delete(&session).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil, apperrors.ErrUnauthorized
	}

	// Rolling TTL: any request that touches the session refreshes it.
	session.ExpiresAt = now.Add(s.ttl)
	if err := s.db.Model(&session).Update("expires_at", session.ExpiresAt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &session, nil
}

// Destroy deletes a session. Destroying a token that no longer exists is a
// no-op.
func (s *sessionService) Destroy(token string) error {
	if token == "" {
		return nil
	}
	if err := s.db.Where("id = ?", token).Delete(&models.Session{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
