package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneybook/internal/errors"
	"moneybook/internal/models"
	"moneybook/internal/oauth"
)

// userService maps resolved provider profiles to local user records.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// Resolve returns the user for a provider profile, creating one on first
// login. Repeat logins with the same Kakao ID always return the same record;
// the stored nickname is deliberately not re-synced from the profile.
func (s *userService) Resolve(profile *oauth.Profile) (*models.User, error) {
	if profile == nil || profile.ExternalID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "profile is missing an account id")
	}

	var user models.User
	err := s.db.Where("kakao_id = ?", profile.ExternalID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user = models.User{
		KakaoID:  profile.ExternalID,
		Nickname: profile.Nickname,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by local ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
