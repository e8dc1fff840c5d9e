package services

import (
	"gorm.io/gorm"

	apperrors "moneybook/internal/errors"
	"moneybook/internal/models"
)

// dataService implements the bulk reset across both collections.
type dataService struct {
	db *gorm.DB
}

// NewDataService creates a new DataServicer.
func NewDataService(db *gorm.DB) DataServicer {
	return &dataService{db: db}
}

// ResetUserData deletes every transaction and asset owned by the user inside
// one database transaction. Idempotent: resetting an already-empty account
// still succeeds.
func (s *dataService) ResetUserData(userID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Asset{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
