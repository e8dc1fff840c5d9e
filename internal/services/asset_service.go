package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneybook/internal/errors"
	"moneybook/internal/models"
)

// assetService handles owner-scoped asset CRUD.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// ListAssets returns all assets owned by the user.
func (s *assetService) ListAssets(userID string) ([]models.Asset, error) {
	assets := []models.Asset{}
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// CreateAsset validates the fields, stamps the owner, and inserts the record.
func (s *assetService) CreateAsset(userID, name string, amount int64) (*models.Asset, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	asset := &models.Asset{
		UserID: userID,
		Name:   name,
		Amount: amount,
	}
	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// UpdateAssetAmount sets a new amount on the asset matching (id AND owner).
// The name is immutable after creation. An asset owned by someone else
// behaves exactly like a missing one.
func (s *assetService) UpdateAssetAmount(userID, assetID string, amount int64) (*models.Asset, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	var asset models.Asset
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&asset).Update("amount", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// DeleteAsset deletes the record matching (id AND owner); missing targets are
// a silent success.
func (s *assetService) DeleteAsset(userID, assetID string) error {
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).
		Delete(&models.Asset{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
