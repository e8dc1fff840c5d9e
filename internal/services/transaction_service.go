package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "moneybook/internal/errors"
	"moneybook/internal/models"
)

// transactionService handles owner-scoped transaction CRUD. Every query
// filters on the owner key from the session; record IDs alone are never
// sufficient to reach a row.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// ListTransactions returns all transactions owned by the user.
func (s *transactionService) ListTransactions(userID string) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// CreateTransaction validates the fields, stamps the owner from the session
// identity, and inserts the record.
func (s *transactionService) CreateTransaction(userID, date, description string, amount int64, category string, kind models.EntryKind) (*models.Transaction, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if err := validateCalendarDate(date); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if kind != models.EntryKindIncome && kind != models.EntryKindExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be income or expense")
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Category:    category,
		Kind:        kind,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// UpdateTransaction applies a partial field set to the record matching
// (id AND owner). A record owned by someone else behaves exactly like a
// missing one.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{}
	if fields.Date != nil {
		if err := validateCalendarDate(*fields.Date); err != nil {
			return nil, err
		}
		updates["date"] = *fields.Date
	}
	if fields.Description != nil {
		if *fields.Description == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description must not be empty")
		}
		updates["description"] = *fields.Description
	}
	if fields.Amount != nil {
		if *fields.Amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.Category != nil {
		if *fields.Category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must not be empty")
		}
		updates["category"] = *fields.Category
	}
	if fields.Kind != nil {
		if *fields.Kind != models.EntryKindIncome && *fields.Kind != models.EntryKindExpense {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be income or expense")
		}
		updates["kind"] = *fields.Kind
	}

	if len(updates) == 0 {
		return &transaction, nil
	}

	if err := s.db.Model(&transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction deletes the record matching (id AND owner). Deleting a
// record that does not exist, or that belongs to someone else, is a silent
// success.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).
		Delete(&models.Transaction{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateCalendarDate checks the YYYY-MM-DD date format shared by create and
// update paths.
func validateCalendarDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be in YYYY-MM-DD format")
	}
	return nil
}
