package services

import (
	"context"

	"moneybook/internal/models"
	"moneybook/internal/oauth"
)

// IdentityProvider defines the contract for the external OAuth provider.
// Implemented by oauth.Provider; handler tests substitute a stub.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	ResolveCode(ctx context.Context, code string) (*oauth.Profile, error)
}

// UserServicer defines the contract for mapping provider identities to local users.
type UserServicer interface {
	Resolve(profile *oauth.Profile) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// SessionServicer defines the contract for server-side session management.
type SessionServicer interface {
	Create(user *models.User) (*models.Session, error)
	Get(token string) (*models.Session, error)
	Destroy(token string) error
}

// TransactionUpdateFields holds the optional fields of a partial transaction
// update. Nil means "leave unchanged".
type TransactionUpdateFields struct {
	Date        *string
	Description *string
	Amount      *int64
	Category    *string
	Kind        *models.EntryKind
}

// TransactionServicer defines the contract for owner-scoped transaction CRUD.
type TransactionServicer interface {
	ListTransactions(userID string) ([]models.Transaction, error)
	CreateTransaction(userID, date, description string, amount int64, category string, kind models.EntryKind) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// AssetServicer defines the contract for owner-scoped asset CRUD. Asset names
// are immutable after creation; updates touch the amount only.
type AssetServicer interface {
	ListAssets(userID string) ([]models.Asset, error)
	CreateAsset(userID, name string, amount int64) (*models.Asset, error)
	UpdateAssetAmount(userID, assetID string, amount int64) (*models.Asset, error)
	DeleteAsset(userID, assetID string) error
}

// DataServicer defines the contract for the bulk reset operation.
type DataServicer interface {
	ResetUserData(userID string) error
}
