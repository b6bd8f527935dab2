// Package services holds the business rules between the HTTP handlers
// and the data store. Services depend on narrow store interfaces,
// satisfied by database.Store in production and by in-memory fakes in
// tests.
package services

import (
	"context"
	"time"

	"creatorhub/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetCreator(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

type ContentStore interface {
	CreateContent(ctx context.Context, content *models.Content) error
	GetContentByID(ctx context.Context, id uint) (*models.Content, error)
	UpdateContent(ctx context.Context, content *models.Content) error
	DeleteContent(ctx context.Context, id uint) error
	ListPublicContent(ctx context.Context, offset, limit int) ([]models.Content, int64, error)
	ListFeaturedContent(ctx context.Context, limit int) ([]models.Content, error)
	ListContentByCreator(ctx context.Context, creatorID uint, offset, limit int) ([]models.Content, int64, error)
}

type SubscriptionStore interface {
	GetSubscription(ctx context.Context, subscriberID, creatorID uint) (*models.Subscription, error)
	GetSubscriptionByID(ctx context.Context, id uint) (*models.Subscription, error)
	GetActiveSubscription(ctx context.Context, subscriberID, creatorID uint, now time.Time) (*models.Subscription, error)
	ListSubscriptionsBySubscriber(ctx context.Context, subscriberID uint) ([]models.Subscription, error)
	ListActiveSubscribers(ctx context.Context, creatorID uint, offset, limit int) ([]models.Subscription, int64, error)
	UpdateSubscription(ctx context.Context, sub *models.Subscription) error
	ApplySubscriptionPayment(ctx context.Context, txRecord *models.Transaction, tierID *uint, expiresAt time.Time) (*models.Subscription, error)
}

type TierStore interface {
	CreateTier(ctx context.Context, tier *models.SubscriptionTier) error
	GetTierByID(ctx context.Context, id uint) (*models.SubscriptionTier, error)
	ListTiersByCreator(ctx context.Context, creatorID uint) ([]models.SubscriptionTier, error)
	UpdateTier(ctx context.Context, tier *models.SubscriptionTier) error
	DeleteTier(ctx context.Context, id uint) error
}

type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error)
	GetTransactionByHash(ctx context.Context, txHash string) (*models.Transaction, error)
	FindCompletedPurchase(ctx context.Context, buyerID, creatorID, contentID uint) (*models.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Transaction, int64, error)
	EarningsSummary(ctx context.Context, creatorID uint) ([]models.EarningsRow, error)
	EarningsSince(ctx context.Context, creatorID uint, since time.Time) ([]models.EarningsRow, error)
}
