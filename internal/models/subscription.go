package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription statuses
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

// SubscriptionTier is a creator-defined plan with a price and a
// validity window.
type SubscriptionTier struct {
	BaseModel

	CreatorID uint `json:"creator_id" gorm:"not null;index"`
	Creator   User `json:"-" gorm:"foreignKey:CreatorID"`

	Name        string          `json:"name" gorm:"not null;size:100"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(36,18)"`
	Currency    string          `json:"currency" gorm:"size:10"`

	DurationDays int `json:"duration_days" gorm:"default:30"`
}

// Subscription relates one subscriber to one creator. The composite
// unique index guarantees at most one row per (subscriber, creator)
// pair; renewals update the row in place.
type Subscription struct {
	BaseModel

	SubscriberID uint `json:"subscriber_id" gorm:"not null;uniqueIndex:idx_subscriber_creator"`
	CreatorID    uint `json:"creator_id" gorm:"not null;uniqueIndex:idx_subscriber_creator"`

	Status    string    `json:"status" gorm:"not null;size:20;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`

	TierID *uint `json:"tier_id"`

	// Transaction that last funded this subscription
	LastTransactionID *uint `json:"last_transaction_id"`
}

// IsActive reports whether the subscription grants access at time now.
// Status alone is not sufficient: expiry is strict and evaluated lazily.
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == SubscriptionActive && s.ExpiresAt.After(now)
}
