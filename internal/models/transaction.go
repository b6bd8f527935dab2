package models

import (
	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTip          = "tip"
	TransactionPurchase     = "content-purchase"
	TransactionSubscription = "subscription"
)

// Transaction statuses
const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
)

// Transaction is an immutable record of a claimed on-chain payment.
// Amount, hash and parties are never mutated after creation; only the
// status and the subscription back-reference may change.
type Transaction struct {
	BaseModel

	SenderID    uint `json:"sender_id" gorm:"not null;index"`
	RecipientID uint `json:"recipient_id" gorm:"not null;index"`

	Amount   decimal.Decimal `json:"amount" gorm:"type:decimal(36,18)"`
	Currency string          `json:"currency" gorm:"size:10"`

	// On-chain hash; unique so a resubmitted hash cannot double-credit
	TxHash string `json:"tx_hash" gorm:"not null;size:66;uniqueIndex"`

	Type   string `json:"type" gorm:"not null;size:20;index"`
	Status string `json:"status" gorm:"not null;size:20;index"`

	ContentID      *uint `json:"content_id"`
	SubscriptionID *uint `json:"subscription_id"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// EarningsRow is one aggregate bucket of a creator's completed
// incoming transactions.
type EarningsRow struct {
	Currency string          `json:"currency"`
	Type     string          `json:"type"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}
