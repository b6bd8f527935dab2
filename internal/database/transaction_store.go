package database

import (
	"context"
	"errors"
	"time"

	"creatorhub/internal/models"

	"gorm.io/gorm"
)

// CreateTransaction inserts a new transaction row.
func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return s.db.WithContext(ctx).Create(t).Error
}

// GetTransactionByID finds a transaction by primary key, (nil, nil)
// when absent.
func (s *Store) GetTransactionByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var t models.Transaction
	err := s.db.WithContext(ctx).First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// GetTransactionByHash finds a transaction by its on-chain hash,
// (nil, nil) when absent.
func (s *Store) GetTransactionByHash(ctx context.Context, txHash string) (*models.Transaction, error) {
	var t models.Transaction
	err := s.db.WithContext(ctx).Where("tx_hash = ?", txHash).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// FindCompletedPurchase finds a completed content-purchase transaction
// from buyer to creator naming the content, (nil, nil) when absent.
func (s *Store) FindCompletedPurchase(ctx context.Context, buyerID, creatorID, contentID uint) (*models.Transaction, error) {
	var t models.Transaction
	err := s.db.WithContext(ctx).
		Where("sender_id = ? AND recipient_id = ? AND content_id = ? AND type = ? AND status = ?",
			buyerID, creatorID, contentID, models.TransactionPurchase, models.TransactionCompleted).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// ListTransactionsByUser returns transactions the user sent or
// received, newest first, with the total count for pagination.
func (s *Store) ListTransactionsByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	q := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("sender_id = ? OR recipient_id = ?", userID, userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// EarningsSummary aggregates a creator's completed incoming
// transactions by currency and type.
func (s *Store) EarningsSummary(ctx context.Context, creatorID uint) ([]models.EarningsRow, error) {
	return s.earnings(ctx, creatorID, time.Time{})
}

// EarningsSince aggregates a creator's completed incoming transactions
// created at or after since.
func (s *Store) EarningsSince(ctx context.Context, creatorID uint, since time.Time) ([]models.EarningsRow, error) {
	return s.earnings(ctx, creatorID, since)
}

func (s *Store) earnings(ctx context.Context, creatorID uint, since time.Time) ([]models.EarningsRow, error) {
	var rows []models.EarningsRow
	q := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("currency, type, SUM(amount) AS total, COUNT(*) AS count").
		Where("recipient_id = ? AND status = ?", creatorID, models.TransactionCompleted)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	err := q.Group("currency, type").Scan(&rows).Error
	return rows, err
}
