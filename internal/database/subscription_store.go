package database

import (
	"context"
	"errors"
	"time"

	"creatorhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSubscription finds the single row for a (subscriber, creator)
// pair, (nil, nil) when absent.
func (s *Store) GetSubscription(ctx context.Context, subscriberID, creatorID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).
		Where("subscriber_id = ? AND creator_id = ?", subscriberID, creatorID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// GetSubscriptionByID finds a subscription by primary key, (nil, nil)
// when absent.
func (s *Store) GetSubscriptionByID(ctx context.Context, id uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).First(&sub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// GetActiveSubscription returns the pair's row only when it is active
// and unexpired at now, (nil, nil) otherwise.
func (s *Store) GetActiveSubscription(ctx context.Context, subscriberID, creatorID uint, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).
		Where("subscriber_id = ? AND creator_id = ? AND status = ? AND expires_at > ?",
			subscriberID, creatorID, models.SubscriptionActive, now).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// ListSubscriptionsBySubscriber returns all of a user's subscriptions
// newest first.
func (s *Store) ListSubscriptionsBySubscriber(ctx context.Context, subscriberID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.WithContext(ctx).
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

// ListActiveSubscribers returns a creator's active subscriptions with
// the total count for pagination.
func (s *Store) ListActiveSubscribers(ctx context.Context, creatorID uint, offset, limit int) ([]models.Subscription, int64, error) {
	var subs []models.Subscription
	var total int64

	q := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("creator_id = ? AND status = ?", creatorID, models.SubscriptionActive)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// UpdateSubscription persists changes on an already-loaded row.
func (s *Store) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	return s.db.WithContext(ctx).Save(sub).Error
}

// ApplySubscriptionPayment writes the funding transaction and
// creates-or-renews the (payer, creator) subscription in a single
// database transaction. The row is locked while updated so two racing
// submissions cannot lose an update; the composite unique index backs
// the at-most-one-row-per-pair invariant.
func (s *Store) ApplySubscriptionPayment(ctx context.Context, txRecord *models.Transaction, tierID *uint, expiresAt time.Time) (*models.Subscription, error) {
	var result models.Subscription

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txRecord).Error; err != nil {
			return err
		}

		var existing models.Subscription
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("subscriber_id = ? AND creator_id = ?", txRecord.SenderID, txRecord.RecipientID).
			First(&existing).Error

		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			result = models.Subscription{
				SubscriberID:      txRecord.SenderID,
				CreatorID:         txRecord.RecipientID,
				Status:            models.SubscriptionActive,
				ExpiresAt:         expiresAt,
				TierID:            tierID,
				LastTransactionID: &txRecord.ID,
			}
			if err := tx.Create(&result).Error; err != nil {
				return err
			}
		} else {
			existing.Status = models.SubscriptionActive
			existing.ExpiresAt = expiresAt
			if tierID != nil {
				existing.TierID = tierID
			}
			existing.LastTransactionID = &txRecord.ID
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = existing
		}

		txRecord.SubscriptionID = &result.ID
		return tx.Model(txRecord).Update("subscription_id", result.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
