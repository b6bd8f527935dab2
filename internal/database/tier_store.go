package database

import (
	"context"
	"errors"

	"creatorhub/internal/models"

	"gorm.io/gorm"
)

// CreateTier inserts a new subscription tier.
func (s *Store) CreateTier(ctx context.Context, tier *models.SubscriptionTier) error {
	return s.db.WithContext(ctx).Create(tier).Error
}

// GetTierByID finds a tier by primary key, (nil, nil) when absent.
func (s *Store) GetTierByID(ctx context.Context, id uint) (*models.SubscriptionTier, error) {
	var tier models.SubscriptionTier
	err := s.db.WithContext(ctx).First(&tier, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tier, nil
}

// ListTiersByCreator returns a creator's tiers cheapest first.
func (s *Store) ListTiersByCreator(ctx context.Context, creatorID uint) ([]models.SubscriptionTier, error) {
	var tiers []models.SubscriptionTier
	err := s.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("price ASC").
		Find(&tiers).Error
	return tiers, err
}

// UpdateTier persists changes on an already-loaded tier row.
func (s *Store) UpdateTier(ctx context.Context, tier *models.SubscriptionTier) error {
	return s.db.WithContext(ctx).Save(tier).Error
}

// DeleteTier soft-deletes a tier row.
func (s *Store) DeleteTier(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.SubscriptionTier{}, id).Error
}
