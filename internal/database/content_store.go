package database

import (
	"context"
	"errors"

	"creatorhub/internal/models"

	"gorm.io/gorm"
)

// CreateContent inserts a new content row.
func (s *Store) CreateContent(ctx context.Context, content *models.Content) error {
	return s.db.WithContext(ctx).Create(content).Error
}

// GetContentByID finds content with its creator preloaded, (nil, nil)
// when absent.
func (s *Store) GetContentByID(ctx context.Context, id uint) (*models.Content, error) {
	var content models.Content
	err := s.db.WithContext(ctx).Preload("Creator").First(&content, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

// UpdateContent persists changes on an already-loaded content row.
func (s *Store) UpdateContent(ctx context.Context, content *models.Content) error {
	return s.db.WithContext(ctx).Save(content).Error
}

// DeleteContent soft-deletes a content row.
func (s *Store) DeleteContent(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Content{}, id).Error
}

// ListPublicContent returns public content newest first with the total
// count for pagination.
func (s *Store) ListPublicContent(ctx context.Context, offset, limit int) ([]models.Content, int64, error) {
	var content []models.Content
	var total int64

	q := s.db.WithContext(ctx).Model(&models.Content{}).Where("is_public = ?", true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Creator").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&content).Error
	if err != nil {
		return nil, 0, err
	}
	return content, total, nil
}

// ListFeaturedContent returns up to limit public featured items.
func (s *Store) ListFeaturedContent(ctx context.Context, limit int) ([]models.Content, error) {
	var content []models.Content
	err := s.db.WithContext(ctx).
		Where("is_public = ? AND is_featured = ?", true, true).
		Preload("Creator").
		Order("created_at DESC").
		Limit(limit).
		Find(&content).Error
	return content, err
}

// ListContentByCreator returns a creator's public content newest first.
func (s *Store) ListContentByCreator(ctx context.Context, creatorID uint, offset, limit int) ([]models.Content, int64, error) {
	var content []models.Content
	var total int64

	q := s.db.WithContext(ctx).Model(&models.Content{}).
		Where("creator_id = ? AND is_public = ?", creatorID, true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Creator").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&content).Error
	if err != nil {
		return nil, 0, err
	}
	return content, total, nil
}
