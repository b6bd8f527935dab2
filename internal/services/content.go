package services

import (
	"context"

	"creatorhub/internal/apperrors"
	"creatorhub/internal/models"

	"github.com/shopspring/decimal"
)

// Pagination is the page arithmetic shared by the list endpoints.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

func NewPagination(total int64, page, limit int) Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

// ContentService handles content CRUD with creator-ownership checks.
type ContentService struct {
	content ContentStore
}

func NewContentService(content ContentStore) *ContentService {
	return &ContentService{content: content}
}

type ContentInput struct {
	Title        string
	Description  string
	ContentType  string
	ContentURL   string
	ThumbnailURL string
	Price        decimal.Decimal
	Currency     string
	IsPublic     bool
	IsFeatured   bool
}

// Create publishes new content owned by creatorID.
func (s *ContentService) Create(ctx context.Context, creatorID uint, in ContentInput) (*models.Content, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	content := &models.Content{
		CreatorID:    creatorID,
		Title:        in.Title,
		Description:  in.Description,
		ContentType:  in.ContentType,
		ContentURL:   in.ContentURL,
		ThumbnailURL: in.ThumbnailURL,
		Price:        in.Price,
		Currency:     in.Currency,
		IsPublic:     in.IsPublic,
		IsFeatured:   in.IsFeatured,
	}
	if err := s.content.CreateContent(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Update modifies content; only the owning creator may do so.
func (s *ContentService) Update(ctx context.Context, actorID, contentID uint, in ContentInput) (*models.Content, error) {
	content, err := s.getOwned(ctx, actorID, contentID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	content.Title = in.Title
	content.Description = in.Description
	content.ContentType = in.ContentType
	content.ContentURL = in.ContentURL
	content.ThumbnailURL = in.ThumbnailURL
	content.Price = in.Price
	content.Currency = in.Currency
	content.IsPublic = in.IsPublic
	content.IsFeatured = in.IsFeatured

	if err := s.content.UpdateContent(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Delete removes content; only the owning creator may do so.
func (s *ContentService) Delete(ctx context.Context, actorID, contentID uint) error {
	if _, err := s.getOwned(ctx, actorID, contentID); err != nil {
		return err
	}
	return s.content.DeleteContent(ctx, contentID)
}

// Get loads a single content item with its creator.
func (s *ContentService) Get(ctx context.Context, contentID uint) (*models.Content, error) {
	content, err := s.content.GetContentByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.NotFound("content not found")
	}
	return content, nil
}

// ListPublic returns public content newest first.
func (s *ContentService) ListPublic(ctx context.Context, page, limit int) ([]models.Content, Pagination, error) {
	page, limit = normalizePage(page, limit)
	content, total, err := s.content.ListPublicContent(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return content, NewPagination(total, page, limit), nil
}

// ListFeatured returns up to six public featured items.
func (s *ContentService) ListFeatured(ctx context.Context) ([]models.Content, error) {
	return s.content.ListFeaturedContent(ctx, 6)
}

// ListByCreator returns a creator's public content.
func (s *ContentService) ListByCreator(ctx context.Context, creatorID uint, page, limit int) ([]models.Content, Pagination, error) {
	page, limit = normalizePage(page, limit)
	content, total, err := s.content.ListContentByCreator(ctx, creatorID, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return content, NewPagination(total, page, limit), nil
}

func (s *ContentService) getOwned(ctx context.Context, actorID, contentID uint) (*models.Content, error) {
	content, err := s.Get(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if content.CreatorID != actorID {
		return nil, apperrors.Forbidden("you do not own this content")
	}
	return content, nil
}

func (in ContentInput) validate() error {
	if in.Title == "" {
		return apperrors.Validation("title is required")
	}
	if !models.ValidContentType(in.ContentType) {
		return apperrors.Validation("invalid content type")
	}
	if !models.ValidCurrency(in.Currency) {
		return apperrors.Validation("unsupported currency")
	}
	if in.Price.IsNegative() {
		return apperrors.Validation("price cannot be negative")
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
