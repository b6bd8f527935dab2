package models

import (
	"github.com/shopspring/decimal"
)

// Content types
const (
	ContentTypeArticle = "article"
	ContentTypeVideo   = "video"
	ContentTypeImage   = "image"
	ContentTypeAudio   = "audio"
)

// Supported payment currencies
const (
	CurrencyETH  = "ETH"
	CurrencyUSDC = "USDC"
)

// Content is a piece of creator-published content. ContentURL points at
// the paywalled payload and must never leak to viewers without access.
type Content struct {
	BaseModel

	CreatorID uint `json:"creator_id" gorm:"not null;index"`
	Creator   User `json:"-" gorm:"foreignKey:CreatorID"`

	Title       string `json:"title" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"type:text"`
	ContentType string `json:"content_type" gorm:"not null;size:20"`

	ContentURL   string `json:"content_url" gorm:"size:500"`
	ThumbnailURL string `json:"thumbnail_url" gorm:"size:500"`

	Price    decimal.Decimal `json:"price" gorm:"type:decimal(36,18)"`
	Currency string          `json:"currency" gorm:"size:10"`

	IsPublic   bool `json:"is_public" gorm:"index"`
	IsFeatured bool `json:"is_featured" gorm:"index"`

	// Optional tier gate: when set, only that tier's subscribers see it
	RequiredTierID *uint `json:"required_tier_id"`
}

// ContentPreview is the non-paywalled projection returned when access
// is denied. It deliberately has no content_url field.
type ContentPreview struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Creator      UserSummary     `json:"creator"`
}

func (c *Content) Preview(creator UserSummary) ContentPreview {
	return ContentPreview{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		ThumbnailURL: c.ThumbnailURL,
		Price:        c.Price,
		Currency:     c.Currency,
		Creator:      creator,
	}
}

// ValidContentType reports whether t is a supported content type.
func ValidContentType(t string) bool {
	switch t {
	case ContentTypeArticle, ContentTypeVideo, ContentTypeImage, ContentTypeAudio:
		return true
	}
	return false
}

// ValidCurrency reports whether c is a supported currency.
func ValidCurrency(c string) bool {
	return c == CurrencyETH || c == CurrencyUSDC
}
