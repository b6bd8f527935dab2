package api

import (
	"net/http"

	"creatorhub/internal/middleware"
	"creatorhub/internal/response"
	"creatorhub/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ContentRequest represents the create/update content body.
type ContentRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	ContentType  string          `json:"content_type" binding:"required,oneof=article video image audio"`
	ContentURL   string          `json:"content_url"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency" binding:"required,oneof=ETH USDC"`
	IsPublic     bool            `json:"is_public"`
	IsFeatured   bool            `json:"is_featured"`
}

func (r ContentRequest) input() services.ContentInput {
	return services.ContentInput{
		Title:        r.Title,
		Description:  r.Description,
		ContentType:  r.ContentType,
		ContentURL:   r.ContentURL,
		ThumbnailURL: r.ThumbnailURL,
		Price:        r.Price,
		Currency:     r.Currency,
		IsPublic:     r.IsPublic,
		IsFeatured:   r.IsFeatured,
	}
}

// ListContent returns public content newest first.
// GET /content
func (h *Handler) ListContent(c *gin.Context) {
	page, limit := pageParams(c)

	content, pagination, err := h.content.ListPublic(c.Request.Context(), page, limit)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, gin.H{
		"content":    content,
		"pagination": pagination,
	})
}

// FeaturedContent returns the featured shelf.
// GET /content/featured
func (h *Handler) FeaturedContent(c *gin.Context) {
	content, err := h.content.ListFeatured(c.Request.Context())
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, content)
}

// ContentByCreator returns a creator's public content.
// GET /content/creator/:creatorId
func (h *Handler) ContentByCreator(c *gin.Context) {
	creatorID, ok := paramID(c, "creatorId")
	if !ok {
		return
	}
	page, limit := pageParams(c)

	content, pagination, err := h.content.ListByCreator(c.Request.Context(), creatorID, page, limit)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, gin.H{
		"content":    content,
		"pagination": pagination,
	})
}

// GetContent returns a single content item. Private content is served
// in full only to entitled viewers; everyone else gets the preview
// projection without the content URL.
// GET /content/:contentId
func (h *Handler) GetContent(c *gin.Context) {
	contentID, ok := paramID(c, "contentId")
	if !ok {
		return
	}

	var viewerID uint
	if principal, ok := middleware.PrincipalFrom(c); ok {
		viewerID = principal.UserID
	}

	decision, err := h.access.Evaluate(c.Request.Context(), viewerID, contentID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}

	if decision.Granted {
		response.SuccessJSON(c, decision.Content)
		return
	}
	response.SuccessJSON(c, decision.Preview)
}

// CreateContent publishes new content for the authenticated creator.
// POST /content
func (h *Handler) CreateContent(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	content, err := h.content.Create(c.Request.Context(), principal.UserID, req.input())
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.CreatedJSON(c, content)
}

// UpdateContent modifies owned content.
// PUT /content/:contentId
func (h *Handler) UpdateContent(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	contentID, ok := paramID(c, "contentId")
	if !ok {
		return
	}

	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	content, err := h.content.Update(c.Request.Context(), principal.UserID, contentID, req.input())
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, content)
}

// DeleteContent removes owned content.
// DELETE /content/:contentId
func (h *Handler) DeleteContent(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	contentID, ok := paramID(c, "contentId")
	if !ok {
		return
	}

	if err := h.content.Delete(c.Request.Context(), principal.UserID, contentID); err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.MessageJSON(c, "content deleted successfully")
}

// CheckAccess evaluates whether the authenticated viewer may see the
// content, returning the decision and either the reason-specific
// entitlement or the preview.
// GET /content/access/:contentId
func (h *Handler) CheckAccess(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	contentID, ok := paramID(c, "contentId")
	if !ok {
		return
	}

	decision, err := h.access.Evaluate(c.Request.Context(), principal.UserID, contentID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, decision)
}
