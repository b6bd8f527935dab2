package api

import (
	"net/http"
	"strconv"

	"creatorhub/internal/middleware"
	"creatorhub/internal/response"
	"creatorhub/internal/services"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest represents the profile update body. All fields
// are optional; absent fields are left untouched.
type UpdateProfileRequest struct {
	Username     *string `json:"username"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profile_image"`
	WebhookURL   *string `json:"webhook_url" binding:"omitempty,url"`
}

// UpdateMe updates the authenticated user's profile.
// PUT /users/me
func (h *Handler) UpdateMe(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), principal.UserID, services.UpdateProfileInput{
		Username:     req.Username,
		Email:        req.Email,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		WebhookURL:   req.WebhookURL,
	})
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, user)
}

// GetUser returns a user's public profile.
// GET /users/:userId
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "userId")
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, user)
}

// GetUserContent returns a user's public content.
// GET /users/:userId/content
func (h *Handler) GetUserContent(c *gin.Context) {
	id, ok := paramID(c, "userId")
	if !ok {
		return
	}
	page, limit := pageParams(c)

	content, pagination, err := h.content.ListByCreator(c.Request.Context(), id, page, limit)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, gin.H{
		"content":    content,
		"pagination": pagination,
	})
}

// paramID parses a numeric path parameter, writing a 400 when it is
// malformed.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// pageParams parses page/limit query parameters with defaults.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	return page, limit
}
