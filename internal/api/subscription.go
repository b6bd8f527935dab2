package api

import (
	"net/http"

	"creatorhub/internal/middleware"
	"creatorhub/internal/response"
	"creatorhub/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SubscribeRequest represents the subscribe body. TierID is optional;
// without it the default 30-day window applies.
type SubscribeRequest struct {
	CreatorID uint            `json:"creator_id" binding:"required"`
	TierID    *uint           `json:"tier_id"`
	TxHash    string          `json:"tx_hash" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Currency  string          `json:"currency" binding:"required,oneof=ETH USDC"`
}

// MySubscriptions returns the authenticated user's subscriptions.
// GET /subscriptions/my-subscriptions
func (h *Handler) MySubscriptions(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	subs, err := h.subs.ListMySubscriptions(c.Request.Context(), principal.UserID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, subs)
}

// MySubscribers returns the authenticated creator's active subscribers.
// GET /subscriptions/my-subscribers
func (h *Handler) MySubscribers(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	page, limit := pageParams(c)

	subs, pagination, err := h.subs.ListMySubscribers(c.Request.Context(), principal.UserID, page, limit)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, gin.H{
		"subscribers": subs,
		"pagination":  pagination,
	})
}

// Subscribe verifies the funding transaction and activates or renews a
// subscription to the creator.
// POST /subscriptions/subscribe
func (h *Handler) Subscribe(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.subs.Subscribe(c.Request.Context(), principal.UserID, req.CreatorID, req.TierID, req.TxHash, req.Amount, req.Currency)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.CreatedJSON(c, result)
}

// RenewRequest represents the renewal body.
type RenewRequest struct {
	TxHash   string          `json:"tx_hash" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"required,oneof=ETH USDC"`
}

// RenewSubscription funds an existing subscription for another window.
// POST /subscriptions/:subscriptionId/renew
func (h *Handler) RenewSubscription(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	subscriptionID, ok := paramID(c, "subscriptionId")
	if !ok {
		return
	}

	var req RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.subs.Renew(c.Request.Context(), principal.UserID, subscriptionID, req.TxHash, req.Amount, req.Currency)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, result)
}

// CancelSubscription marks the subscription cancelled. Access lasts
// until the already-paid window expires.
// POST /subscriptions/:subscriptionId/cancel
func (h *Handler) CancelSubscription(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	subscriptionID, ok := paramID(c, "subscriptionId")
	if !ok {
		return
	}

	sub, err := h.subs.Cancel(c.Request.Context(), principal.UserID, subscriptionID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, sub)
}

// SubscriptionStatus reports whether the authenticated user is
// subscribed to the creator.
// GET /subscriptions/status/:creatorId
func (h *Handler) SubscriptionStatus(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	creatorID, ok := paramID(c, "creatorId")
	if !ok {
		return
	}

	status, err := h.subs.Status(c.Request.Context(), principal.UserID, creatorID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, status)
}

// TierRequest represents the create/update tier body.
type TierRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency" binding:"required,oneof=ETH USDC"`
	DurationDays int             `json:"duration_days"`
}

func (r TierRequest) input() services.TierInput {
	return services.TierInput{
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Currency:     r.Currency,
		DurationDays: r.DurationDays,
	}
}

// ListTiers returns a creator's subscription plans.
// GET /subscriptions/tiers/:creatorId
func (h *Handler) ListTiers(c *gin.Context) {
	creatorID, ok := paramID(c, "creatorId")
	if !ok {
		return
	}

	tiers, err := h.subs.ListTiers(c.Request.Context(), creatorID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, tiers)
}

// CreateTier adds a subscription plan for the authenticated creator.
// POST /subscriptions/tiers
func (h *Handler) CreateTier(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	var req TierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	tier, err := h.subs.CreateTier(c.Request.Context(), principal.UserID, req.input())
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.CreatedJSON(c, tier)
}

// UpdateTier modifies an owned tier.
// PUT /subscriptions/tiers/:tierId
func (h *Handler) UpdateTier(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	tierID, ok := paramID(c, "tierId")
	if !ok {
		return
	}

	var req TierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	tier, err := h.subs.UpdateTier(c.Request.Context(), principal.UserID, tierID, req.input())
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, tier)
}

// DeleteTier removes an owned tier.
// DELETE /subscriptions/tiers/:tierId
func (h *Handler) DeleteTier(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	tierID, ok := paramID(c, "tierId")
	if !ok {
		return
	}

	if err := h.subs.DeleteTier(c.Request.Context(), principal.UserID, tierID); err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.MessageJSON(c, "tier deleted successfully")
}
