package api

import (
	"creatorhub/internal/middleware"
	"creatorhub/internal/response"

	"github.com/gin-gonic/gin"
)

// MyTransactions returns transactions the authenticated user sent or
// received, newest first.
// GET /transactions/my-transactions
func (h *Handler) MyTransactions(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	page, limit := pageParams(c)

	txs, pagination, err := h.txs.ListMine(c.Request.Context(), principal.UserID, page, limit)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, gin.H{
		"transactions": txs,
		"pagination":   pagination,
	})
}

// GetTransaction returns a transaction; only a party to it may view it.
// GET /transactions/:transactionId
func (h *Handler) GetTransaction(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	txID, ok := paramID(c, "transactionId")
	if !ok {
		return
	}

	tx, err := h.txs.Get(c.Request.Context(), principal.UserID, txID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, tx)
}

// EarningsSummary aggregates the authenticated creator's completed
// incoming payments by currency and type.
// GET /transactions/earnings/summary
func (h *Handler) EarningsSummary(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	rows, err := h.txs.EarningsSummary(c.Request.Context(), principal.UserID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, gin.H{"earnings": rows})
}

// EarningsByPeriod aggregates earnings over a trailing window.
// GET /transactions/earnings/:period
func (h *Handler) EarningsByPeriod(c *gin.Context) {
	principal := middleware.MustPrincipal(c)
	period := c.Param("period")

	rows, err := h.txs.EarningsByPeriod(c.Request.Context(), principal.UserID, period)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, gin.H{
		"period":   period,
		"earnings": rows,
	})
}
