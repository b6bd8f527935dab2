package api

import (
	"net/http"

	"creatorhub/internal/blockchain"
	"creatorhub/internal/middleware"
	"creatorhub/internal/response"
	"creatorhub/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// VerifyTransactionRequest represents the receipt lookup body.
type VerifyTransactionRequest struct {
	TxHash string `json:"tx_hash" binding:"required"`
}

// VerifyTransaction reports the on-chain status of a transaction
// without recording anything. A missing receipt is a normal answer,
// not an error.
// POST /blockchain/verify-transaction
func (h *Handler) VerifyTransaction(c *gin.Context) {
	var req VerifyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}
	if !blockchain.ValidTxHash(req.TxHash) {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid transaction hash")
		return
	}

	receipt, err := h.chain.Receipt(c.Request.Context(), req.TxHash)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}

	if receipt == nil {
		response.SuccessJSON(c, gin.H{
			"verified": false,
			"status":   "pending",
		})
		return
	}

	status := "confirmed"
	if !receipt.Success {
		status = "failed"
	}
	response.SuccessJSON(c, gin.H{
		"verified":      receipt.Success,
		"status":        status,
		"block_number":  receipt.BlockNumber,
		"confirmations": receipt.Confirmations,
	})
}

// VerifySignatureRequest represents the signature check body.
type VerifySignatureRequest struct {
	Message   string `json:"message" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Address   string `json:"address" binding:"required"`
}

// VerifySignature checks that the signature over the message recovers
// the claimed address. A signature that recovers a different address
// yields a 200 with is_valid false.
// POST /blockchain/verify-signature
func (h *Handler) VerifySignature(c *gin.Context) {
	var req VerifySignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	valid, err := blockchain.VerifySignature(req.Message, req.Signature, req.Address)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, gin.H{"is_valid": valid})
}

// ProcessPaymentRequest represents the payment submission body. At most
// one of ContentID and TierID should be set; neither means a tip.
type ProcessPaymentRequest struct {
	TxHash      string          `json:"tx_hash" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"required,oneof=ETH USDC"`
	RecipientID uint            `json:"recipient_id" binding:"required"`
	ContentID   *uint           `json:"content_id"`
	TierID      *uint           `json:"tier_id"`
}

// ProcessPayment verifies the claimed transaction against the chain and
// records it, granting whatever the payment funds.
// POST /blockchain/process-payment
func (h *Handler) ProcessPayment(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	tx, err := h.payments.RecordPayment(c.Request.Context(), principal.UserID, services.RecordPaymentInput{
		TxHash:      req.TxHash,
		Amount:      req.Amount,
		Currency:    req.Currency,
		RecipientID: req.RecipientID,
		ContentID:   req.ContentID,
		TierID:      req.TierID,
	})
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.CreatedJSON(c, tx)
}

// WalletNonce issues a one-time nonce for the user to sign as proof of
// wallet ownership. The nonce expires after five minutes.
// GET /blockchain/nonce
func (h *Handler) WalletNonce(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	nonce, err := h.nonces.IssueNonce(c.Request.Context(), principal.UserID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, gin.H{"nonce": nonce})
}

// ConnectWalletRequest represents the wallet binding body. When a
// signature is supplied, the previously issued nonce must be the signed
// message.
type ConnectWalletRequest struct {
	Address   string `json:"address" binding:"required"`
	Signature string `json:"signature"`
	Nonce     string `json:"nonce"`
}

// ConnectWallet binds an Ethereum address to the user's account,
// optionally proving ownership with a signed nonce.
// POST /blockchain/connect-wallet
func (h *Handler) ConnectWallet(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	var req ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	if req.Signature != "" {
		if req.Nonce == "" {
			response.ErrorJSON(c, http.StatusBadRequest, "nonce is required with a signature")
			return
		}
		ok, err := h.nonces.ConsumeNonce(c.Request.Context(), principal.UserID, req.Nonce)
		if err != nil {
			response.ErrorFromErr(c, err)
			return
		}
		if !ok {
			response.ErrorJSON(c, http.StatusBadRequest, "invalid or expired nonce")
			return
		}

		valid, err := blockchain.VerifySignature(req.Nonce, req.Signature, req.Address)
		if err != nil {
			response.ErrorFromErr(c, err)
			return
		}
		if !valid {
			response.ErrorJSON(c, http.StatusBadRequest, "signature does not match the address")
			return
		}
	}

	user, err := h.users.ConnectWallet(c.Request.Context(), principal.UserID, req.Address)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, user)
}

// WalletStatus reports whether the user has a wallet bound.
// GET /blockchain/wallet-status
func (h *Handler) WalletStatus(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	user, err := h.users.GetUser(c.Request.Context(), principal.UserID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, gin.H{
		"connected":      user.WalletAddress != "",
		"wallet_address": user.WalletAddress,
	})
}
