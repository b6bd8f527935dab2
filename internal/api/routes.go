package api

import (
	"net/http"
	"time"

	"creatorhub/internal/blockchain"
	"creatorhub/internal/config"
	"creatorhub/internal/middleware"
	"creatorhub/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler wires HTTP routes to the service layer.
type Handler struct {
	users    *services.UserService
	content  *services.ContentService
	subs     *services.SubscriptionService
	txs      *services.TransactionService
	payments *services.PaymentService
	access   *services.AccessService
	nonces   *services.NonceService
	chain    blockchain.ReceiptClient
}

func NewHandler(
	users *services.UserService,
	content *services.ContentService,
	subs *services.SubscriptionService,
	txs *services.TransactionService,
	payments *services.PaymentService,
	access *services.AccessService,
	nonces *services.NonceService,
	chain blockchain.ReceiptClient,
) *Handler {
	return &Handler{
		users:    users,
		content:  content,
		subs:     subs,
		txs:      txs,
		payments: payments,
		access:   access,
		nonces:   nonces,
		chain:    chain,
	}
}

// SetupRoutes registers all routes on the engine.
func (h *Handler) SetupRoutes(r *gin.Engine, cfg *config.Config) {
	r.Use(middleware.Metrics())

	authRequired := middleware.AuthRequired(cfg.JWTSecret)
	authOptional := middleware.AuthOptional(cfg.JWTSecret)
	paymentLimit := middleware.PaymentRateLimit(h.nonces, time.Duration(cfg.PaymentRateLimitSeconds)*time.Second)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.ServiceName,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	metricsHandler := gin.WrapH(promhttp.Handler())
	if cfg.MetricsUser != "" && cfg.MetricsPassword != "" {
		protected := gin.BasicAuth(gin.Accounts{cfg.MetricsUser: cfg.MetricsPassword})
		r.GET("/metrics", protected, metricsHandler)
	} else {
		r.GET("/metrics", metricsHandler)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", authRequired, h.Me)
	}

	users := r.Group("/users")
	{
		users.PUT("/me", authRequired, h.UpdateMe)
		users.GET("/:userId", h.GetUser)
		users.GET("/:userId/content", h.GetUserContent)
	}

	content := r.Group("/content")
	{
		content.GET("", h.ListContent)
		content.GET("/featured", h.FeaturedContent)
		content.GET("/creator/:creatorId", h.ContentByCreator)
		content.GET("/access/:contentId", authRequired, h.CheckAccess)
		content.GET("/:contentId", authOptional, h.GetContent)
		content.POST("", authRequired, h.CreateContent)
		content.PUT("/:contentId", authRequired, h.UpdateContent)
		content.DELETE("/:contentId", authRequired, h.DeleteContent)
	}

	subs := r.Group("/subscriptions", authRequired)
	{
		subs.GET("/my-subscriptions", h.MySubscriptions)
		subs.GET("/my-subscribers", h.MySubscribers)
		subs.POST("/subscribe", h.Subscribe)
		subs.POST("/:subscriptionId/renew", h.RenewSubscription)
		subs.POST("/:subscriptionId/cancel", h.CancelSubscription)
		subs.GET("/status/:creatorId", h.SubscriptionStatus)
		subs.GET("/tiers/:creatorId", h.ListTiers)
		subs.POST("/tiers", h.CreateTier)
		subs.PUT("/tiers/:tierId", h.UpdateTier)
		subs.DELETE("/tiers/:tierId", h.DeleteTier)
	}

	txs := r.Group("/transactions", authRequired)
	{
		txs.GET("/my-transactions", h.MyTransactions)
		txs.GET("/earnings/summary", h.EarningsSummary)
		txs.GET("/earnings/:period", h.EarningsByPeriod)
		txs.GET("/:transactionId", h.GetTransaction)
	}

	chain := r.Group("/blockchain")
	{
		chain.POST("/verify-transaction", h.VerifyTransaction)
		chain.POST("/verify-signature", h.VerifySignature)
		chain.POST("/process-payment", authRequired, paymentLimit, h.ProcessPayment)
		chain.GET("/nonce", authRequired, h.WalletNonce)
		chain.POST("/connect-wallet", authRequired, h.ConnectWallet)
		chain.GET("/wallet-status", authRequired, h.WalletStatus)
	}
}
