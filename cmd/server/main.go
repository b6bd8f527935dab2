package main

import (
	"log"
	"time"

	"creatorhub/internal/api"
	"creatorhub/internal/blockchain"
	"creatorhub/internal/config"
	"creatorhub/internal/database"
	"creatorhub/internal/metrics"
	"creatorhub/internal/services"
	"creatorhub/pkg/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatal("Failed to initialize config:", err)
	}

	// Initialize logging
	logging.InitLogging()

	// Initialize metrics
	metrics.InitMetrics()

	// Initialize database
	store, err := database.InitDatabase()
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer store.Close()

	// Initialize Redis
	redisClient, err := database.InitRedis()
	if err != nil {
		log.Fatal("Failed to initialize Redis:", err)
	}
	defer redisClient.Close()

	// Connect to the Ethereum RPC provider
	chain, err := blockchain.Dial(config.AppConfig.EthereumRPCURL)
	if err != nil {
		log.Fatal("Failed to connect to Ethereum RPC:", err)
	}

	// Wire services
	notifier := services.NewNotifier()
	userService := services.NewUserService(store, config.AppConfig.JWTSecret, time.Duration(config.AppConfig.TokenTTLHours)*time.Hour)
	contentService := services.NewContentService(store)
	paymentService := services.NewPaymentService(store, store, store, store, store, chain, notifier, config.AppConfig.SubscriptionDays)
	subscriptionService := services.NewSubscriptionService(store, store, store, paymentService)
	transactionService := services.NewTransactionService(store, store)
	accessService := services.NewAccessService(store, store, store)
	nonceService := services.NewNonceService(redisClient)

	handler := api.NewHandler(
		userService,
		contentService,
		subscriptionService,
		transactionService,
		paymentService,
		accessService,
		nonceService,
		chain,
	)

	// Set Gin mode
	gin.SetMode(config.AppConfig.Mode)

	// Create Gin engine
	r := gin.Default()

	// Setup routes
	handler.SetupRoutes(r, config.AppConfig)

	// Start server
	port := config.AppConfig.Port
	logging.Infof("Starting server on port %s", port)

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
