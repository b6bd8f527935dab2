package database

import (
	"context"
	"fmt"
	"time"

	"creatorhub/internal/config"
	"creatorhub/internal/models"
	"creatorhub/pkg/logging"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Store wraps the gorm handle and implements the store interfaces the
// services declare. It is passed explicitly instead of living in a
// package global so tests can substitute in-memory fakes.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// InitDatabase opens the relational store and runs migrations.
func InitDatabase() (*Store, error) {
	db, err := openGorm()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logging.Infof("Database connected successfully")
	return NewStore(db), nil
}

func openGorm() (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	}

	if dsn := config.AppConfig.DatabaseURL; dsn != "" {
		return gorm.Open(postgres.Open(dsn), gormConfig)
	}

	// Fallback to SQLite for development
	logging.Infof("Database URL not set, using SQLite for development")
	return gorm.Open(sqlite.Open("creatorhub.db"), gormConfig)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Content{},
		&models.SubscriptionTier{},
		&models.Subscription{},
		&models.Transaction{},
	)
}

// InitRedis connects to Redis and verifies the connection.
func InitRedis() (*redis.Client, error) {
	redisURL := config.AppConfig.RedisURL
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is not set")
	}

	logging.Infof("Connecting to Redis: %s", maskRedisURL(redisURL))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.Infof("Redis connected successfully")
	return client, nil
}

// maskRedisURL masks sensitive information in Redis URL for logging
func maskRedisURL(url string) string {
	if len(url) > 20 {
		return url[:10] + "***" + url[len(url)-10:]
	}
	return "***"
}

// Close closes the underlying SQL connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
