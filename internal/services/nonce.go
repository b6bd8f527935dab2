package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const nonceTTL = 5 * time.Minute

// NonceService hands out one-time wallet nonces and tracks per-user
// payment submission rate limits, both backed by Redis.
type NonceService struct {
	client *redis.Client
}

func NewNonceService(client *redis.Client) *NonceService {
	return &NonceService{client: client}
}

// IssueNonce stores a fresh nonce for the user, replacing any previous
// one. The nonce expires after five minutes.
func (s *NonceService) IssueNonce(ctx context.Context, userID uint) (string, error) {
	nonce := uuid.NewString()
	key := nonceKey(userID)
	if err := s.client.Set(ctx, key, nonce, nonceTTL).Err(); err != nil {
		return "", err
	}
	return nonce, nil
}

// ConsumeNonce checks the presented nonce against the stored one and
// deletes it; a nonce can be used exactly once.
func (s *NonceService) ConsumeNonce(ctx context.Context, userID uint, nonce string) (bool, error) {
	key := nonceKey(userID)
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if stored != nonce {
		return false, nil
	}
	return true, s.client.Del(ctx, key).Err()
}

// CheckRateLimit reports whether the user is inside the payment
// submission rate-limit window.
func (s *NonceService) CheckRateLimit(ctx context.Context, userID uint) (bool, error) {
	exists, err := s.client.Exists(ctx, rateLimitKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// SetRateLimit opens a rate-limit window for the user.
func (s *NonceService) SetRateLimit(ctx context.Context, userID uint, window time.Duration) error {
	return s.client.Set(ctx, rateLimitKey(userID), "1", window).Err()
}

func nonceKey(userID uint) string {
	return fmt.Sprintf("wallet_nonce:%d", userID)
}

func rateLimitKey(userID uint) string {
	return fmt.Sprintf("payment_rate_limit:%d", userID)
}
