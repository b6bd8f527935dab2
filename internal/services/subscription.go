package services

import (
	"context"
	"time"

	"creatorhub/internal/apperrors"
	"creatorhub/internal/models"

	"github.com/shopspring/decimal"
)

// SubscriptionWithCreator pairs a subscription with its creator's
// public summary.
type SubscriptionWithCreator struct {
	models.Subscription
	Creator models.UserSummary `json:"creator"`
}

// SubscriberEntry pairs a subscription with the subscriber's public
// summary, for the creator-facing listing.
type SubscriberEntry struct {
	models.Subscription
	Subscriber models.UserSummary `json:"subscriber"`
}

// SubscriptionStatus is the answer to "am I subscribed to this
// creator?". IsSubscribed requires active status and an unexpired
// window.
type SubscriptionStatus struct {
	IsSubscribed bool                 `json:"is_subscribed"`
	Subscription *models.Subscription `json:"subscription,omitempty"`
	IsExpired    bool                 `json:"is_expired,omitempty"`
}

// SubscriptionService manages subscriber/creator relationships and
// creator tiers. Payments funding subscriptions flow through the
// payment service.
type SubscriptionService struct {
	users    UserStore
	subs     SubscriptionStore
	tiers    TierStore
	payments *PaymentService
	clock    func() time.Time
}

func NewSubscriptionService(users UserStore, subs SubscriptionStore, tiers TierStore, payments *PaymentService) *SubscriptionService {
	return &SubscriptionService{
		users:    users,
		subs:     subs,
		tiers:    tiers,
		payments: payments,
		clock:    time.Now,
	}
}

// ListMySubscriptions returns the user's subscriptions with creator
// summaries, newest first.
func (s *SubscriptionService) ListMySubscriptions(ctx context.Context, subscriberID uint) ([]SubscriptionWithCreator, error) {
	subs, err := s.subs.ListSubscriptionsBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, err
	}

	result := make([]SubscriptionWithCreator, 0, len(subs))
	for _, sub := range subs {
		entry := SubscriptionWithCreator{Subscription: sub}
		if creator, err := s.users.GetUserByID(ctx, sub.CreatorID); err == nil && creator != nil {
			entry.Creator = creator.SummaryWithBio()
		}
		result = append(result, entry)
	}
	return result, nil
}

// ListMySubscribers returns a creator's active subscribers. Only
// creators may call this.
func (s *SubscriptionService) ListMySubscribers(ctx context.Context, userID uint, page, limit int) ([]SubscriberEntry, Pagination, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, Pagination{}, err
	}
	if user == nil || !user.IsCreator() {
		return nil, Pagination{}, apperrors.Forbidden("only creators can access their subscribers")
	}

	page, limit = normalizePage(page, limit)
	subs, total, err := s.subs.ListActiveSubscribers(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	result := make([]SubscriberEntry, 0, len(subs))
	for _, sub := range subs {
		entry := SubscriberEntry{Subscription: sub}
		if subscriber, err := s.users.GetUserByID(ctx, sub.SubscriberID); err == nil && subscriber != nil {
			entry.Subscriber = subscriber.Summary()
		}
		result = append(result, entry)
	}
	return result, NewPagination(total, page, limit), nil
}

// SubscribeResult carries both rows produced by a subscribe or renew.
type SubscribeResult struct {
	Subscription *models.Subscription `json:"subscription"`
	Transaction  *models.Transaction  `json:"transaction"`
}

// Subscribe verifies the funding transaction and creates or renews the
// subscription to creatorID. Renewing never creates a second row for
// the pair.
func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberID, creatorID uint, tierID *uint, txHash string, amount decimal.Decimal, currency string) (*SubscribeResult, error) {
	creator, err := s.users.GetCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, apperrors.NotFound("creator not found")
	}
	if subscriberID == creatorID {
		return nil, apperrors.Validation("you cannot subscribe to yourself")
	}

	tx, err := s.payments.RecordSubscriptionPayment(ctx, subscriberID, creatorID, tierID, txHash, amount, currency)
	if err != nil {
		return nil, err
	}

	sub, err := s.subs.GetSubscription(ctx, subscriberID, creatorID)
	if err != nil {
		return nil, err
	}
	return &SubscribeResult{Subscription: sub, Transaction: tx}, nil
}

// Renew funds an existing subscription for another window.
func (s *SubscriptionService) Renew(ctx context.Context, subscriberID, subscriptionID uint, txHash string, amount decimal.Decimal, currency string) (*SubscribeResult, error) {
	sub, err := s.subs.GetSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.SubscriberID != subscriberID {
		return nil, apperrors.NotFound("subscription not found")
	}

	tx, err := s.payments.RecordSubscriptionPayment(ctx, subscriberID, sub.CreatorID, sub.TierID, txHash, amount, currency)
	if err != nil {
		return nil, err
	}

	renewed, err := s.subs.GetSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	return &SubscribeResult{Subscription: renewed, Transaction: tx}, nil
}

// Cancel marks the subscription cancelled. The expiry is left in place;
// access lapses when the already-paid window runs out.
func (s *SubscriptionService) Cancel(ctx context.Context, subscriberID, subscriptionID uint) (*models.Subscription, error) {
	sub, err := s.subs.GetSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.SubscriberID != subscriberID {
		return nil, apperrors.NotFound("subscription not found")
	}

	sub.Status = models.SubscriptionCancelled
	if err := s.subs.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Status reports whether subscriberID currently has access to
// creatorID's subscriber content.
func (s *SubscriptionService) Status(ctx context.Context, subscriberID, creatorID uint) (*SubscriptionStatus, error) {
	creator, err := s.users.GetCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, apperrors.NotFound("creator not found")
	}

	sub, err := s.subs.GetSubscription(ctx, subscriberID, creatorID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &SubscriptionStatus{IsSubscribed: false}, nil
	}

	now := s.clock()
	return &SubscriptionStatus{
		IsSubscribed: sub.IsActive(now),
		Subscription: sub,
		IsExpired:    !sub.ExpiresAt.After(now),
	}, nil
}

type TierInput struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	Currency     string
	DurationDays int
}

// CreateTier adds a subscription plan for a creator.
func (s *SubscriptionService) CreateTier(ctx context.Context, userID uint, in TierInput) (*models.SubscriptionTier, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsCreator() {
		return nil, apperrors.Forbidden("only creators can manage tiers")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	tier := &models.SubscriptionTier{
		CreatorID:    userID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Currency:     in.Currency,
		DurationDays: in.DurationDays,
	}
	if tier.DurationDays <= 0 {
		tier.DurationDays = 30
	}
	if err := s.tiers.CreateTier(ctx, tier); err != nil {
		return nil, err
	}
	return tier, nil
}

// UpdateTier modifies a tier; only its creator may do so.
func (s *SubscriptionService) UpdateTier(ctx context.Context, userID, tierID uint, in TierInput) (*models.SubscriptionTier, error) {
	tier, err := s.getOwnedTier(ctx, userID, tierID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	tier.Name = in.Name
	tier.Description = in.Description
	tier.Price = in.Price
	tier.Currency = in.Currency
	if in.DurationDays > 0 {
		tier.DurationDays = in.DurationDays
	}
	if err := s.tiers.UpdateTier(ctx, tier); err != nil {
		return nil, err
	}
	return tier, nil
}

// DeleteTier removes a tier; only its creator may do so.
func (s *SubscriptionService) DeleteTier(ctx context.Context, userID, tierID uint) error {
	if _, err := s.getOwnedTier(ctx, userID, tierID); err != nil {
		return err
	}
	return s.tiers.DeleteTier(ctx, tierID)
}

// ListTiers returns a creator's subscription plans.
func (s *SubscriptionService) ListTiers(ctx context.Context, creatorID uint) ([]models.SubscriptionTier, error) {
	creator, err := s.users.GetCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, apperrors.NotFound("creator not found")
	}
	return s.tiers.ListTiersByCreator(ctx, creatorID)
}

func (s *SubscriptionService) getOwnedTier(ctx context.Context, userID, tierID uint) (*models.SubscriptionTier, error) {
	tier, err := s.tiers.GetTierByID(ctx, tierID)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, apperrors.TierNotFound("subscription tier not found")
	}
	if tier.CreatorID != userID {
		return nil, apperrors.Forbidden("you do not own this tier")
	}
	return tier, nil
}

func (in TierInput) validate() error {
	if in.Name == "" {
		return apperrors.Validation("tier name is required")
	}
	if !models.ValidCurrency(in.Currency) {
		return apperrors.Validation("unsupported currency")
	}
	if in.Price.IsNegative() {
		return apperrors.Validation("price cannot be negative")
	}
	return nil
}
