package services

import (
	"context"
	"time"

	"creatorhub/internal/apperrors"
	"creatorhub/internal/models"
)

// Access reasons, in decision order.
const (
	ReasonPublic        = "public"
	ReasonOwner         = "owner"
	ReasonSubscription  = "subscription"
	ReasonPurchase      = "purchase"
	ReasonNoEntitlement = "no-entitlement"
)

// AccessDecision is the outcome of evaluating a viewer against a piece
// of content. When access is denied, Preview carries the non-paywalled
// projection and Content is nil so the payload cannot leak.
type AccessDecision struct {
	Granted bool   `json:"has_access"`
	Reason  string `json:"reason"`

	Content *models.Content        `json:"content,omitempty"`
	Preview *models.ContentPreview `json:"preview,omitempty"`

	Subscription *models.Subscription `json:"subscription,omitempty"`
	Transaction  *models.Transaction  `json:"transaction,omitempty"`
}

// AccessService decides whether a user may view a piece of content.
// Every call re-reads current subscription and transaction state; there
// is no caching layer.
type AccessService struct {
	content ContentStore
	subs    SubscriptionStore
	txs     TransactionStore
	clock   func() time.Time
}

func NewAccessService(content ContentStore, subs SubscriptionStore, txs TransactionStore) *AccessService {
	return &AccessService{
		content: content,
		subs:    subs,
		txs:     txs,
		clock:   time.Now,
	}
}

// Evaluate applies the access rules in priority order: public content,
// creator ownership, active unexpired subscription, completed content
// purchase. First match wins.
func (s *AccessService) Evaluate(ctx context.Context, viewerID, contentID uint) (*AccessDecision, error) {
	content, err := s.content.GetContentByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.NotFound("content not found")
	}

	if content.IsPublic {
		return &AccessDecision{Granted: true, Reason: ReasonPublic, Content: content}, nil
	}

	if content.CreatorID == viewerID {
		return &AccessDecision{Granted: true, Reason: ReasonOwner, Content: content}, nil
	}

	sub, err := s.subs.GetActiveSubscription(ctx, viewerID, content.CreatorID, s.clock())
	if err != nil {
		return nil, err
	}
	if sub != nil {
		return &AccessDecision{
			Granted:      true,
			Reason:       ReasonSubscription,
			Content:      content,
			Subscription: sub,
		}, nil
	}

	purchase, err := s.txs.FindCompletedPurchase(ctx, viewerID, content.CreatorID, content.ID)
	if err != nil {
		return nil, err
	}
	if purchase != nil {
		return &AccessDecision{
			Granted:     true,
			Reason:      ReasonPurchase,
			Content:     content,
			Transaction: purchase,
		}, nil
	}

	preview := content.Preview(content.Creator.Summary())
	return &AccessDecision{
		Granted: false,
		Reason:  ReasonNoEntitlement,
		Preview: &preview,
	}, nil
}
