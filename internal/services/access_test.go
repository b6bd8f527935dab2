package services

import (
	"context"
	"testing"
	"time"

	"creatorhub/internal/apperrors"
	"creatorhub/internal/models"
)

func newAccessFixture() (*AccessService, *fakeContentStore, *fakeSubscriptionStore, *fakeTransactionStore, time.Time) {
	content := newFakeContentStore()
	txs := newFakeTransactionStore()
	subs := newFakeSubscriptionStore(txs)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewAccessService(content, subs, txs)
	svc.clock = func() time.Time { return now }
	return svc, content, subs, txs, now
}

func TestEvaluatePublicContent(t *testing.T) {
	svc, content, _, _, _ := newAccessFixture()
	item := content.add(models.Content{CreatorID: 1, Title: "Open post", IsPublic: true})

	// Even an anonymous viewer gets public content in full.
	decision, err := svc.Evaluate(context.Background(), 0, item.ID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !decision.Granted || decision.Reason != ReasonPublic {
		t.Fatalf("got granted=%v reason=%q, want public grant", decision.Granted, decision.Reason)
	}
	if decision.Content == nil || decision.Content.ID != item.ID {
		t.Fatalf("public grant should carry the content")
	}
}

func TestEvaluateOwner(t *testing.T) {
	svc, content, _, _, _ := newAccessFixture()
	item := content.add(models.Content{CreatorID: 7, Title: "Private post"})

	decision, err := svc.Evaluate(context.Background(), 7, item.ID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !decision.Granted || decision.Reason != ReasonOwner {
		t.Fatalf("got granted=%v reason=%q, want owner grant", decision.Granted, decision.Reason)
	}
}

func TestEvaluateSubscription(t *testing.T) {
	svc, content, subs, _, now := newAccessFixture()
	item := content.add(models.Content{CreatorID: 7, Title: "Subscriber post"})

	tests := []struct {
		name        string
		status      string
		expiresAt   time.Time
		wantGranted bool
	}{
		{"active unexpired", models.SubscriptionActive, now.Add(24 * time.Hour), true},
		{"active expired", models.SubscriptionActive, now.Add(-time.Hour), false},
		{"exactly at expiry", models.SubscriptionActive, now, false},
		{"cancelled but paid up", models.SubscriptionCancelled, now.Add(24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := subs.add(models.Subscription{
				SubscriberID: 3,
				CreatorID:    7,
				Status:       tt.status,
				ExpiresAt:    tt.expiresAt,
			})
			defer delete(subs.subs, sub.ID)

			decision, err := svc.Evaluate(context.Background(), 3, item.ID)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if decision.Granted != tt.wantGranted {
				t.Fatalf("got granted=%v, want %v", decision.Granted, tt.wantGranted)
			}
			if tt.wantGranted && decision.Reason != ReasonSubscription {
				t.Fatalf("got reason=%q, want %q", decision.Reason, ReasonSubscription)
			}
		})
	}
}

func TestEvaluatePurchase(t *testing.T) {
	svc, content, _, txs, _ := newAccessFixture()
	item := content.add(models.Content{CreatorID: 7, Title: "Paid post"})

	contentID := item.ID
	txs.add(models.Transaction{
		SenderID:    3,
		RecipientID: 7,
		TxHash:      "0x" + repeatHex("a", 64),
		Type:        models.TransactionPurchase,
		Status:      models.TransactionCompleted,
		ContentID:   &contentID,
	})

	decision, err := svc.Evaluate(context.Background(), 3, item.ID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !decision.Granted || decision.Reason != ReasonPurchase {
		t.Fatalf("got granted=%v reason=%q, want purchase grant", decision.Granted, decision.Reason)
	}
	if decision.Transaction == nil {
		t.Fatalf("purchase grant should carry the funding transaction")
	}
}

func TestEvaluatePendingPurchaseDoesNotGrant(t *testing.T) {
	svc, content, _, txs, _ := newAccessFixture()
	item := content.add(models.Content{CreatorID: 7, Title: "Paid post"})

	contentID := item.ID
	txs.add(models.Transaction{
		SenderID:    3,
		RecipientID: 7,
		TxHash:      "0x" + repeatHex("b", 64),
		Type:        models.TransactionPurchase,
		Status:      models.TransactionPending,
		ContentID:   &contentID,
	})

	decision, err := svc.Evaluate(context.Background(), 3, item.ID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if decision.Granted {
		t.Fatalf("pending purchase must not grant access")
	}
}

func TestEvaluateDeniedReturnsPreviewOnly(t *testing.T) {
	svc, content, _, _, _ := newAccessFixture()
	item := content.add(models.Content{
		CreatorID:  7,
		Title:      "Locked post",
		ContentURL: "https://cdn.example.com/secret.mp4",
	})

	decision, err := svc.Evaluate(context.Background(), 3, item.ID)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if decision.Granted || decision.Reason != ReasonNoEntitlement {
		t.Fatalf("got granted=%v reason=%q, want denial", decision.Granted, decision.Reason)
	}
	if decision.Content != nil {
		t.Fatalf("denied decision must not carry the full content")
	}
	if decision.Preview == nil || decision.Preview.Title != "Locked post" {
		t.Fatalf("denied decision should carry the preview")
	}
}

func TestEvaluateMissingContent(t *testing.T) {
	svc, _, _, _, _ := newAccessFixture()

	_, err := svc.Evaluate(context.Background(), 3, 999)
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("got %v, want not-found", err)
	}
}

func repeatHex(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
