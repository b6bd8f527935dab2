package services

import (
	"context"
	"testing"
	"time"

	"creatorhub/internal/apperrors"
	"creatorhub/internal/models"

	"github.com/shopspring/decimal"
)

func newTransactionFixture() (*TransactionService, *fakeUserStore, *fakeTransactionStore, time.Time) {
	users := newFakeUserStore()
	txs := newFakeTransactionStore()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTransactionService(txs, users)
	svc.clock = func() time.Time { return now }

	users.add(models.User{BaseModel: models.BaseModel{ID: 1}, Username: "fan", Role: models.RoleSubscriber})
	users.add(models.User{BaseModel: models.BaseModel{ID: 2}, Username: "artist", Role: models.RoleCreator})
	return svc, users, txs, now
}

func TestGetTransactionPartyOnly(t *testing.T) {
	svc, _, txs, _ := newTransactionFixture()
	tx := txs.add(models.Transaction{
		SenderID:    1,
		RecipientID: 2,
		TxHash:      validHash("a"),
		Type:        models.TransactionTip,
		Status:      models.TransactionCompleted,
	})

	if _, err := svc.Get(context.Background(), 1, tx.ID); err != nil {
		t.Fatalf("sender Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), 2, tx.ID); err != nil {
		t.Fatalf("recipient Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), 3, tx.ID); !apperrors.Is(err, apperrors.KindForbidden) {
		t.Fatalf("got %v, want forbidden for a stranger", err)
	}
	if _, err := svc.Get(context.Background(), 1, 999); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("got %v, want not-found", err)
	}
}

func TestListMine(t *testing.T) {
	svc, _, txs, _ := newTransactionFixture()
	txs.add(models.Transaction{SenderID: 1, RecipientID: 2, TxHash: validHash("a"), Type: models.TransactionTip, Status: models.TransactionCompleted})
	txs.add(models.Transaction{SenderID: 2, RecipientID: 1, TxHash: validHash("b"), Type: models.TransactionTip, Status: models.TransactionCompleted})
	txs.add(models.Transaction{SenderID: 3, RecipientID: 4, TxHash: validHash("c"), Type: models.TransactionTip, Status: models.TransactionCompleted})

	entries, pagination, err := svc.ListMine(context.Background(), 1, 1, 10)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(entries) != 2 || pagination.Total != 2 {
		t.Fatalf("got %d entries total %d, want both directions and nothing else", len(entries), pagination.Total)
	}
}

func TestEarningsRequireCreator(t *testing.T) {
	svc, _, _, _ := newTransactionFixture()

	if _, err := svc.EarningsSummary(context.Background(), 1); !apperrors.Is(err, apperrors.KindForbidden) {
		t.Fatalf("got %v, want forbidden for a subscriber", err)
	}
	if _, err := svc.EarningsByPeriod(context.Background(), 1, "week"); !apperrors.Is(err, apperrors.KindForbidden) {
		t.Fatalf("got %v, want forbidden for a subscriber", err)
	}
}

func TestEarningsSummary(t *testing.T) {
	svc, _, txs, _ := newTransactionFixture()
	txs.add(models.Transaction{SenderID: 1, RecipientID: 2, Amount: decimal.NewFromFloat(0.5), Currency: "ETH", TxHash: validHash("a"), Type: models.TransactionTip, Status: models.TransactionCompleted})
	txs.add(models.Transaction{SenderID: 1, RecipientID: 2, Amount: decimal.NewFromFloat(0.25), Currency: "ETH", TxHash: validHash("b"), Type: models.TransactionTip, Status: models.TransactionCompleted})
	txs.add(models.Transaction{SenderID: 1, RecipientID: 2, Amount: decimal.NewFromInt(20), Currency: "USDC", TxHash: validHash("c"), Type: models.TransactionSubscription, Status: models.TransactionCompleted})
	// Pending rows never count as earnings.
	txs.add(models.Transaction{SenderID: 1, RecipientID: 2, Amount: decimal.NewFromInt(99), Currency: "ETH", TxHash: validHash("d"), Type: models.TransactionTip, Status: models.TransactionPending})

	rows, err := svc.EarningsSummary(context.Background(), 2)
	if err != nil {
		t.Fatalf("EarningsSummary: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d buckets, want 2", len(rows))
	}
	for _, row := range rows {
		switch row.Currency {
		case "ETH":
			if !row.Total.Equal(decimal.NewFromFloat(0.75)) || row.Count != 2 {
				t.Fatalf("got ETH bucket %+v, want 0.75 over 2", row)
			}
		case "USDC":
			if !row.Total.Equal(decimal.NewFromInt(20)) || row.Count != 1 {
				t.Fatalf("got USDC bucket %+v, want 20 over 1", row)
			}
		}
	}
}

func TestEarningsByPeriod(t *testing.T) {
	svc, _, txs, now := newTransactionFixture()

	recent := txs.add(models.Transaction{SenderID: 1, RecipientID: 2, Amount: decimal.NewFromInt(1), Currency: "ETH", TxHash: validHash("a"), Type: models.TransactionTip, Status: models.TransactionCompleted})
	recent.CreatedAt = now.Add(-2 * time.Hour)
	txs.update(recent)

	old := txs.add(models.Transaction{SenderID: 1, RecipientID: 2, Amount: decimal.NewFromInt(5), Currency: "ETH", TxHash: validHash("b"), Type: models.TransactionTip, Status: models.TransactionCompleted})
	old.CreatedAt = now.AddDate(0, 0, -10)
	txs.update(old)

	rows, err := svc.EarningsByPeriod(context.Background(), 2, "day")
	if err != nil {
		t.Fatalf("EarningsByPeriod: %v", err)
	}
	if len(rows) != 1 || !rows[0].Total.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("got %+v, want only the trailing-day row", rows)
	}

	if _, err := svc.EarningsByPeriod(context.Background(), 2, "decade"); !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("got %v, want validation error for unknown period", err)
	}
}
