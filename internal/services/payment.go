package services

import (
	"context"
	"time"

	"creatorhub/internal/apperrors"
	"creatorhub/internal/blockchain"
	"creatorhub/internal/metrics"
	"creatorhub/internal/models"

	"github.com/shopspring/decimal"
)

// PaymentNotifier delivers best-effort side effects after a payment is
// recorded. Implementations must not block the request path.
type PaymentNotifier interface {
	PaymentReceived(creator, payer *models.User, tx *models.Transaction)
}

// RecordPaymentInput is the caller-declared payment metadata. Intent is
// derived from which optional field is set: ContentID means a content
// purchase, TierID a subscription, neither a tip.
type RecordPaymentInput struct {
	TxHash      string
	Amount      decimal.Decimal
	Currency    string
	RecipientID uint
	ContentID   *uint
	TierID      *uint
}

// PaymentService verifies a claimed on-chain transaction against the
// chain and materializes the corresponding ledger and subscription
// state. The receipt is used as a success oracle only; the recorded
// amount is the caller-supplied one.
type PaymentService struct {
	users    UserStore
	content  ContentStore
	tiers    TierStore
	subs     SubscriptionStore
	txs      TransactionStore
	chain    blockchain.ReceiptClient
	notifier PaymentNotifier

	subscriptionDays int
	clock            func() time.Time
}

func NewPaymentService(
	users UserStore,
	content ContentStore,
	tiers TierStore,
	subs SubscriptionStore,
	txs TransactionStore,
	chain blockchain.ReceiptClient,
	notifier PaymentNotifier,
	subscriptionDays int,
) *PaymentService {
	return &PaymentService{
		users:            users,
		content:          content,
		tiers:            tiers,
		subs:             subs,
		txs:              txs,
		chain:            chain,
		notifier:         notifier,
		subscriptionDays: subscriptionDays,
		clock:            time.Now,
	}
}

// RecordPayment confirms the transaction succeeded on-chain, writes the
// transaction row and, for subscription intents, creates or renews the
// (payer, creator) subscription. Nothing is persisted when the receipt
// is absent or failed.
func (s *PaymentService) RecordPayment(ctx context.Context, payerID uint, in RecordPaymentInput) (*models.Transaction, error) {
	return s.record(ctx, payerID, in, in.intent())
}

// RecordSubscriptionPayment is the subscribe/renew entry point: the
// same verification pipeline with the intent forced to subscription,
// so a tier-less subscribe still funds a subscription at the default
// window rather than being recorded as a tip.
func (s *PaymentService) RecordSubscriptionPayment(ctx context.Context, payerID, creatorID uint, tierID *uint, txHash string, amount decimal.Decimal, currency string) (*models.Transaction, error) {
	in := RecordPaymentInput{
		TxHash:      txHash,
		Amount:      amount,
		Currency:    currency,
		RecipientID: creatorID,
		TierID:      tierID,
	}
	return s.record(ctx, payerID, in, models.TransactionSubscription)
}

func (s *PaymentService) record(ctx context.Context, payerID uint, in RecordPaymentInput, intent string) (*models.Transaction, error) {
	tx, err := s.recordPayment(ctx, payerID, in, intent)
	if err != nil {
		metrics.PaymentsTotal.WithLabelValues(intent, "rejected").Inc()
		return nil, err
	}
	metrics.PaymentsTotal.WithLabelValues(intent, "completed").Inc()

	s.notify(ctx, tx)
	return tx, nil
}

func (s *PaymentService) recordPayment(ctx context.Context, payerID uint, in RecordPaymentInput, intent string) (*models.Transaction, error) {
	if !blockchain.ValidTxHash(in.TxHash) {
		return nil, apperrors.Validation("invalid transaction hash")
	}
	if !models.ValidCurrency(in.Currency) {
		return nil, apperrors.Validation("unsupported currency")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.Validation("amount must be positive")
	}

	recipient, err := s.users.GetUserByID(ctx, in.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, apperrors.NotFound("recipient not found")
	}

	// Resubmitting a hash must not double-credit; reject before the
	// chain lookup.
	existing, err := s.txs.GetTransactionByHash(ctx, in.TxHash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("transaction already recorded")
	}

	receipt, err := s.chain.Receipt(ctx, in.TxHash)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperrors.PendingOrUnknown("transaction is pending or not found")
	}
	if !receipt.Success {
		return nil, apperrors.TransactionFailed("transaction failed on-chain")
	}

	tx := &models.Transaction{
		SenderID:    payerID,
		RecipientID: in.RecipientID,
		Amount:      in.Amount,
		Currency:    in.Currency,
		TxHash:      in.TxHash,
		Type:        intent,
		Status:      models.TransactionCompleted,
		ContentID:   in.ContentID,
	}

	if intent != models.TransactionSubscription {
		if err := s.txs.CreateTransaction(ctx, tx); err != nil {
			return nil, err
		}
		return tx, nil
	}

	days := s.subscriptionDays
	if in.TierID != nil {
		tier, err := s.tiers.GetTierByID(ctx, *in.TierID)
		if err != nil {
			return nil, err
		}
		if tier == nil || tier.CreatorID != in.RecipientID {
			return nil, apperrors.TierNotFound("subscription tier not found")
		}
		if tier.DurationDays > 0 {
			days = tier.DurationDays
		}
	}

	expiresAt := s.clock().AddDate(0, 0, days)
	if _, err := s.subs.ApplySubscriptionPayment(ctx, tx, in.TierID, expiresAt); err != nil {
		return nil, err
	}
	return tx, nil
}

func (in RecordPaymentInput) intent() string {
	switch {
	case in.ContentID != nil:
		return models.TransactionPurchase
	case in.TierID != nil:
		return models.TransactionSubscription
	default:
		return models.TransactionTip
	}
}

func (s *PaymentService) notify(ctx context.Context, tx *models.Transaction) {
	if s.notifier == nil {
		return
	}
	creator, err := s.users.GetUserByID(ctx, tx.RecipientID)
	if err != nil || creator == nil {
		return
	}
	payer, err := s.users.GetUserByID(ctx, tx.SenderID)
	if err != nil || payer == nil {
		return
	}
	s.notifier.PaymentReceived(creator, payer, tx)
}
