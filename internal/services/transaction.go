package services

import (
	"context"
	"time"

	"creatorhub/internal/apperrors"
	"creatorhub/internal/models"
)

// TransactionEntry pairs a transaction with party summaries for the
// listing endpoints.
type TransactionEntry struct {
	models.Transaction
	Sender    models.UserSummary `json:"sender"`
	Recipient models.UserSummary `json:"recipient"`
}

// TransactionService exposes read access to the payment ledger.
type TransactionService struct {
	txs   TransactionStore
	users UserStore
	clock func() time.Time
}

func NewTransactionService(txs TransactionStore, users UserStore) *TransactionService {
	return &TransactionService{txs: txs, users: users, clock: time.Now}
}

// ListMine returns transactions the user sent or received.
func (s *TransactionService) ListMine(ctx context.Context, userID uint, page, limit int) ([]TransactionEntry, Pagination, error) {
	page, limit = normalizePage(page, limit)
	txs, total, err := s.txs.ListTransactionsByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	result := make([]TransactionEntry, 0, len(txs))
	for _, tx := range txs {
		result = append(result, s.entry(ctx, tx))
	}
	return result, NewPagination(total, page, limit), nil
}

// Get returns a transaction; only its sender or recipient may view it.
func (s *TransactionService) Get(ctx context.Context, actorID, txID uint) (*TransactionEntry, error) {
	tx, err := s.txs.GetTransactionByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperrors.NotFound("transaction not found")
	}
	if tx.SenderID != actorID && tx.RecipientID != actorID {
		return nil, apperrors.Forbidden("you are not a party to this transaction")
	}

	entry := s.entry(ctx, *tx)
	return &entry, nil
}

// EarningsSummary aggregates a creator's completed incoming payments.
func (s *TransactionService) EarningsSummary(ctx context.Context, userID uint) ([]models.EarningsRow, error) {
	if err := s.requireCreator(ctx, userID); err != nil {
		return nil, err
	}
	return s.txs.EarningsSummary(ctx, userID)
}

// EarningsByPeriod aggregates a creator's completed incoming payments
// over the trailing day, week, month or year.
func (s *TransactionService) EarningsByPeriod(ctx context.Context, userID uint, period string) ([]models.EarningsRow, error) {
	if err := s.requireCreator(ctx, userID); err != nil {
		return nil, err
	}

	now := s.clock()
	var since time.Time
	switch period {
	case "day":
		since = now.AddDate(0, 0, -1)
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	case "year":
		since = now.AddDate(-1, 0, 0)
	default:
		return nil, apperrors.Validation("period must be day, week, month or year")
	}
	return s.txs.EarningsSince(ctx, userID, since)
}

func (s *TransactionService) requireCreator(ctx context.Context, userID uint) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || !user.IsCreator() {
		return apperrors.Forbidden("only creators can view earnings")
	}
	return nil
}

func (s *TransactionService) entry(ctx context.Context, tx models.Transaction) TransactionEntry {
	entry := TransactionEntry{Transaction: tx}
	if sender, err := s.users.GetUserByID(ctx, tx.SenderID); err == nil && sender != nil {
		entry.Sender = sender.Summary()
	}
	if recipient, err := s.users.GetUserByID(ctx, tx.RecipientID); err == nil && recipient != nil {
		entry.Recipient = recipient.Summary()
	}
	return entry
}
