package services

import (
	"context"
	"sort"
	"time"

	"creatorhub/internal/blockchain"
	"creatorhub/internal/models"
)

// In-memory store fakes. Each fake keeps rows in a map keyed by id and
// hands out copies so tests cannot mutate stored state by accident.

type fakeUserStore struct {
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[uint]*models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetCreator(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok || !u.IsCreator() {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdateUser(_ context.Context, user *models.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) add(user models.User) *models.User {
	if user.ID == 0 {
		user.ID = f.nextID
	}
	if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = &user
	return &user
}

type fakeContentStore struct {
	nextID  uint
	content map[uint]*models.Content
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{nextID: 1, content: make(map[uint]*models.Content)}
}

func (f *fakeContentStore) CreateContent(_ context.Context, content *models.Content) error {
	content.ID = f.nextID
	f.nextID++
	cp := *content
	f.content[content.ID] = &cp
	return nil
}

func (f *fakeContentStore) GetContentByID(_ context.Context, id uint) (*models.Content, error) {
	c, ok := f.content[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContentStore) UpdateContent(_ context.Context, content *models.Content) error {
	cp := *content
	f.content[content.ID] = &cp
	return nil
}

func (f *fakeContentStore) DeleteContent(_ context.Context, id uint) error {
	delete(f.content, id)
	return nil
}

func (f *fakeContentStore) ListPublicContent(_ context.Context, offset, limit int) ([]models.Content, int64, error) {
	var all []models.Content
	for _, c := range f.content {
		if c.IsPublic {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return window(all, offset, limit), int64(len(all)), nil
}

func (f *fakeContentStore) ListFeaturedContent(_ context.Context, limit int) ([]models.Content, error) {
	var all []models.Content
	for _, c := range f.content {
		if c.IsPublic && c.IsFeatured {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return window(all, 0, limit), nil
}

func (f *fakeContentStore) ListContentByCreator(_ context.Context, creatorID uint, offset, limit int) ([]models.Content, int64, error) {
	var all []models.Content
	for _, c := range f.content {
		if c.CreatorID == creatorID && c.IsPublic {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return window(all, offset, limit), int64(len(all)), nil
}

func (f *fakeContentStore) add(content models.Content) *models.Content {
	if content.ID == 0 {
		content.ID = f.nextID
	}
	if content.ID >= f.nextID {
		f.nextID = content.ID + 1
	}
	f.content[content.ID] = &content
	return &content
}

type fakeSubscriptionStore struct {
	nextID uint
	subs   map[uint]*models.Subscription
	txs    *fakeTransactionStore
}

func newFakeSubscriptionStore(txs *fakeTransactionStore) *fakeSubscriptionStore {
	return &fakeSubscriptionStore{nextID: 1, subs: make(map[uint]*models.Subscription), txs: txs}
}

func (f *fakeSubscriptionStore) GetSubscription(_ context.Context, subscriberID, creatorID uint) (*models.Subscription, error) {
	for _, s := range f.subs {
		if s.SubscriberID == subscriberID && s.CreatorID == creatorID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionStore) GetSubscriptionByID(_ context.Context, id uint) (*models.Subscription, error) {
	s, ok := f.subs[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubscriptionStore) GetActiveSubscription(_ context.Context, subscriberID, creatorID uint, now time.Time) (*models.Subscription, error) {
	for _, s := range f.subs {
		if s.SubscriberID == subscriberID && s.CreatorID == creatorID && s.Status == models.SubscriptionActive && s.ExpiresAt.After(now) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionStore) ListSubscriptionsBySubscriber(_ context.Context, subscriberID uint) ([]models.Subscription, error) {
	var all []models.Subscription
	for _, s := range f.subs {
		if s.SubscriberID == subscriberID {
			all = append(all, *s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, nil
}

func (f *fakeSubscriptionStore) ListActiveSubscribers(_ context.Context, creatorID uint, offset, limit int) ([]models.Subscription, int64, error) {
	var all []models.Subscription
	for _, s := range f.subs {
		if s.CreatorID == creatorID && s.Status == models.SubscriptionActive {
			all = append(all, *s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return window(all, offset, limit), int64(len(all)), nil
}

func (f *fakeSubscriptionStore) UpdateSubscription(_ context.Context, sub *models.Subscription) error {
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeSubscriptionStore) ApplySubscriptionPayment(ctx context.Context, txRecord *models.Transaction, tierID *uint, expiresAt time.Time) (*models.Subscription, error) {
	if err := f.txs.CreateTransaction(ctx, txRecord); err != nil {
		return nil, err
	}

	var sub *models.Subscription
	for _, s := range f.subs {
		if s.SubscriberID == txRecord.SenderID && s.CreatorID == txRecord.RecipientID {
			sub = s
			break
		}
	}
	if sub == nil {
		sub = &models.Subscription{
			SubscriberID: txRecord.SenderID,
			CreatorID:    txRecord.RecipientID,
		}
		sub.ID = f.nextID
		f.nextID++
		f.subs[sub.ID] = sub
	}

	sub.Status = models.SubscriptionActive
	sub.ExpiresAt = expiresAt
	if tierID != nil {
		sub.TierID = tierID
	}
	sub.LastTransactionID = &txRecord.ID

	txRecord.SubscriptionID = &sub.ID
	f.txs.update(txRecord)

	cp := *sub
	return &cp, nil
}

func (f *fakeSubscriptionStore) add(sub models.Subscription) *models.Subscription {
	if sub.ID == 0 {
		sub.ID = f.nextID
	}
	if sub.ID >= f.nextID {
		f.nextID = sub.ID + 1
	}
	f.subs[sub.ID] = &sub
	return &sub
}

type fakeTierStore struct {
	nextID uint
	tiers  map[uint]*models.SubscriptionTier
}

func newFakeTierStore() *fakeTierStore {
	return &fakeTierStore{nextID: 1, tiers: make(map[uint]*models.SubscriptionTier)}
}

func (f *fakeTierStore) CreateTier(_ context.Context, tier *models.SubscriptionTier) error {
	tier.ID = f.nextID
	f.nextID++
	cp := *tier
	f.tiers[tier.ID] = &cp
	return nil
}

func (f *fakeTierStore) GetTierByID(_ context.Context, id uint) (*models.SubscriptionTier, error) {
	t, ok := f.tiers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTierStore) ListTiersByCreator(_ context.Context, creatorID uint) ([]models.SubscriptionTier, error) {
	var all []models.SubscriptionTier
	for _, t := range f.tiers {
		if t.CreatorID == creatorID {
			all = append(all, *t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Price.LessThan(all[j].Price) })
	return all, nil
}

func (f *fakeTierStore) UpdateTier(_ context.Context, tier *models.SubscriptionTier) error {
	cp := *tier
	f.tiers[tier.ID] = &cp
	return nil
}

func (f *fakeTierStore) DeleteTier(_ context.Context, id uint) error {
	delete(f.tiers, id)
	return nil
}

func (f *fakeTierStore) add(tier models.SubscriptionTier) *models.SubscriptionTier {
	if tier.ID == 0 {
		tier.ID = f.nextID
	}
	if tier.ID >= f.nextID {
		f.nextID = tier.ID + 1
	}
	f.tiers[tier.ID] = &tier
	return &tier
}

type fakeTransactionStore struct {
	nextID uint
	txs    map[uint]*models.Transaction
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{nextID: 1, txs: make(map[uint]*models.Transaction)}
}

func (f *fakeTransactionStore) CreateTransaction(_ context.Context, t *models.Transaction) error {
	t.ID = f.nextID
	f.nextID++
	cp := *t
	f.txs[t.ID] = &cp
	return nil
}

func (f *fakeTransactionStore) GetTransactionByID(_ context.Context, id uint) (*models.Transaction, error) {
	t, ok := f.txs[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransactionStore) GetTransactionByHash(_ context.Context, txHash string) (*models.Transaction, error) {
	for _, t := range f.txs {
		if t.TxHash == txHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTransactionStore) FindCompletedPurchase(_ context.Context, buyerID, creatorID, contentID uint) (*models.Transaction, error) {
	for _, t := range f.txs {
		if t.SenderID == buyerID && t.RecipientID == creatorID &&
			t.ContentID != nil && *t.ContentID == contentID &&
			t.Type == models.TransactionPurchase && t.Status == models.TransactionCompleted {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTransactionStore) ListTransactionsByUser(_ context.Context, userID uint, offset, limit int) ([]models.Transaction, int64, error) {
	var all []models.Transaction
	for _, t := range f.txs {
		if t.SenderID == userID || t.RecipientID == userID {
			all = append(all, *t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return window(all, offset, limit), int64(len(all)), nil
}

func (f *fakeTransactionStore) EarningsSummary(_ context.Context, creatorID uint) ([]models.EarningsRow, error) {
	return f.earnings(creatorID, time.Time{}), nil
}

func (f *fakeTransactionStore) EarningsSince(_ context.Context, creatorID uint, since time.Time) ([]models.EarningsRow, error) {
	return f.earnings(creatorID, since), nil
}

func (f *fakeTransactionStore) earnings(creatorID uint, since time.Time) []models.EarningsRow {
	byKey := make(map[string]*models.EarningsRow)
	var keys []string
	for _, t := range f.txs {
		if t.RecipientID != creatorID || t.Status != models.TransactionCompleted {
			continue
		}
		if !since.IsZero() && t.CreatedAt.Before(since) {
			continue
		}
		key := t.Currency + "/" + t.Type
		row, ok := byKey[key]
		if !ok {
			row = &models.EarningsRow{Currency: t.Currency, Type: t.Type}
			byKey[key] = row
			keys = append(keys, key)
		}
		row.Total = row.Total.Add(t.Amount)
		row.Count++
	}
	sort.Strings(keys)
	rows := make([]models.EarningsRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, *byKey[key])
	}
	return rows
}

func (f *fakeTransactionStore) update(t *models.Transaction) {
	cp := *t
	f.txs[t.ID] = &cp
}

func (f *fakeTransactionStore) add(t models.Transaction) *models.Transaction {
	if t.ID == 0 {
		t.ID = f.nextID
	}
	if t.ID >= f.nextID {
		f.nextID = t.ID + 1
	}
	f.txs[t.ID] = &t
	return &t
}

func (f *fakeTransactionStore) count() int {
	return len(f.txs)
}

// fakeChain serves canned receipts per hash. Hashes without an entry
// behave like pending/unknown transactions.
type fakeChain struct {
	receipts map[string]*blockchain.Receipt
	err      error
	calls    int
}

func newFakeChain() *fakeChain {
	return &fakeChain{receipts: make(map[string]*blockchain.Receipt)}
}

func (f *fakeChain) Receipt(_ context.Context, txHash string) (*blockchain.Receipt, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.receipts[txHash], nil
}

func (f *fakeChain) confirm(txHash string) {
	f.receipts[txHash] = &blockchain.Receipt{Success: true, BlockNumber: 100, Confirmations: 12}
}

func (f *fakeChain) fail(txHash string) {
	f.receipts[txHash] = &blockchain.Receipt{Success: false, BlockNumber: 100, Confirmations: 12}
}

func window[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
