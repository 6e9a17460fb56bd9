package subscription

import (
	"Menu-Builder-Backend/entities"
	"context"
	"maps"
	"sync"
	"time"

	"gorm.io/gorm"
)

// InMemorySubscriptionRepository backs service tests and local runs without
// Postgres. A failed Transaction restores both maps.
type InMemorySubscriptionRepository struct {
	txMu          sync.Mutex
	mu            sync.Mutex
	subscriptions map[string]entities.Subscription
	transactions  map[string]entities.SubscriptionTransaction

	// FailUpsert, when set, is consulted before every subscription upsert.
	FailUpsert func(subscription *entities.Subscription) error
}

func NewInMemorySubscriptionRepository() *InMemorySubscriptionRepository {
	return &InMemorySubscriptionRepository{
		subscriptions: make(map[string]entities.Subscription),
		transactions:  make(map[string]entities.SubscriptionTransaction),
	}
}

func (r *InMemorySubscriptionRepository) Transaction(_ context.Context, fn func(repo SubscriptionRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	subscriptions := maps.Clone(r.subscriptions)
	transactions := maps.Clone(r.transactions)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.subscriptions = subscriptions
		r.transactions = transactions
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *InMemorySubscriptionRepository) GetSubscriptionByUserID(_ context.Context, userID string) (*entities.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.subscriptions[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *InMemorySubscriptionRepository) UpsertSubscription(_ context.Context, subscription *entities.Subscription) error {
	if r.FailUpsert != nil {
		if err := r.FailUpsert(subscription); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if existing, ok := r.subscriptions[subscription.UserID.String()]; ok {
		subscription.CreatedAt = existing.CreatedAt
	} else {
		subscription.CreatedAt = now
	}
	subscription.UpdatedAt = now
	r.subscriptions[subscription.UserID.String()] = *subscription
	return nil
}

func (r *InMemorySubscriptionRepository) CreateTransaction(_ context.Context, transaction *entities.SubscriptionTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[transaction.OrderID]; ok {
		return gorm.ErrDuplicatedKey
	}
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = transaction.CreatedAt
	r.transactions[transaction.OrderID] = *transaction
	return nil
}

func (r *InMemorySubscriptionRepository) GetTransactionByOrderID(_ context.Context, orderID string) (*entities.SubscriptionTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (r *InMemorySubscriptionRepository) UpdateTransactionStatus(_ context.Context, orderID string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	r.transactions[orderID] = t
	return nil
}
