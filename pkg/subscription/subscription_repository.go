package subscription

import (
	"Menu-Builder-Backend/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	SubscriptionRepository interface {
		Transaction(ctx context.Context, fn func(repo SubscriptionRepository) error) error
		GetSubscriptionByUserID(ctx context.Context, userID string) (*entities.Subscription, error)
		UpsertSubscription(ctx context.Context, subscription *entities.Subscription) error
		CreateTransaction(ctx context.Context, transaction *entities.SubscriptionTransaction) error
		GetTransactionByOrderID(ctx context.Context, orderID string) (*entities.SubscriptionTransaction, error)
		UpdateTransactionStatus(ctx context.Context, orderID string, status string) error
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Transaction(ctx context.Context, fn func(repo SubscriptionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&subscriptionRepository{db: tx})
	})
}

func (r *subscriptionRepository) GetSubscriptionByUserID(ctx context.Context, userID string) (*entities.Subscription, error) {
	var subscription entities.Subscription
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&subscription).Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *subscriptionRepository) UpsertSubscription(ctx context.Context, subscription *entities.Subscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tier", "status", "updated_at"}),
	}).Create(subscription).Error
}

func (r *subscriptionRepository) CreateTransaction(ctx context.Context, transaction *entities.SubscriptionTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *subscriptionRepository) GetTransactionByOrderID(ctx context.Context, orderID string) (*entities.SubscriptionTransaction, error) {
	var transaction entities.SubscriptionTransaction
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *subscriptionRepository) UpdateTransactionStatus(ctx context.Context, orderID string, status string) error {
	return r.db.WithContext(ctx).Model(&entities.SubscriptionTransaction{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{"status": status}).Error
}
