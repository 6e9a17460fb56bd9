package restaurant

import (
	"Menu-Builder-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	RestaurantRepository interface {
		Transaction(ctx context.Context, fn func(repo RestaurantRepository) error) error
		LockOwner(ctx context.Context, ownerID string) error
		CreateRestaurant(ctx context.Context, restaurant *entities.Restaurant) error
		GetRestaurantByID(ctx context.Context, id string) (*entities.Restaurant, error)
		GetRestaurantsByOwner(ctx context.Context, ownerID string) ([]*entities.Restaurant, error)
		CountRestaurantsByOwner(ctx context.Context, ownerID string) (int64, error)
	}

	restaurantRepository struct {
		db *gorm.DB
	}
)

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Transaction(ctx context.Context, fn func(repo RestaurantRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&restaurantRepository{db: tx})
	})
}

// LockOwner holds until the surrounding transaction ends.
func (r *restaurantRepository) LockOwner(ctx context.Context, ownerID string) error {
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "restaurants:"+ownerID).Error
}

func (r *restaurantRepository) CreateRestaurant(ctx context.Context, restaurant *entities.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *restaurantRepository) GetRestaurantByID(ctx context.Context, id string) (*entities.Restaurant, error) {
	var restaurant entities.Restaurant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetRestaurantsByOwner(ctx context.Context, ownerID string) ([]*entities.Restaurant, error) {
	var restaurants []*entities.Restaurant
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) CountRestaurantsByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Restaurant{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
