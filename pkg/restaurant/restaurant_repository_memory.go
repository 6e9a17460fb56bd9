package restaurant

import (
	"Menu-Builder-Backend/entities"
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InMemoryRestaurantRepository struct {
	txMu        sync.Mutex
	mu          sync.Mutex
	restaurants map[string]entities.Restaurant
}

func NewInMemoryRestaurantRepository() *InMemoryRestaurantRepository {
	return &InMemoryRestaurantRepository{
		restaurants: make(map[string]entities.Restaurant),
	}
}

func (r *InMemoryRestaurantRepository) Transaction(_ context.Context, fn func(repo RestaurantRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	restaurants := maps.Clone(r.restaurants)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.restaurants = restaurants
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *InMemoryRestaurantRepository) LockOwner(context.Context, string) error {
	return nil
}

func (r *InMemoryRestaurantRepository) CreateRestaurant(_ context.Context, restaurant *entities.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if restaurant.ID == uuid.Nil {
		restaurant.ID = uuid.New()
	}
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = restaurant.CreatedAt
	r.restaurants[restaurant.ID.String()] = *restaurant
	return nil
}

func (r *InMemoryRestaurantRepository) GetRestaurantByID(_ context.Context, id string) (*entities.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &restaurant, nil
}

func (r *InMemoryRestaurantRepository) GetRestaurantsByOwner(_ context.Context, ownerID string) ([]*entities.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var restaurants []*entities.Restaurant
	for _, restaurant := range r.restaurants {
		if restaurant.OwnerID.String() == ownerID {
			restaurant := restaurant
			restaurants = append(restaurants, &restaurant)
		}
	}
	sort.Slice(restaurants, func(i, j int) bool {
		return restaurants[i].CreatedAt.Before(restaurants[j].CreatedAt)
	})
	return restaurants, nil
}

func (r *InMemoryRestaurantRepository) CountRestaurantsByOwner(ctx context.Context, ownerID string) (int64, error) {
	restaurants, err := r.GetRestaurantsByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return int64(len(restaurants)), nil
}
