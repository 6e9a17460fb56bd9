package menu

import (
	"Menu-Builder-Backend/entities"
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InMemoryMenuRepository keeps rows in slices. Transactions are serialized
// and restore the pre-transaction rows when fn fails.
type InMemoryMenuRepository struct {
	txMu       sync.Mutex
	mu         sync.Mutex
	categories []entities.MenuCategory
	items      []entities.MenuItem

	// FailItemInsert, when set, is consulted before every item insert.
	FailItemInsert func(item *entities.MenuItem) error
}

func NewInMemoryMenuRepository() *InMemoryMenuRepository {
	return &InMemoryMenuRepository{}
}

func (r *InMemoryMenuRepository) Transaction(ctx context.Context, fn func(repo MenuRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	categories := slices.Clone(r.categories)
	items := slices.Clone(r.items)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.categories = categories
		r.items = items
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *InMemoryMenuRepository) LockTenant(context.Context, string) error {
	return nil
}

func (r *InMemoryMenuRepository) CountCategories(_ context.Context, restaurantID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, c := range r.categories {
		if c.RestaurantID.String() == restaurantID {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryMenuRepository) CountItems(ctx context.Context, restaurantID string) (int64, error) {
	return r.CountItemsByRestaurants(ctx, []string{restaurantID})
}

func (r *InMemoryMenuRepository) CountItemsByRestaurants(_ context.Context, restaurantIDs []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, item := range r.items {
		if slices.Contains(restaurantIDs, item.RestaurantID.String()) {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryMenuRepository) CreateCategory(_ context.Context, category *entities.MenuCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	r.categories = append(r.categories, *category)
	return nil
}

func (r *InMemoryMenuRepository) CreateItem(_ context.Context, item *entities.MenuItem) error {
	if r.FailItemInsert != nil {
		if err := r.FailItemInsert(item); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.items = append(r.items, *item)
	return nil
}

func (r *InMemoryMenuRepository) GetCategoryByID(_ context.Context, id string) (*entities.MenuCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.ID.String() == id {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *InMemoryMenuRepository) GetCategoriesByRestaurant(_ context.Context, restaurantID string) ([]*entities.MenuCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var categories []*entities.MenuCategory
	for _, c := range r.categories {
		if c.RestaurantID.String() == restaurantID {
			c := c
			categories = append(categories, &c)
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].DisplayOrder < categories[j].DisplayOrder
	})
	return categories, nil
}

func (r *InMemoryMenuRepository) GetItemsByRestaurant(_ context.Context, restaurantID string) ([]*entities.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []*entities.MenuItem
	for _, item := range r.items {
		if item.RestaurantID.String() == restaurantID {
			item := item
			items = append(items, &item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DisplayOrder < items[j].DisplayOrder
	})
	return items, nil
}
