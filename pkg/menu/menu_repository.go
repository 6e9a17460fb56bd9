package menu

import (
	"Menu-Builder-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		// Transaction runs fn against a repository bound to one database
		// transaction. Returning an error from fn rolls everything back.
		Transaction(ctx context.Context, fn func(repo MenuRepository) error) error
		// LockTenant serializes menu writes of one owner until the surrounding
		// transaction ends.
		LockTenant(ctx context.Context, ownerID string) error

		CountCategories(ctx context.Context, restaurantID string) (int64, error)
		CountItems(ctx context.Context, restaurantID string) (int64, error)
		CountItemsByRestaurants(ctx context.Context, restaurantIDs []string) (int64, error)

		CreateCategory(ctx context.Context, category *entities.MenuCategory) error
		CreateItem(ctx context.Context, item *entities.MenuItem) error
		GetCategoryByID(ctx context.Context, id string) (*entities.MenuCategory, error)
		GetCategoriesByRestaurant(ctx context.Context, restaurantID string) ([]*entities.MenuCategory, error)
		GetItemsByRestaurant(ctx context.Context, restaurantID string) ([]*entities.MenuItem, error)
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Transaction(ctx context.Context, fn func(repo MenuRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&menuRepository{db: tx})
	})
}

func (r *menuRepository) LockTenant(ctx context.Context, ownerID string) error {
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "menu:"+ownerID).Error
}

func (r *menuRepository) CountCategories(ctx context.Context, restaurantID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.MenuCategory{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *menuRepository) CountItems(ctx context.Context, restaurantID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.MenuItem{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *menuRepository) CountItemsByRestaurants(ctx context.Context, restaurantIDs []string) (int64, error) {
	if len(restaurantIDs) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.MenuItem{}).
		Where("restaurant_id IN ?", restaurantIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *menuRepository) CreateCategory(ctx context.Context, category *entities.MenuCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *menuRepository) CreateItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) GetCategoryByID(ctx context.Context, id string) (*entities.MenuCategory, error) {
	var category entities.MenuCategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *menuRepository) GetCategoriesByRestaurant(ctx context.Context, restaurantID string) ([]*entities.MenuCategory, error) {
	var categories []*entities.MenuCategory
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("display_order asc, created_at asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *menuRepository) GetItemsByRestaurant(ctx context.Context, restaurantID string) ([]*entities.MenuItem, error) {
	var items []*entities.MenuItem
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("display_order asc, created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
