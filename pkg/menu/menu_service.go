package menu

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/entities"
	"Menu-Builder-Backend/pkg/restaurant"
	"Menu-Builder-Backend/pkg/subscription"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MenuService interface {
		ImportExtractedMenu(ctx context.Context, restaurant *entities.Restaurant, menu domain.ExtractedMenu) (domain.ImportedMenu, error)
		CreateCategory(ctx context.Context, restaurantID string, req domain.CreateCategoryRequest, userID string) (domain.MenuCategoryResponse, error)
		CreateItem(ctx context.Context, restaurantID string, req domain.CreateMenuItemRequest, userID string) (domain.MenuItemResponse, error)
		GetMenu(ctx context.Context, restaurantID string, userID string) (domain.MenuResponse, error)
		GetQuota(ctx context.Context, userID string) (domain.QuotaResponse, error)
	}

	menuService struct {
		menuRepository      MenuRepository
		restaurantService   restaurant.RestaurantService
		subscriptionService subscription.SubscriptionService
	}
)

func NewMenuService(menuRepository MenuRepository, restaurantService restaurant.RestaurantService, subscriptionService subscription.SubscriptionService) MenuService {
	return &menuService{
		menuRepository:      menuRepository,
		restaurantService:   restaurantService,
		subscriptionService: subscriptionService,
	}
}

// ImportExtractedMenu persists an extracted menu in one transaction. The
// owner's item ceiling is checked against the whole batch first, and an
// insert failure rolls back every row of the batch.
func (s *menuService) ImportExtractedMenu(ctx context.Context, restaurant *entities.Restaurant, menu domain.ExtractedMenu) (domain.ImportedMenu, error) {
	ownerID := restaurant.OwnerID.String()

	tier, err := s.subscriptionService.GetTier(ctx, ownerID)
	if err != nil {
		return domain.ImportedMenu{}, err
	}

	restaurantIDs, err := s.ownerRestaurantIDs(ctx, ownerID)
	if err != nil {
		return domain.ImportedMenu{}, err
	}

	var materialized MaterializedMenu
	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		if err := repo.LockTenant(ctx, ownerID); err != nil {
			return err
		}

		ownerItems, err := repo.CountItemsByRestaurants(ctx, restaurantIDs)
		if err != nil {
			return err
		}

		requested := menu.ItemCount()
		if !subscription.CheckItemBatch(tier, int(ownerItems), requested) {
			return &domain.QuotaExceededError{
				Tier:      tier,
				Resource:  domain.ResourceMenuItems,
				Limit:     subscription.LimitsFor(tier).MenuItems,
				Current:   int(ownerItems),
				Requested: requested,
			}
		}

		categoryCount, err := repo.CountCategories(ctx, restaurant.ID.String())
		if err != nil {
			return err
		}
		itemCount, err := repo.CountItems(ctx, restaurant.ID.String())
		if err != nil {
			return err
		}

		materialized, err = Materialize(ctx, repo, restaurant, menu, int(categoryCount), int(itemCount))
		return err
	})
	if err != nil {
		var partial *domain.PartialImportError
		if errors.As(err, &partial) {
			partial.RolledBack = true
		}
		return domain.ImportedMenu{}, err
	}

	imported := domain.ImportedMenu{
		Categories: make([]domain.MenuCategoryResponse, 0, len(materialized.Categories)),
		Items:      make([]domain.MenuItemResponse, 0, len(materialized.Items)),
	}
	for _, category := range materialized.Categories {
		imported.Categories = append(imported.Categories, toCategoryResponse(category))
	}
	for _, item := range materialized.Items {
		imported.Items = append(imported.Items, toItemResponse(item))
	}
	return imported, nil
}

func (s *menuService) CreateCategory(ctx context.Context, restaurantID string, req domain.CreateCategoryRequest, userID string) (domain.MenuCategoryResponse, error) {
	owned, err := s.restaurantService.GetOwnedRestaurant(ctx, restaurantID, userID)
	if err != nil {
		return domain.MenuCategoryResponse{}, err
	}

	category := &entities.MenuCategory{
		ID:           uuid.New(),
		RestaurantID: owned.ID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
	}

	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		if err := repo.LockTenant(ctx, userID); err != nil {
			return err
		}
		count, err := repo.CountCategories(ctx, owned.ID.String())
		if err != nil {
			return err
		}
		category.DisplayOrder = int(count)
		return repo.CreateCategory(ctx, category)
	})
	if err != nil {
		return domain.MenuCategoryResponse{}, err
	}

	return toCategoryResponse(category), nil
}

func (s *menuService) CreateItem(ctx context.Context, restaurantID string, req domain.CreateMenuItemRequest, userID string) (domain.MenuItemResponse, error) {
	owned, err := s.restaurantService.GetOwnedRestaurant(ctx, restaurantID, userID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		category, err := s.menuRepository.GetCategoryByID(ctx, req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.MenuItemResponse{}, domain.ErrCategoryNotFound
			}
			return domain.MenuItemResponse{}, err
		}
		if category.RestaurantID != owned.ID {
			return domain.MenuItemResponse{}, domain.ErrCategoryNotFound
		}
		categoryID = &category.ID
	}

	tier, err := s.subscriptionService.GetTier(ctx, userID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	restaurantIDs, err := s.ownerRestaurantIDs(ctx, userID)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	currency := owned.DefaultCurrency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	item := &entities.MenuItem{
		ID:           uuid.New(),
		RestaurantID: owned.ID,
		CategoryID:   categoryID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Price:        roundPrice(req.Price),
		Currency:     currency,
		IsSpecial:    req.IsSpecial,
		IsAvailable:  req.IsAvailable == nil || *req.IsAvailable,
	}

	err = s.menuRepository.Transaction(ctx, func(repo MenuRepository) error {
		if err := repo.LockTenant(ctx, userID); err != nil {
			return err
		}

		ownerItems, err := repo.CountItemsByRestaurants(ctx, restaurantIDs)
		if err != nil {
			return err
		}
		if !subscription.CheckItemQuota(tier, int(ownerItems)) {
			return &domain.QuotaExceededError{
				Tier:      tier,
				Resource:  domain.ResourceMenuItems,
				Limit:     subscription.LimitsFor(tier).MenuItems,
				Current:   int(ownerItems),
				Requested: 1,
			}
		}

		count, err := repo.CountItems(ctx, owned.ID.String())
		if err != nil {
			return err
		}
		item.DisplayOrder = int(count)
		return repo.CreateItem(ctx, item)
	})
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	return toItemResponse(item), nil
}

func (s *menuService) GetMenu(ctx context.Context, restaurantID string, userID string) (domain.MenuResponse, error) {
	owned, err := s.restaurantService.GetOwnedRestaurant(ctx, restaurantID, userID)
	if err != nil {
		return domain.MenuResponse{}, err
	}
	restaurantID = owned.ID.String()

	categories, err := s.menuRepository.GetCategoriesByRestaurant(ctx, restaurantID)
	if err != nil {
		return domain.MenuResponse{}, err
	}

	items, err := s.menuRepository.GetItemsByRestaurant(ctx, restaurantID)
	if err != nil {
		return domain.MenuResponse{}, err
	}

	response := domain.MenuResponse{
		RestaurantID: restaurantID,
		Categories:   make([]domain.MenuCategoryResponse, 0, len(categories)),
		Items:        make([]domain.MenuItemResponse, 0, len(items)),
	}
	for _, category := range categories {
		response.Categories = append(response.Categories, toCategoryResponse(category))
	}
	for _, item := range items {
		response.Items = append(response.Items, toItemResponse(item))
	}
	return response, nil
}

func (s *menuService) GetQuota(ctx context.Context, userID string) (domain.QuotaResponse, error) {
	tier, err := s.subscriptionService.GetTier(ctx, userID)
	if err != nil {
		return domain.QuotaResponse{}, err
	}

	restaurantIDs, err := s.ownerRestaurantIDs(ctx, userID)
	if err != nil {
		return domain.QuotaResponse{}, err
	}

	itemCount, err := s.menuRepository.CountItemsByRestaurants(ctx, restaurantIDs)
	if err != nil {
		return domain.QuotaResponse{}, err
	}

	limits := subscription.LimitsFor(tier)
	response := domain.QuotaResponse{
		Tier:                tier,
		RestaurantCount:     len(restaurantIDs),
		RestaurantLimit:     limits.Restaurants,
		MenuItemCount:       int(itemCount),
		CanCreateRestaurant: subscription.CheckRestaurantQuota(tier, len(restaurantIDs)),
		CanImportMoreItems:  subscription.CanImportMoreItems(tier, int(itemCount)),
	}
	if limits.MenuItems != subscription.Unlimited {
		itemLimit := limits.MenuItems
		response.MenuItemLimit = &itemLimit
	}
	return response, nil
}

func (s *menuService) ownerRestaurantIDs(ctx context.Context, ownerID string) ([]string, error) {
	restaurants, err := s.restaurantService.GetMyRestaurants(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(restaurants))
	for _, r := range restaurants {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func toCategoryResponse(category *entities.MenuCategory) domain.MenuCategoryResponse {
	return domain.MenuCategoryResponse{
		ID:           category.ID.String(),
		RestaurantID: category.RestaurantID.String(),
		Name:         category.Name,
		Description:  category.Description,
		DisplayOrder: category.DisplayOrder,
		CreatedAt:    category.CreatedAt,
	}
}

func toItemResponse(item *entities.MenuItem) domain.MenuItemResponse {
	var categoryID *string
	if item.CategoryID != nil {
		id := item.CategoryID.String()
		categoryID = &id
	}

	return domain.MenuItemResponse{
		ID:           item.ID.String(),
		RestaurantID: item.RestaurantID.String(),
		CategoryID:   categoryID,
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price,
		Currency:     item.Currency,
		IsSpecial:    item.IsSpecial,
		IsAvailable:  item.IsAvailable,
		DisplayOrder: item.DisplayOrder,
		CreatedAt:    item.CreatedAt,
	}
}
