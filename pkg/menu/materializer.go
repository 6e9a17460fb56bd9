package menu

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/entities"
	"context"
	"math"

	"github.com/google/uuid"
)

type MaterializedMenu struct {
	Categories []*entities.MenuCategory
	Items      []*entities.MenuItem
}

// Materialize inserts every category followed by its items, in payload
// order. Category orders start at existingCategories; item orders run on from
// existingItems across the whole menu. On failure the error is a
// PartialImportError counting the rows inserted before it.
func Materialize(ctx context.Context, repo MenuRepository, restaurant *entities.Restaurant, menu domain.ExtractedMenu, existingCategories, existingItems int) (MaterializedMenu, error) {
	currency := restaurant.DefaultCurrency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	result := MaterializedMenu{
		Categories: make([]*entities.MenuCategory, 0, len(menu.Categories)),
		Items:      make([]*entities.MenuItem, 0, menu.ItemCount()),
	}
	itemOrder := existingItems

	for i, extracted := range menu.Categories {
		category := &entities.MenuCategory{
			ID:           uuid.New(),
			RestaurantID: restaurant.ID,
			Name:         extracted.Name,
			Description:  extracted.Description,
			DisplayOrder: existingCategories + i,
		}
		if err := repo.CreateCategory(ctx, category); err != nil {
			return result, partialImport(result, err)
		}
		result.Categories = append(result.Categories, category)

		for _, extractedItem := range extracted.Items {
			categoryID := category.ID
			item := &entities.MenuItem{
				ID:           uuid.New(),
				RestaurantID: restaurant.ID,
				CategoryID:   &categoryID,
				Name:         extractedItem.Name,
				Description:  extractedItem.Description,
				Price:        roundPrice(extractedItem.Price.Float64()),
				Currency:     currency,
				IsSpecial:    extractedItem.Special(),
				IsAvailable:  extractedItem.Available(),
				DisplayOrder: itemOrder,
			}
			if err := repo.CreateItem(ctx, item); err != nil {
				return result, partialImport(result, err)
			}
			result.Items = append(result.Items, item)
			itemOrder++
		}
	}

	return result, nil
}

func partialImport(result MaterializedMenu, err error) error {
	return &domain.PartialImportError{
		CategoriesInserted: len(result.Categories),
		ItemsInserted:      len(result.Items),
		Err:                err,
	}
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
