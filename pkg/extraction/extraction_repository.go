package extraction

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/entities"
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	// ExtractionRepository is the ledger of import attempts. A record leaves
	// processing exactly once and is never deleted.
	ExtractionRepository interface {
		CreateExtraction(ctx context.Context, extraction *entities.MenuExtraction) error
		CompleteExtraction(ctx context.Context, id string, data datatypes.JSON) error
		FailExtraction(ctx context.Context, id string, message string) error
		GetExtractionByID(ctx context.Context, id string) (*entities.MenuExtraction, error)
		GetExtractionsByRestaurant(ctx context.Context, restaurantID string, page, limit int) ([]*entities.MenuExtraction, int64, error)
	}

	extractionRepository struct {
		db *gorm.DB
	}
)

func NewExtractionRepository(db *gorm.DB) ExtractionRepository {
	return &extractionRepository{db: db}
}

func (r *extractionRepository) CreateExtraction(ctx context.Context, extraction *entities.MenuExtraction) error {
	extraction.Status = entities.ExtractionStatusProcessing
	extraction.ExtractedData = nil
	extraction.ErrorMessage = nil
	return r.db.WithContext(ctx).Create(extraction).Error
}

func (r *extractionRepository) CompleteExtraction(ctx context.Context, id string, data datatypes.JSON) error {
	return r.finalize(ctx, id, map[string]interface{}{
		"status":         entities.ExtractionStatusCompleted,
		"extracted_data": data,
		"updated_at":     time.Now(),
	})
}

func (r *extractionRepository) FailExtraction(ctx context.Context, id string, message string) error {
	return r.finalize(ctx, id, map[string]interface{}{
		"status":        entities.ExtractionStatusFailed,
		"error_message": message,
		"updated_at":    time.Now(),
	})
}

// finalize only touches rows still in processing, so a terminal record can
// never be rewritten.
func (r *extractionRepository) finalize(ctx context.Context, id string, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&entities.MenuExtraction{}).
		Where("id = ? AND status = ?", id, entities.ExtractionStatusProcessing).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := r.GetExtractionByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrExtractionNotFound
		}
		return err
	}
	return domain.ErrExtractionFinalized
}

func (r *extractionRepository) GetExtractionByID(ctx context.Context, id string) (*entities.MenuExtraction, error) {
	var extraction entities.MenuExtraction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&extraction).Error; err != nil {
		return nil, err
	}
	return &extraction, nil
}

func (r *extractionRepository) GetExtractionsByRestaurant(ctx context.Context, restaurantID string, page, limit int) ([]*entities.MenuExtraction, int64, error) {
	var extractions []*entities.MenuExtraction
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.MenuExtraction{}).
		Where("restaurant_id = ?", restaurantID).
		Session(&gorm.Session{})

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&extractions).Error; err != nil {
		return nil, 0, err
	}

	return extractions, count, nil
}
