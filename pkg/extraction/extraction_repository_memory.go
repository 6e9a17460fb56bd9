package extraction

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/entities"
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InMemoryExtractionRepository struct {
	mu          sync.Mutex
	extractions map[string]entities.MenuExtraction
}

func NewInMemoryExtractionRepository() *InMemoryExtractionRepository {
	return &InMemoryExtractionRepository{
		extractions: make(map[string]entities.MenuExtraction),
	}
}

func (r *InMemoryExtractionRepository) CreateExtraction(_ context.Context, extraction *entities.MenuExtraction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if extraction.ID == uuid.Nil {
		extraction.ID = uuid.New()
	}
	extraction.Status = entities.ExtractionStatusProcessing
	extraction.ExtractedData = nil
	extraction.ErrorMessage = nil
	extraction.CreatedAt = time.Now()
	extraction.UpdatedAt = extraction.CreatedAt
	r.extractions[extraction.ID.String()] = *extraction
	return nil
}

func (r *InMemoryExtractionRepository) CompleteExtraction(_ context.Context, id string, data datatypes.JSON) error {
	return r.finalize(id, func(e *entities.MenuExtraction) {
		e.Status = entities.ExtractionStatusCompleted
		e.ExtractedData = slices.Clone(data)
	})
}

func (r *InMemoryExtractionRepository) FailExtraction(_ context.Context, id string, message string) error {
	return r.finalize(id, func(e *entities.MenuExtraction) {
		e.Status = entities.ExtractionStatusFailed
		e.ErrorMessage = &message
	})
}

func (r *InMemoryExtractionRepository) finalize(id string, apply func(e *entities.MenuExtraction)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.extractions[id]
	if !ok {
		return domain.ErrExtractionNotFound
	}
	if e.Status != entities.ExtractionStatusProcessing {
		return domain.ErrExtractionFinalized
	}
	apply(&e)
	e.UpdatedAt = time.Now()
	r.extractions[id] = e
	return nil
}

func (r *InMemoryExtractionRepository) GetExtractionByID(_ context.Context, id string) (*entities.MenuExtraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.extractions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *InMemoryExtractionRepository) GetExtractionsByRestaurant(_ context.Context, restaurantID string, page, limit int) ([]*entities.MenuExtraction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*entities.MenuExtraction
	for _, e := range r.extractions {
		if e.RestaurantID.String() == restaurantID {
			e := e
			all = append(all, &e)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := min((page-1)*limit, len(all))
	end := min(start+limit, len(all))
	return all[start:end], total, nil
}

// Len reports how many records exist, whatever their state.
func (r *InMemoryExtractionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.extractions)
}
