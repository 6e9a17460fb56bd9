package restaurant

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/entities"
	"Menu-Builder-Backend/pkg/subscription"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RestaurantService interface {
		CreateRestaurant(ctx context.Context, req domain.CreateRestaurantRequest, userID string) (domain.RestaurantResponse, error)
		GetMyRestaurants(ctx context.Context, userID string) ([]domain.RestaurantResponse, error)
		GetRestaurantByID(ctx context.Context, id string, userID string) (domain.RestaurantResponse, error)
		GetOwnedRestaurant(ctx context.Context, id string, userID string) (*entities.Restaurant, error)
	}

	restaurantService struct {
		restaurantRepository RestaurantRepository
		subscriptionService  subscription.SubscriptionService
	}
)

func NewRestaurantService(restaurantRepository RestaurantRepository, subscriptionService subscription.SubscriptionService) RestaurantService {
	return &restaurantService{
		restaurantRepository: restaurantRepository,
		subscriptionService:  subscriptionService,
	}
}

func (s *restaurantService) CreateRestaurant(ctx context.Context, req domain.CreateRestaurantRequest, userID string) (domain.RestaurantResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RestaurantResponse{}, domain.ErrParseUUID
	}

	tier, err := s.subscriptionService.GetTier(ctx, userID)
	if err != nil {
		return domain.RestaurantResponse{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.DefaultCurrency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	restaurant := &entities.Restaurant{
		ID:              uuid.New(),
		OwnerID:         userUUID,
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		DefaultCurrency: currency,
	}

	err = s.restaurantRepository.Transaction(ctx, func(repo RestaurantRepository) error {
		if err := repo.LockOwner(ctx, userID); err != nil {
			return err
		}

		count, err := repo.CountRestaurantsByOwner(ctx, userID)
		if err != nil {
			return err
		}

		if !subscription.CheckRestaurantQuota(tier, int(count)) {
			return &domain.QuotaExceededError{
				Tier:      tier,
				Resource:  domain.ResourceRestaurants,
				Limit:     subscription.LimitsFor(tier).Restaurants,
				Current:   int(count),
				Requested: 1,
			}
		}

		return repo.CreateRestaurant(ctx, restaurant)
	})
	if err != nil {
		return domain.RestaurantResponse{}, err
	}

	return toRestaurantResponse(restaurant), nil
}

func (s *restaurantService) GetMyRestaurants(ctx context.Context, userID string) ([]domain.RestaurantResponse, error) {
	restaurants, err := s.restaurantRepository.GetRestaurantsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.RestaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		response = append(response, toRestaurantResponse(restaurant))
	}
	return response, nil
}

func (s *restaurantService) GetRestaurantByID(ctx context.Context, id string, userID string) (domain.RestaurantResponse, error) {
	restaurant, err := s.GetOwnedRestaurant(ctx, id, userID)
	if err != nil {
		return domain.RestaurantResponse{}, err
	}
	return toRestaurantResponse(restaurant), nil
}

// GetOwnedRestaurant loads the restaurant and checks that userID owns it.
func (s *restaurantService) GetOwnedRestaurant(ctx context.Context, id string, userID string) (*entities.Restaurant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	restaurant, err := s.restaurantRepository.GetRestaurantByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, err
	}

	if restaurant.OwnerID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}

	return restaurant, nil
}

func toRestaurantResponse(restaurant *entities.Restaurant) domain.RestaurantResponse {
	return domain.RestaurantResponse{
		ID:              restaurant.ID.String(),
		OwnerID:         restaurant.OwnerID.String(),
		Name:            restaurant.Name,
		Description:     restaurant.Description,
		DefaultCurrency: restaurant.DefaultCurrency,
		CreatedAt:       restaurant.CreatedAt,
	}
}
