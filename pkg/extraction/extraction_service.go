package extraction

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/entities"
	"Menu-Builder-Backend/internal/utils/mailing"
	"Menu-Builder-Backend/pkg/menu"
	"Menu-Builder-Backend/pkg/restaurant"
	"Menu-Builder-Backend/pkg/vision"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	ExtractionService interface {
		ImportMenuFromFile(ctx context.Context, req domain.ImportMenuRequest, userID string) (domain.ImportMenuResponse, error)
		GetExtraction(ctx context.Context, id string, userID string) (domain.ExtractionResponse, error)
		GetExtractions(ctx context.Context, restaurantID string, userID string, page, limit int) ([]domain.ExtractionResponse, int64, error)
	}

	extractionService struct {
		extractionRepository ExtractionRepository
		intake               FileIntake
		visionClient         vision.VisionClient
		menuService          menu.MenuService
		restaurantService    restaurant.RestaurantService
		mailer               mailing.Mailer
	}
)

func NewExtractionService(
	extractionRepository ExtractionRepository,
	intake FileIntake,
	visionClient vision.VisionClient,
	menuService menu.MenuService,
	restaurantService restaurant.RestaurantService,
	mailer mailing.Mailer,
) ExtractionService {
	return &extractionService{
		extractionRepository: extractionRepository,
		intake:               intake,
		visionClient:         visionClient,
		menuService:          menuService,
		restaurantService:    restaurantService,
		mailer:               mailer,
	}
}

// ImportMenuFromFile runs one import: store the file, open a ledger record,
// ask the model for the menu, persist it, then close the record. Failures
// before the record exists leave no trace; later failures mark it failed.
func (s *extractionService) ImportMenuFromFile(ctx context.Context, req domain.ImportMenuRequest, userID string) (domain.ImportMenuResponse, error) {
	owned, err := s.restaurantService.GetOwnedRestaurant(ctx, req.RestaurantID, userID)
	if err != nil {
		return domain.ImportMenuResponse{}, err
	}

	stored, err := s.intake.Accept(ctx, owned.ID.String(), req.File, req.DeclaredType)
	if err != nil {
		return domain.ImportMenuResponse{}, err
	}

	record := &entities.MenuExtraction{
		ID:           uuid.New(),
		RestaurantID: owned.ID,
		FileURL:      stored.URL,
		ContentType:  stored.ContentType,
		Status:       entities.ExtractionStatusProcessing,
	}
	if err := s.extractionRepository.CreateExtraction(ctx, record); err != nil {
		if delErr := s.intake.Discard(context.WithoutCancel(ctx), stored); delErr != nil {
			log.Warn().Err(delErr).Str("object_key", stored.ObjectKey).Msg("failed to discard orphaned upload")
		}
		return domain.ImportMenuResponse{}, err
	}

	logger := log.With().
		Str("extraction_id", record.ID.String()).
		Str("restaurant_id", owned.ID.String()).
		Logger()
	logger.Info().Str("file_url", stored.URL).Msg("menu extraction started")

	extracted, err := s.visionClient.ExtractMenu(ctx, domain.VisionInput{
		ImageURL:    stored.URL,
		ContentType: stored.ContentType,
	})
	if err != nil {
		return domain.ImportMenuResponse{}, s.fail(ctx, record, owned, req.NotifyEmail, err)
	}

	imported, err := s.menuService.ImportExtractedMenu(ctx, owned, extracted)
	if err != nil {
		return domain.ImportMenuResponse{}, s.fail(ctx, record, owned, req.NotifyEmail, err)
	}

	payload, err := json.Marshal(extracted)
	if err != nil {
		return domain.ImportMenuResponse{}, s.fail(ctx, record, owned, req.NotifyEmail, err)
	}

	if err := s.extractionRepository.CompleteExtraction(context.WithoutCancel(ctx), record.ID.String(), datatypes.JSON(payload)); err != nil {
		logger.Error().Err(err).Msg("menu rows committed but extraction record could not be completed")
		return domain.ImportMenuResponse{}, fmt.Errorf("complete extraction %s: %w", record.ID, err)
	}

	logger.Info().
		Int("categories", len(imported.Categories)).
		Int("items", len(imported.Items)).
		Msg("menu extraction completed")

	s.notify(req.NotifyEmail, domain.MessageImportCompletedSubject, fmt.Sprintf(
		"<p>The menu for <b>%s</b> was imported: %d categories and %d items were added.</p>",
		html.EscapeString(owned.Name), len(imported.Categories), len(imported.Items),
	))

	return domain.ImportMenuResponse{
		ExtractionID: record.ID.String(),
		FileURL:      stored.URL,
		Status:       entities.ExtractionStatusCompleted,
		Categories:   imported.Categories,
		Items:        imported.Items,
	}, nil
}

// fail records cause on the ledger even if the caller already went away and
// hands cause back unchanged.
func (s *extractionService) fail(ctx context.Context, record *entities.MenuExtraction, owned *entities.Restaurant, email string, cause error) error {
	if err := s.extractionRepository.FailExtraction(context.WithoutCancel(ctx), record.ID.String(), cause.Error()); err != nil {
		log.Error().Err(err).Str("extraction_id", record.ID.String()).Msg("failed to mark extraction as failed")
	}

	log.Warn().
		Err(cause).
		Str("extraction_id", record.ID.String()).
		Str("restaurant_id", owned.ID.String()).
		Msg("menu extraction failed")

	s.notify(email, domain.MessageImportFailedSubject, fmt.Sprintf(
		"<p>The menu import for <b>%s</b> failed: %s</p><p>You can upload the menu again.</p>",
		html.EscapeString(owned.Name), html.EscapeString(cause.Error()),
	))
	return cause
}

func (s *extractionService) notify(email, subject, body string) {
	if email == "" || s.mailer == nil {
		return
	}
	go func() {
		if err := s.mailer.SendMail(email, subject, body); err != nil {
			log.Warn().Err(err).Str("to", email).Msg("failed to send import notification")
		}
	}()
}

func (s *extractionService) GetExtraction(ctx context.Context, id string, userID string) (domain.ExtractionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ExtractionResponse{}, domain.ErrExtractionNotFound
	}

	extraction, err := s.extractionRepository.GetExtractionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ExtractionResponse{}, domain.ErrExtractionNotFound
		}
		return domain.ExtractionResponse{}, err
	}

	if _, err := s.restaurantService.GetOwnedRestaurant(ctx, extraction.RestaurantID.String(), userID); err != nil {
		return domain.ExtractionResponse{}, err
	}

	return toExtractionResponse(extraction), nil
}

func (s *extractionService) GetExtractions(ctx context.Context, restaurantID string, userID string, page, limit int) ([]domain.ExtractionResponse, int64, error) {
	if _, err := s.restaurantService.GetOwnedRestaurant(ctx, restaurantID, userID); err != nil {
		return nil, 0, err
	}

	extractions, count, err := s.extractionRepository.GetExtractionsByRestaurant(ctx, restaurantID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.ExtractionResponse, 0, len(extractions))
	for _, extraction := range extractions {
		response = append(response, toExtractionResponse(extraction))
	}
	return response, count, nil
}

func toExtractionResponse(extraction *entities.MenuExtraction) domain.ExtractionResponse {
	return domain.ExtractionResponse{
		ID:            extraction.ID.String(),
		RestaurantID:  extraction.RestaurantID.String(),
		FileURL:       extraction.FileURL,
		ContentType:   extraction.ContentType,
		Status:        extraction.Status,
		ExtractedData: json.RawMessage(extraction.ExtractedData),
		ErrorMessage:  extraction.ErrorMessage,
		CreatedAt:     extraction.CreatedAt,
		UpdatedAt:     extraction.UpdatedAt,
	}
}
