package subscription

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/entities"
	"Menu-Builder-Backend/internal/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		GetTier(ctx context.Context, userID string) (string, error)
		Checkout(ctx context.Context, req domain.CheckoutRequest, userID string) (domain.CheckoutResponse, error)
		HandleNotification(ctx context.Context, req domain.MidtransNotificationRequest) error
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		gateway                PaymentGateway
		prices                 map[string]int64
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository, gateway PaymentGateway) SubscriptionService {
	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		gateway:                gateway,
		prices: map[string]int64{
			domain.TierPremium: int64(utils.GetConfigInt("PREMIUM_PRICE", 99000)),
			domain.TierAgency:  int64(utils.GetConfigInt("AGENCY_PRICE", 499000)),
		},
	}
}

// GetTier falls back to free when the user never subscribed.
func (s *subscriptionService) GetTier(ctx context.Context, userID string) (string, error) {
	sub, err := s.subscriptionRepository.GetSubscriptionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TierFree, nil
		}
		return "", err
	}
	if !IsKnownTier(sub.Tier) {
		return domain.TierFree, nil
	}
	return sub.Tier, nil
}

func (s *subscriptionService) Checkout(ctx context.Context, req domain.CheckoutRequest, userID string) (domain.CheckoutResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CheckoutResponse{}, domain.ErrParseUUID
	}

	price, ok := s.prices[req.Tier]
	if !ok {
		return domain.CheckoutResponse{}, domain.ErrInvalidTier
	}

	orderID := fmt.Sprintf("SUB-%s-%d", strings.ToUpper(req.Tier), time.Now().UnixNano())
	token, redirectURL, err := s.gateway.CreateTransaction(ctx, orderID, price, req.Email, fmt.Sprintf("Menu Builder %s plan", req.Tier))
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	transaction := &entities.SubscriptionTransaction{
		ID:          uuid.New(),
		OrderID:     orderID,
		UserID:      userUUID,
		Tier:        req.Tier,
		GrossAmount: price,
		Status:      domain.TransactionPending,
		SnapToken:   token,
		RedirectURL: redirectURL,
	}
	if err := s.subscriptionRepository.CreateTransaction(ctx, transaction); err != nil {
		return domain.CheckoutResponse{}, err
	}

	return domain.CheckoutResponse{
		OrderID:     orderID,
		Token:       token,
		RedirectURL: redirectURL,
	}, nil
}

// HandleNotification re-reads the payment status from Midtrans instead of
// trusting the webhook body, then applies the tier once the payment settles.
func (s *subscriptionService) HandleNotification(ctx context.Context, req domain.MidtransNotificationRequest) error {
	transaction, err := s.subscriptionRepository.GetTransactionByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	if transaction.Status == domain.TransactionPaid {
		return nil
	}

	status, err := s.gateway.CheckTransaction(ctx, req.OrderID)
	if err != nil {
		return err
	}

	next := resolveTransactionStatus(status)
	if next == domain.TransactionPending || next == transaction.Status {
		return nil
	}

	if next != domain.TransactionPaid {
		if err := s.subscriptionRepository.UpdateTransactionStatus(ctx, req.OrderID, next); err != nil {
			return err
		}
		log.Info().Str("order_id", req.OrderID).Str("status", status.TransactionStatus).Msg("subscription payment not completed")
		return nil
	}

	// status and tier commit together
	err = s.subscriptionRepository.Transaction(ctx, func(repo SubscriptionRepository) error {
		if err := repo.UpdateTransactionStatus(ctx, req.OrderID, domain.TransactionPaid); err != nil {
			return err
		}
		return repo.UpsertSubscription(ctx, &entities.Subscription{
			UserID: transaction.UserID,
			Tier:   transaction.Tier,
			Status: "active",
		})
	})
	if err != nil {
		return fmt.Errorf("apply subscription %s: %w", req.OrderID, err)
	}

	log.Info().Str("order_id", req.OrderID).Str("tier", transaction.Tier).Msg("subscription upgraded")
	return nil
}

func resolveTransactionStatus(status domain.PaymentStatus) string {
	switch status.TransactionStatus {
	case "capture":
		if status.FraudStatus == "accept" {
			return domain.TransactionPaid
		}
		if status.FraudStatus == "deny" {
			return domain.TransactionFailed
		}
		return domain.TransactionPending
	case "settlement":
		return domain.TransactionPaid
	case "deny", "cancel", "expire", "failure":
		return domain.TransactionFailed
	default:
		return domain.TransactionPending
	}
}
