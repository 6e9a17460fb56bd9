package subscription

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/entities"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	status    domain.PaymentStatus
	created   []string
	checked   int
	createErr error
}

func (g *fakeGateway) CreateTransaction(_ context.Context, orderID string, amount int64, email string, itemName string) (string, string, error) {
	if g.createErr != nil {
		return "", "", g.createErr
	}
	g.created = append(g.created, orderID)
	return "snap-token", "https://pay.example.com/" + orderID, nil
}

func (g *fakeGateway) CheckTransaction(_ context.Context, orderID string) (domain.PaymentStatus, error) {
	g.checked++
	return g.status, nil
}

func TestGetTierDefaultsToFree(t *testing.T) {
	svc := NewSubscriptionService(NewInMemorySubscriptionRepository(), &fakeGateway{})

	tier, err := svc.GetTier(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, domain.TierFree, tier)
}

func TestCheckoutAndSettlement(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemorySubscriptionRepository()
	gateway := &fakeGateway{}
	svc := NewSubscriptionService(repo, gateway)
	userID := uuid.NewString()

	res, err := svc.Checkout(ctx, domain.CheckoutRequest{Tier: domain.TierPremium, Email: "owner@example.com"}, userID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.OrderID, "SUB-PREMIUM-"))
	assert.Equal(t, "snap-token", res.Token)

	tx, err := repo.GetTransactionByOrderID(ctx, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionPending, tx.Status)
	assert.EqualValues(t, 99000, tx.GrossAmount)

	// webhook body claims settlement, gateway still says pending
	gateway.status = domain.PaymentStatus{OrderID: res.OrderID, TransactionStatus: "pending"}
	require.NoError(t, svc.HandleNotification(ctx, domain.MidtransNotificationRequest{OrderID: res.OrderID, TransactionStatus: "settlement"}))
	tier, _ := svc.GetTier(ctx, userID)
	assert.Equal(t, domain.TierFree, tier)

	gateway.status = domain.PaymentStatus{OrderID: res.OrderID, TransactionStatus: "settlement"}
	require.NoError(t, svc.HandleNotification(ctx, domain.MidtransNotificationRequest{OrderID: res.OrderID}))
	tier, _ = svc.GetTier(ctx, userID)
	assert.Equal(t, domain.TierPremium, tier)

	// repeated notifications are no-ops once paid
	require.NoError(t, svc.HandleNotification(ctx, domain.MidtransNotificationRequest{OrderID: res.OrderID}))
	assert.Equal(t, 2, gateway.checked)
}

func TestSettlementRetriedAfterFailedUpgrade(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemorySubscriptionRepository()
	gateway := &fakeGateway{}
	svc := NewSubscriptionService(repo, gateway)
	userID := uuid.NewString()

	res, err := svc.Checkout(ctx, domain.CheckoutRequest{Tier: domain.TierAgency}, userID)
	require.NoError(t, err)

	failures := 1
	repo.FailUpsert = func(*entities.Subscription) error {
		if failures > 0 {
			failures--
			return errors.New("connection reset")
		}
		return nil
	}
	gateway.status = domain.PaymentStatus{OrderID: res.OrderID, TransactionStatus: "settlement"}

	err = svc.HandleNotification(ctx, domain.MidtransNotificationRequest{OrderID: res.OrderID})
	require.Error(t, err)

	tx, err := repo.GetTransactionByOrderID(ctx, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionPending, tx.Status)
	tier, err := svc.GetTier(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierFree, tier)

	require.NoError(t, svc.HandleNotification(ctx, domain.MidtransNotificationRequest{OrderID: res.OrderID}))

	tx, err = repo.GetTransactionByOrderID(ctx, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionPaid, tx.Status)
	tier, err = svc.GetTier(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.TierAgency, tier)
	assert.Equal(t, 2, gateway.checked)
}

func TestCheckoutRejectsUnknownTier(t *testing.T) {
	svc := NewSubscriptionService(NewInMemorySubscriptionRepository(), &fakeGateway{})

	_, err := svc.Checkout(context.Background(), domain.CheckoutRequest{Tier: domain.TierFree}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInvalidTier)

	_, err = svc.Checkout(context.Background(), domain.CheckoutRequest{Tier: domain.TierPremium}, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	svc := NewSubscriptionService(NewInMemorySubscriptionRepository(), &fakeGateway{})

	err := svc.HandleNotification(context.Background(), domain.MidtransNotificationRequest{OrderID: "SUB-X-1"})
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestResolveTransactionStatus(t *testing.T) {
	tests := []struct {
		status domain.PaymentStatus
		want   string
	}{
		{domain.PaymentStatus{TransactionStatus: "capture", FraudStatus: "accept"}, domain.TransactionPaid},
		{domain.PaymentStatus{TransactionStatus: "capture", FraudStatus: "challenge"}, domain.TransactionPending},
		{domain.PaymentStatus{TransactionStatus: "capture", FraudStatus: "deny"}, domain.TransactionFailed},
		{domain.PaymentStatus{TransactionStatus: "settlement"}, domain.TransactionPaid},
		{domain.PaymentStatus{TransactionStatus: "expire"}, domain.TransactionFailed},
		{domain.PaymentStatus{TransactionStatus: "pending"}, domain.TransactionPending},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveTransactionStatus(tt.status), tt.status)
	}
}
