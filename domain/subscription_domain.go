package domain

import (
	"errors"
)

const (
	TierFree    = "free"
	TierPremium = "premium"
	TierAgency  = "agency"

	TransactionPending = "pending"
	TransactionPaid    = "paid"
	TransactionFailed  = "failed"

	ResourceRestaurants = "restaurants"
	ResourceMenuItems   = "menu items"
)

var (
	MessageSuccessGetQuota          = "quota retrieved successfully"
	MessageSuccessCreateTransaction = "transaction created successfully"
	MessageSuccessNotification      = "notification processed"

	MessageFailedGetQuota          = "failed to retrieve quota"
	MessageFailedCreateTransaction = "failed to create transaction"
	MessageFailedNotification      = "failed to process notification"

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidTier         = errors.New("invalid subscription tier")
	ErrPaymentFailed       = errors.New("payment gateway error")
)

type (
	CheckoutRequest struct {
		Tier  string `json:"tier" validate:"required,oneof=premium agency"`
		Email string `json:"email" validate:"required,email"`
	}

	CheckoutResponse struct {
		OrderID     string `json:"order_id"`
		Token       string `json:"token"`
		RedirectURL string `json:"redirect_url"`
	}

	MidtransNotificationRequest struct {
		OrderID           string `json:"order_id" validate:"required"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
	}

	PaymentStatus struct {
		OrderID           string
		TransactionStatus string
		FraudStatus       string
	}

	QuotaResponse struct {
		Tier                string `json:"tier"`
		RestaurantCount     int    `json:"restaurant_count"`
		RestaurantLimit     int    `json:"restaurant_limit"`
		MenuItemCount       int    `json:"menu_item_count"`
		MenuItemLimit       *int   `json:"menu_item_limit"` // nil means unlimited
		CanCreateRestaurant bool   `json:"can_create_restaurant"`
		CanImportMoreItems  bool   `json:"can_import_more_items"`
	}
)
