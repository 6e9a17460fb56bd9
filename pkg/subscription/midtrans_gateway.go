package subscription

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/utils"
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type (
	PaymentGateway interface {
		CreateTransaction(ctx context.Context, orderID string, amount int64, email string, itemName string) (token string, redirectURL string, err error)
		CheckTransaction(ctx context.Context, orderID string) (domain.PaymentStatus, error)
	}

	midtransGateway struct {
		snapClient snap.Client
		coreClient coreapi.Client
	}
)

func NewMidtransGateway() PaymentGateway {
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}
	serverKey := utils.GetConfig("SERVER_KEY")

	g := &midtransGateway{}
	g.snapClient.New(serverKey, env)
	g.coreClient.New(serverKey, env)
	return g
}

func (g *midtransGateway) CreateTransaction(ctx context.Context, orderID string, amount int64, email string, itemName string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    orderID,
				Name:  itemName,
				Price: amount,
				Qty:   1,
			},
		},
	}

	resp, mErr := g.snapClient.CreateTransaction(req)
	if mErr != nil {
		return "", "", fmt.Errorf("%w: %s", domain.ErrPaymentFailed, mErr.GetMessage())
	}
	return resp.Token, resp.RedirectURL, nil
}

func (g *midtransGateway) CheckTransaction(ctx context.Context, orderID string) (domain.PaymentStatus, error) {
	resp, mErr := g.coreClient.CheckTransaction(orderID)
	if mErr != nil {
		return domain.PaymentStatus{}, fmt.Errorf("%w: %s", domain.ErrPaymentFailed, mErr.GetMessage())
	}
	return domain.PaymentStatus{
		OrderID:           resp.OrderID,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
	}, nil
}
