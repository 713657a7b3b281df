package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

const midtransProvider = "midtrans"

// MidtransGateway opens Snap transactions. Snap has no customer objects,
// so customer references are derived from the user id.
type MidtransGateway struct {
	client  snap.Client
	siteURL string
}

func NewMidtransGateway(serverKey string, production bool, siteURL string) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	g := &MidtransGateway{siteURL: strings.TrimRight(siteURL, "/")}
	g.client.New(serverKey, env)
	return g
}

func (g *MidtransGateway) Name() string { return midtransProvider }

func (g *MidtransGateway) Mode() Mode { return ModeHosted }

func (g *MidtransGateway) CreateCustomer(ctx context.Context, req CustomerRequest) (string, error) {
	if req.UserID == "" {
		return "", &ProviderError{Provider: midtransProvider, Type: "invalid_request_error", Message: "user id is required"}
	}
	return "midtrans-" + req.UserID, nil
}

func (g *MidtransGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	snapReq := g.snapRequest(req)

	resp, midErr := g.client.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, &ProviderError{
			Provider: midtransProvider,
			Type:     fmt.Sprintf("status_%d", midErr.StatusCode),
			Message:  midErr.GetMessage(),
		}
	}

	return &Session{
		ID:          resp.Token,
		RedirectURL: resp.RedirectURL,
		Mode:        ModeHosted,
	}, nil
}

func (g *MidtransGateway) snapRequest(req SessionRequest) *snap.Request {
	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.SubscriptionID,
			GrossAmt: req.MonthlyAmount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/return?subscription_id=%s", g.siteURL, req.SubscriptionID),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.SubscriptionID,
				Price: req.MonthlyAmount,
				Qty:   1,
				Name:  productName(req.Metal),
			},
		},
		CustomField1:    req.UserID,
		CustomField2:    req.CustomerID,
		EnabledPayments: snap.AllSnapPaymentType,
	}
}
