package payment

import (
	"context"
	"errors"
	"testing"

	"pharaohvault-be/pkg/metal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

func sampleRequest() SessionRequest {
	return SessionRequest{
		CustomerID:     "cus_123",
		SubscriptionID: "8a1c8f0e-2a49-4f0c-9d61-0c7e1e0b1f00",
		UserID:         "user-1",
		Email:          "holder@example.com",
		Metal:          metal.Gold,
		TargetWeight:   10,
		TargetUnit:     metal.Gram,
		MonthlyAmount:  250,
	}
}

func TestStripeSessionParams(t *testing.T) {
	g := NewStripeGateway("sk_test_x", "https://vault.example.com/")
	params := g.sessionParams(sampleRequest())

	assert.Equal(t, string(stripe.CheckoutSessionUIModeEmbedded), *params.UIMode)
	assert.Equal(t, string(stripe.CheckoutSessionModeSubscription), *params.Mode)
	assert.Equal(t, "cus_123", *params.Customer)
	assert.Equal(t, "https://vault.example.com/return?session_id={CHECKOUT_SESSION_ID}", *params.ReturnURL)

	require.Len(t, params.LineItems, 1)
	price := params.LineItems[0].PriceData
	assert.Equal(t, int64(25000), *price.UnitAmount)
	assert.Equal(t, "usd", *price.Currency)
	assert.Equal(t, "month", *price.Recurring.Interval)
	assert.Equal(t, "Gold Plan", *price.ProductData.Name)

	assert.Equal(t, "8a1c8f0e-2a49-4f0c-9d61-0c7e1e0b1f00", params.SubscriptionData.Metadata[MetadataPendingSubscriptionID])
	assert.Equal(t, "user-1", params.SubscriptionData.Metadata[MetadataUserID])
}

func TestWrapStripeError(t *testing.T) {
	err := wrapStripeError(&stripe.Error{Type: stripe.ErrorTypeCard, Msg: "card declined"})

	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "stripe", pe.Provider)
	assert.Equal(t, "card_error", pe.Type)
	assert.Equal(t, "card declined", pe.Message)

	err = wrapStripeError(errors.New("connection reset"))
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "api_error", pe.Type)
}

func TestMidtransSnapRequest(t *testing.T) {
	g := NewMidtransGateway("SB-Mid-server-x", false, "https://vault.example.com")
	req := sampleRequest()
	snapReq := g.snapRequest(req)

	assert.Equal(t, req.SubscriptionID, snapReq.TransactionDetails.OrderID)
	assert.Equal(t, int64(250), snapReq.TransactionDetails.GrossAmt)
	assert.Equal(t, "holder@example.com", snapReq.CustomerDetail.Email)
	require.NotNil(t, snapReq.Items)
	assert.Equal(t, "Gold Plan", (*snapReq.Items)[0].Name)
}

func TestMidtransCustomerReference(t *testing.T) {
	g := NewMidtransGateway("SB-Mid-server-x", false, "https://vault.example.com")

	id, err := g.CreateCustomer(context.Background(), CustomerRequest{UserID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "midtrans-abc", id)

	_, err = g.CreateCustomer(context.Background(), CustomerRequest{})
	assert.Error(t, err)
}
