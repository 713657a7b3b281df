package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

const stripeProvider = "stripe"

type StripeGateway struct {
	api     *client.API
	siteURL string
}

func NewStripeGateway(secretKey, siteURL string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:     api,
		siteURL: strings.TrimRight(siteURL, "/"),
	}
}

func (g *StripeGateway) Name() string { return stripeProvider }

func (g *StripeGateway) Mode() Mode { return ModeEmbedded }

func (g *StripeGateway) CreateCustomer(ctx context.Context, req CustomerRequest) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(req.Email),
	}
	params.Context = ctx
	params.AddMetadata(MetadataUserID, req.UserID)

	c, err := g.api.Customers.New(params)
	if err != nil {
		return "", wrapStripeError(err)
	}
	return c.ID, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := g.sessionParams(req)
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return &Session{
		ID:           s.ID,
		ClientSecret: s.ClientSecret,
		Mode:         ModeEmbedded,
	}, nil
}

func (g *StripeGateway) sessionParams(req SessionRequest) *stripe.CheckoutSessionParams {
	metadata := map[string]string{
		MetadataUserID:                req.UserID,
		MetadataPendingSubscriptionID: req.SubscriptionID,
	}

	return &stripe.CheckoutSessionParams{
		UIMode:   stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(req.CustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(productName(req.Metal)),
						Description: stripe.String(productDescription(req)),
					},
					UnitAmount: stripe.Int64(req.MonthlyAmount * 100),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		ReturnURL: stripe.String(fmt.Sprintf("%s/return?session_id={CHECKOUT_SESSION_ID}", g.siteURL)),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
		Metadata: metadata,
	}
}

func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &ProviderError{
			Provider: stripeProvider,
			Type:     string(stripeErr.Type),
			Message:  stripeErr.Msg,
		}
	}
	return &ProviderError{Provider: stripeProvider, Type: "api_error", Message: err.Error()}
}
