// Package payment adapts the Stripe Checkout API to the gateway port used by
// the wallet top-up flow.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
)

// StripeGateway implements the checkout gateway against Stripe Checkout
// Sessions in one-time payment mode.
type StripeGateway struct {
	webhookSecret string
}

// Config for creating a new Stripe gateway.
type Config struct {
	SecretKey     string // STRIPE_SECRET_KEY
	WebhookSecret string // STRIPE_WEBHOOK_SECRET
}

// NewStripeGateway creates the gateway and sets the stripe-go global key.
func NewStripeGateway(cfg Config) *StripeGateway {
	stripe.Key = cfg.SecretKey
	return &StripeGateway{webhookSecret: cfg.WebhookSecret}
}

var _ portssvc.CheckoutGateway = (*StripeGateway)(nil)

const productName = "SynchroAI Wallet Top-up"

// gatewayTimeout bounds each round trip to the Stripe API.
const gatewayTimeout = 15 * time.Second

func (g *StripeGateway) CreateSession(ctx context.Context, userID string, amount decimal.Decimal, originURL string) (*portssvc.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(productName),
					},
					UnitAmount: stripe.Int64(amountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(originURL + "/wallet?topup=success&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(originURL + "/wallet?topup=cancelled"),
		Metadata: map[string]string{
			"userId": userID,
			"amount": amount.String(),
		},
	}
	params.Context = ctx

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, gatewayError("failed to create checkout session", err)
	}

	return &portssvc.CheckoutSession{
		SessionID:   sess.ID,
		RedirectURL: sess.URL,
		UserID:      userID,
		AmountCents: amountCents,
	}, nil
}

func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*portssvc.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := checkoutsession.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			return nil, apperrors.ErrNotFound
		}
		return nil, gatewayError("failed to retrieve checkout session "+sessionID, err)
	}
	return toPortSession(sess), nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*portssvc.CheckoutSession, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", apperrors.ErrUnauthorized)
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := sess.UnmarshalJSON(event.Data.Raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}
	return toPortSession(&sess), nil
}

func toPortSession(sess *stripe.CheckoutSession) *portssvc.CheckoutSession {
	out := &portssvc.CheckoutSession{
		SessionID:   sess.ID,
		RedirectURL: sess.URL,
		AmountCents: sess.AmountTotal,
		Paid:        sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
	if sess.Metadata != nil {
		out.UserID = sess.Metadata["userId"]
	}
	return out
}

func gatewayError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, apperrors.ErrGatewayUnavailable, err)
}
