package payments

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Client клиент для работы с платежами через Stripe
// Суммы в домене хранятся в основных единицах валюты (float64),
// Stripe принимает минорные единицы (копейки/центы)
type Client struct {
	api      *client.API
	currency string
	log      Logger
}

// NewClient создает новый экземпляр платежного клиента
func NewClient(secretKey, currency string, log Logger) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Client{
		api:      api,
		currency: currency,
		log:      log,
	}
}

// toMinorUnits переводит сумму в минорные единицы валюты
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateIntent создает платежное намерение на сумму бронирования
// Метаданные привязывают платеж к брони для сверки на стороне Stripe
func (c *Client) CreateIntent(ctx context.Context, amount float64, bookingRef string, userID int64) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(c.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"booking_ref": bookingRef,
			"user_id":     fmt.Sprintf("%d", userID),
		},
	}
	params.Context = ctx

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.log.Error("Stripe create intent failed for booking_ref=%s: %v", bookingRef, err)
		if stripeErr, ok := err.(*stripe.Error); ok {
			return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, stripeErr.Msg)
		}
		return nil, fmt.Errorf("%w: create intent: %v", ErrInternal, err)
	}

	c.log.Info("Created payment intent id=%s for booking_ref=%s, amount=%d %s",
		intent.ID, bookingRef, intent.Amount, intent.Currency)

	return convertIntent(intent), nil
}

// GetIntent получает текущее состояние платежного намерения
func (c *Client) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := c.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.HTTPStatusCode == 404 {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("%w: get intent %s: %v", ErrInternal, intentID, err)
	}

	return convertIntent(intent), nil
}

// CancelIntent отменяет неподтвержденное платежное намерение
// Используется как компенсация, когда бронь не удалось зафиксировать
func (c *Client) CancelIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx

	_, err := c.api.PaymentIntents.Cancel(intentID, params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.HTTPStatusCode == 404 {
			return ErrIntentNotFound
		}
		return fmt.Errorf("%w: cancel intent %s: %v", ErrInternal, intentID, err)
	}

	c.log.Info("Cancelled payment intent id=%s", intentID)
	return nil
}

// Refund возвращает средства по оплаченному платежному намерению
func (c *Client) Refund(ctx context.Context, intentID string) (*Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
	}
	params.Context = ctx

	refund, err := c.api.Refunds.New(params)
	if err != nil {
		c.log.Error("Stripe refund failed for intent=%s: %v", intentID, err)
		if stripeErr, ok := err.(*stripe.Error); ok {
			return nil, fmt.Errorf("%w: %s", ErrRefundFailed, stripeErr.Msg)
		}
		return nil, fmt.Errorf("%w: refund intent %s: %v", ErrInternal, intentID, err)
	}

	c.log.Info("Refunded payment intent id=%s, refund_id=%s, amount=%d", intentID, refund.ID, refund.Amount)

	return &Refund{
		ID:     refund.ID,
		Status: string(refund.Status),
		Amount: refund.Amount,
	}, nil
}

func convertIntent(intent *stripe.PaymentIntent) *PaymentIntent {
	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
	}
}
