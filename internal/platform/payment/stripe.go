// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
)

// StripeGateway implements [Gateway] on Stripe PaymentIntents.
type StripeGateway struct {
	logger *slog.Logger
}

// NewStripeGateway configures the Stripe SDK with the account secret key.
func NewStripeGateway(secretKey string, logger *slog.Logger) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("payment: stripe secret key is required")
	}

	// The SDK keeps its key in package state.
	stripe.Key = secretKey

	return &StripeGateway{logger: logger}, nil
}

// Charge implements [Gateway].
//
// Amounts are already in kuruş, which is the smallest-unit integer Stripe
// expects, so no conversion happens here.
func (gateway *StripeGateway) Charge(ctx context.Context, request ChargeRequest) (*ChargeResponse, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(request.AmountKurus),
		Currency: stripe.String(request.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_id": request.OrderID,
			"user_id":  request.UserID,
		},
	}
	params.Context = ctx

	if request.Description != "" {
		params.Description = stripe.String(request.Description)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		// Card declines surface as Stripe errors with a decline code; treat
		// them as a processed-but-failed charge, not a transport failure.
		if stripeErr, ok := err.(*stripe.Error); ok {
			gateway.logger.Warn("stripe_charge_declined",
				slog.String("order_id", request.OrderID),
				slog.String("decline_code", string(stripeErr.DeclineCode)),
			)
			return &ChargeResponse{
				Succeeded:     false,
				FailureReason: "Payment was declined",
			}, nil
		}
		return nil, fmt.Errorf("payment: stripe charge failed: %w", err)
	}

	response := &ChargeResponse{TransactionID: intent.ID}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		response.Succeeded = true
	case stripe.PaymentIntentStatusCanceled:
		response.FailureReason = "Payment was cancelled"
	default:
		// The intent needs client-side confirmation steps we do not drive
		// from the API; report it as not captured.
		response.FailureReason = "Payment requires additional confirmation"
	}

	return response, nil
}

// Refund implements [Gateway].
func (gateway *StripeGateway) Refund(ctx context.Context, transactionID string, amountKurus int64) error {
	if transactionID == "" {
		return fmt.Errorf("payment: transaction ID is required")
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(transactionID),
		Amount:        stripe.Int64(amountKurus),
	}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("payment: stripe refund failed: %w", err)
	}

	gateway.logger.Info("stripe_refund_created",
		slog.String("transaction_id", transactionID),
		slog.Int64("amount_kurus", amountKurus),
	)
	return nil
}

// Name implements [Gateway].
func (gateway *StripeGateway) Name() string { return "stripe" }
