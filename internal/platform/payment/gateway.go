// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package payment abstracts the card processor behind a small gateway
// interface so checkout logic never talks to a provider SDK directly.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. The order service
// depends only on [Gateway]; the concrete implementation (Stripe in
// production, Mock in development and tests) is selected at startup.
package payment

import (
	"context"
	"errors"
)

// ErrUnknownTransaction is returned by Refund when the transaction ID does
// not belong to a captured charge.
var ErrUnknownTransaction = errors.New("payment: unknown transaction")

// ChargeRequest describes one payment attempt for an order.
type ChargeRequest struct {
	// OrderID is attached to the processor transaction as metadata for
	// reconciliation.
	OrderID string
	// UserID identifies the paying customer.
	UserID string
	// AmountKurus is the charge amount in kuruş, the smallest currency unit.
	// Stored and transmitted as an integer so no float rounding ever touches
	// money.
	AmountKurus int64
	// Currency is the ISO 4217 lowercase code, "try" for the storefront.
	Currency string
	// Description appears on the customer's statement context.
	Description string
}

// ChargeResponse reports the processor's decision.
type ChargeResponse struct {
	// TransactionID is the processor-side reference for refunds and audits.
	TransactionID string
	// Succeeded reports whether funds were captured.
	Succeeded bool
	// FailureReason is a client-safe explanation when Succeeded is false.
	FailureReason string
}

// Gateway is the payment processor abstraction used by checkout.
type Gateway interface {
	// Charge attempts to capture the given amount. A declined card is a
	// successful call with Succeeded=false; an error means the processor
	// could not be reached or rejected the request itself.
	Charge(ctx context.Context, request ChargeRequest) (*ChargeResponse, error)

	// Refund returns the full captured amount of a prior transaction.
	Refund(ctx context.Context, transactionID string, amountKurus int64) error

	// Name identifies the gateway in logs.
	Name() string
}
