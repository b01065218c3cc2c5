// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package payment

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kervanlab/kervan/pkg/uuid"
)

// MockGateway approves every charge without touching a processor.
//
// It backs local development and tests when no Stripe key is configured.
// Transactions are remembered in memory so refunds against unknown IDs can
// still be rejected.
type MockGateway struct {
	logger *slog.Logger

	mu      sync.Mutex
	charges map[string]int64
}

// NewMockGateway creates an always-approving in-memory gateway.
func NewMockGateway(logger *slog.Logger) *MockGateway {
	return &MockGateway{
		logger:  logger,
		charges: make(map[string]int64),
	}
}

// Charge implements [Gateway].
func (gateway *MockGateway) Charge(_ context.Context, request ChargeRequest) (*ChargeResponse, error) {
	transactionID := "mock_" + uuid.New()

	gateway.mu.Lock()
	gateway.charges[transactionID] = request.AmountKurus
	gateway.mu.Unlock()

	gateway.logger.Info("mock_charge_approved",
		slog.String("order_id", request.OrderID),
		slog.String("transaction_id", transactionID),
		slog.Int64("amount_kurus", request.AmountKurus),
	)

	return &ChargeResponse{TransactionID: transactionID, Succeeded: true}, nil
}

// Refund implements [Gateway].
func (gateway *MockGateway) Refund(_ context.Context, transactionID string, amountKurus int64) error {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()

	if _, found := gateway.charges[transactionID]; !found {
		return ErrUnknownTransaction
	}

	delete(gateway.charges, transactionID)
	gateway.logger.Info("mock_refund_processed",
		slog.String("transaction_id", transactionID),
		slog.Int64("amount_kurus", amountKurus),
	)
	return nil
}

// Name implements [Gateway].
func (gateway *MockGateway) Name() string { return "mock" }
