// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package order

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kervanlab/kervan/internal/catalog/product"
	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/payment"
	"github.com/kervanlab/kervan/pkg/pagination"
	"github.com/kervanlab/kervan/pkg/uuid"
)

// CartReader is the slice of the cart repository checkout needs.
type CartReader interface {
	Load(ctx context.Context, userID string) (map[string]int, error)
	Clear(ctx context.Context, userID string) error
}

// CatalogAdjuster is the slice of the product repository checkout needs.
type CatalogAdjuster interface {
	FindByIDs(ctx context.Context, ids []string) ([]product.Product, error)
	AdjustStock(ctx context.Context, deltas map[string]int) error
}

// Service orchestrates checkout and order lifecycle use cases.
type Service struct {
	repository Repository
	cart       CartReader
	catalog    CatalogAdjuster
	gateway    payment.Gateway
	logger     *slog.Logger
}

func NewService(
	repository Repository,
	cart CartReader,
	catalog CatalogAdjuster,
	gateway payment.Gateway,
	logger *slog.Logger,
) *Service {
	return &Service{
		repository: repository,
		cart:       cart,
		catalog:    catalog,
		gateway:    gateway,
		logger:     logger,
	}
}

// Checkout converts the user's cart into a paid order.
//
// ── 1. Load the cart; an empty cart cannot be checked out. ──
// ── 2. Re-validate every line against the current catalog state. ──
// ── 3. Charge the payment gateway for the recomputed total. ──
// ── 4. Decrement stock; on a concurrent sell-out the charge is refunded. ──
// ── 5. Persist the order and empty the cart. ──
//
// Prices are recomputed at checkout from the catalog, never trusted from the
// client or from stale cart data.
func (service *Service) Checkout(ctx context.Context, userID string) (*Order, error) {
	// ── 1. Load the cart ──
	quantities, err := service.cart.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("order_service_cart_load_failed: %w", err)
	}
	if len(quantities) == 0 {
		return nil, apperr.Unprocessable("Cart is empty")
	}

	// ── 2. Re-validate lines against the catalog ──
	ids := make([]string, 0, len(quantities))
	for productID := range quantities {
		ids = append(ids, productID)
	}

	products, err := service.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("order_service_catalog_load_failed: %w", err)
	}

	byID := make(map[string]product.Product, len(products))
	for _, item := range products {
		byID[item.ID] = item
	}

	newOrder := &Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: StatusPaid,
		Items:  make([]Item, 0, len(quantities)),
	}
	deltas := make(map[string]int, len(quantities))

	for productID, quantity := range quantities {
		item, exists := byID[productID]
		if !exists || !item.IsActive {
			return nil, apperr.Unprocessable("A product in your cart is no longer available")
		}
		if !item.InStock(quantity) {
			return nil, apperr.Unprocessable(fmt.Sprintf("Insufficient stock for %q", item.Name))
		}

		newOrder.Items = append(newOrder.Items, Item{
			ID:         uuid.New(),
			OrderID:    newOrder.ID,
			ProductID:  item.ID,
			Name:       item.Name,
			PriceKurus: item.PriceKurus,
			Quantity:   quantity,
		})
		newOrder.TotalKurus += item.PriceKurus * int64(quantity)
		deltas[productID] = -quantity
	}

	// ── 3. Charge the gateway ──
	charge, err := service.gateway.Charge(ctx, payment.ChargeRequest{
		OrderID:     newOrder.ID,
		UserID:      userID,
		AmountKurus: newOrder.TotalKurus,
		Currency:    "try",
		Description: fmt.Sprintf("Kervan order %s", newOrder.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("order_service_charge_failed: %w", err)
	}
	if !charge.Succeeded {
		service.logger.Warn("checkout_payment_declined",
			slog.String("user_id", userID),
			slog.String("reason", charge.FailureReason),
		)
		return nil, apperr.Unprocessable("Payment was declined")
	}
	newOrder.TransactionID = charge.TransactionID

	// ── 4. Decrement stock, refunding on a lost race ──
	if err := service.catalog.AdjustStock(ctx, deltas); err != nil {
		service.refund(ctx, charge.TransactionID, newOrder.TotalKurus)
		return nil, err
	}

	// ── 5. Persist and empty the cart ──
	if err := service.repository.Create(ctx, newOrder); err != nil {
		service.refund(ctx, charge.TransactionID, newOrder.TotalKurus)
		return nil, fmt.Errorf("order_service_create_failed: %w", err)
	}

	if err := service.cart.Clear(ctx, userID); err != nil {
		// The order exists; a stale cart is an annoyance, not a failure.
		service.logger.Warn("checkout_cart_clear_failed",
			slog.String("user_id", userID),
			slog.String("order_id", newOrder.ID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.Info("checkout_completed",
		slog.String("user_id", userID),
		slog.String("order_id", newOrder.ID),
		slog.Int64("total_kurus", newOrder.TotalKurus),
		slog.String("gateway", service.gateway.Name()),
	)

	return newOrder, nil
}

// refund undoes a charge after a post-payment failure. Refund failures are
// logged for manual reconciliation, never surfaced to the shopper.
func (service *Service) refund(ctx context.Context, transactionID string, amountKurus int64) {
	if err := service.gateway.Refund(ctx, transactionID, amountKurus); err != nil {
		service.logger.Error("checkout_refund_failed",
			slog.String("transaction_id", transactionID),
			slog.Int64("amount_kurus", amountKurus),
			slog.String("error", err.Error()),
		)
	}
}

// Get returns one order. Users can only read their own orders; admins pass
// allowAny to read all of them.
func (service *Service) Get(ctx context.Context, orderID, userID string, allowAny bool) (*Order, error) {
	found, err := service.repository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !allowAny && found.UserID != userID {
		// Report not found rather than forbidden so order IDs cannot be probed.
		return nil, apperr.NotFound("Order")
	}
	return found, nil
}

// ListForUser returns the user's own orders, newest first.
func (service *Service) ListForUser(ctx context.Context, userID string, params pagination.Params) ([]Order, int, error) {
	return service.repository.ListByUser(ctx, userID, params)
}

// ListAll returns all orders, optionally filtered by status. Admin only.
func (service *Service) ListAll(ctx context.Context, status Status, params pagination.Params) ([]Order, int, error) {
	if status != "" && !status.Valid() {
		return nil, 0, apperr.ValidationError("Invalid status filter", apperr.FieldError{
			Field:   "status",
			Message: "Unknown order status",
		})
	}
	return service.repository.List(ctx, status, params)
}

// UpdateStatus moves an order to a new lifecycle state. Admin only.
//
// Cancelling a paid order refunds the charge in full.
func (service *Service) UpdateStatus(ctx context.Context, orderID string, target Status) (*Order, error) {
	if !target.Valid() {
		return nil, apperr.ValidationError("Invalid status", apperr.FieldError{
			Field:   "status",
			Message: "Unknown order status",
		})
	}

	current, err := service.repository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(target) {
		return nil, apperr.Unprocessable(
			fmt.Sprintf("Cannot move order from %s to %s", current.Status, target),
		)
	}

	if target == StatusCancelled && current.Status == StatusPaid {
		if err := service.gateway.Refund(ctx, current.TransactionID, current.TotalKurus); err != nil {
			return nil, fmt.Errorf("order_service_cancel_refund_failed: %w", err)
		}
	}

	if err := service.repository.UpdateStatus(ctx, orderID, target); err != nil {
		return nil, err
	}

	current.Status = target
	service.logger.Info("order_status_changed",
		slog.String("order_id", orderID),
		slog.String("status", string(target)),
	)
	return current, nil
}
