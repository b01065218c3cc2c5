// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package order

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kervanlab/kervan/internal/catalog/product"
	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/payment"
	"github.com/kervanlab/kervan/pkg/pagination"
)

type fakeCart struct {
	items   map[string]int
	cleared bool
}

func (cart *fakeCart) Load(context.Context, string) (map[string]int, error) {
	return cart.items, nil
}

func (cart *fakeCart) Clear(context.Context, string) error {
	cart.cleared = true
	return nil
}

type fakeCatalog struct {
	products      []product.Product
	appliedDeltas map[string]int
	adjustErr     error
}

func (catalog *fakeCatalog) FindByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	var found []product.Product
	for _, id := range ids {
		for _, p := range catalog.products {
			if p.ID == id {
				found = append(found, p)
			}
		}
	}
	return found, nil
}

func (catalog *fakeCatalog) AdjustStock(_ context.Context, deltas map[string]int) error {
	if catalog.adjustErr != nil {
		return catalog.adjustErr
	}
	catalog.appliedDeltas = deltas
	return nil
}

type fakeOrderRepository struct {
	orders    map[string]*Order
	createErr error
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[string]*Order)}
}

func (repo *fakeOrderRepository) Create(_ context.Context, order *Order) error {
	if repo.createErr != nil {
		return repo.createErr
	}
	clone := *order
	repo.orders[order.ID] = &clone
	return nil
}

func (repo *fakeOrderRepository) FindByID(_ context.Context, id string) (*Order, error) {
	order, ok := repo.orders[id]
	if !ok {
		return nil, apperr.NotFound("Order")
	}
	clone := *order
	return &clone, nil
}

func (repo *fakeOrderRepository) ListByUser(_ context.Context, userID string, _ pagination.Params) ([]Order, int, error) {
	var result []Order
	for _, order := range repo.orders {
		if order.UserID == userID {
			result = append(result, *order)
		}
	}
	return result, len(result), nil
}

func (repo *fakeOrderRepository) List(_ context.Context, status Status, _ pagination.Params) ([]Order, int, error) {
	var result []Order
	for _, order := range repo.orders {
		if status == "" || order.Status == status {
			result = append(result, *order)
		}
	}
	return result, len(result), nil
}

func (repo *fakeOrderRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	order, ok := repo.orders[id]
	if !ok {
		return apperr.NotFound("Order")
	}
	order.Status = status
	return nil
}

// decliningGateway rejects every charge, mimicking a card failure.
type decliningGateway struct{}

func (decliningGateway) Charge(context.Context, payment.ChargeRequest) (*payment.ChargeResponse, error) {
	return &payment.ChargeResponse{Succeeded: false, FailureReason: "card_declined"}, nil
}

func (decliningGateway) Refund(context.Context, string, int64) error { return nil }
func (decliningGateway) Name() string                                { return "declining" }

// refundRecorder approves charges and records refunds.
type refundRecorder struct {
	payment.Gateway
	refundedTx     string
	refundedAmount int64
}

func newRefundRecorder() *refundRecorder {
	return &refundRecorder{Gateway: payment.NewMockGateway(testLogger())}
}

func (gateway *refundRecorder) Refund(ctx context.Context, transactionID string, amountKurus int64) error {
	gateway.refundedTx = transactionID
	gateway.refundedAmount = amountKurus
	return gateway.Gateway.Refund(ctx, transactionID, amountKurus)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func shelfItem(id string, priceKurus int64, stock int) product.Product {
	return product.Product{
		ID:         id,
		Name:       "Item " + id,
		PriceKurus: priceKurus,
		Stock:      stock,
		IsActive:   true,
	}
}

func TestCheckout_HappyPath(t *testing.T) {
	cart := &fakeCart{items: map[string]int{"p1": 2, "p2": 1}}
	catalog := &fakeCatalog{products: []product.Product{
		shelfItem("p1", 5000, 10),
		shelfItem("p2", 12000, 3),
	}}
	repo := newFakeOrderRepository()
	service := NewService(repo, cart, catalog, payment.NewMockGateway(testLogger()), testLogger())

	created, err := service.Checkout(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, created.Status)
	assert.Equal(t, int64(2*5000+12000), created.TotalKurus)
	assert.NotEmpty(t, created.TransactionID)
	assert.Len(t, created.Items, 2)

	assert.Equal(t, map[string]int{"p1": -2, "p2": -1}, catalog.appliedDeltas)
	assert.True(t, cart.cleared)
	assert.Contains(t, repo.orders, created.ID)
}

func TestCheckout_EmptyCartIsRejected(t *testing.T) {
	service := NewService(newFakeOrderRepository(), &fakeCart{items: map[string]int{}},
		&fakeCatalog{}, payment.NewMockGateway(testLogger()), testLogger())

	_, err := service.Checkout(context.Background(), "user-1")
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

func TestCheckout_InsufficientStockIsRejectedBeforeCharging(t *testing.T) {
	cart := &fakeCart{items: map[string]int{"p1": 5}}
	catalog := &fakeCatalog{products: []product.Product{shelfItem("p1", 5000, 2)}}
	gateway := newRefundRecorder()
	service := NewService(newFakeOrderRepository(), cart, catalog, gateway, testLogger())

	_, err := service.Checkout(context.Background(), "user-1")
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)

	// Nothing was charged, so nothing should have been refunded.
	assert.Empty(t, gateway.refundedTx)
	assert.Nil(t, catalog.appliedDeltas)
	assert.False(t, cart.cleared)
}

func TestCheckout_VanishedProductIsRejected(t *testing.T) {
	cart := &fakeCart{items: map[string]int{"ghost": 1}}
	service := NewService(newFakeOrderRepository(), cart, &fakeCatalog{},
		payment.NewMockGateway(testLogger()), testLogger())

	_, err := service.Checkout(context.Background(), "user-1")
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

func TestCheckout_DeclinedPaymentLeavesStockUntouched(t *testing.T) {
	cart := &fakeCart{items: map[string]int{"p1": 1}}
	catalog := &fakeCatalog{products: []product.Product{shelfItem("p1", 5000, 10)}}
	service := NewService(newFakeOrderRepository(), cart, catalog, decliningGateway{}, testLogger())

	_, err := service.Checkout(context.Background(), "user-1")
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)

	assert.Nil(t, catalog.appliedDeltas)
	assert.False(t, cart.cleared)
}

func TestCheckout_StockRaceRefundsTheCharge(t *testing.T) {
	cart := &fakeCart{items: map[string]int{"p1": 1}}
	catalog := &fakeCatalog{
		products:  []product.Product{shelfItem("p1", 5000, 10)},
		adjustErr: apperr.Conflict("Insufficient stock"),
	}
	gateway := newRefundRecorder()
	service := NewService(newFakeOrderRepository(), cart, catalog, gateway, testLogger())

	_, err := service.Checkout(context.Background(), "user-1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	assert.NotEmpty(t, gateway.refundedTx)
	assert.Equal(t, int64(5000), gateway.refundedAmount)
	assert.False(t, cart.cleared)
}

func TestCheckout_PersistFailureRefundsTheCharge(t *testing.T) {
	cart := &fakeCart{items: map[string]int{"p1": 1}}
	catalog := &fakeCatalog{products: []product.Product{shelfItem("p1", 5000, 10)}}
	repo := newFakeOrderRepository()
	repo.createErr = errors.New("connection reset")
	gateway := newRefundRecorder()
	service := NewService(repo, cart, catalog, gateway, testLogger())

	_, err := service.Checkout(context.Background(), "user-1")
	require.Error(t, err)
	assert.NotEmpty(t, gateway.refundedTx)
}

func TestGet_UsersCannotReadOthersOrders(t *testing.T) {
	repo := newFakeOrderRepository()
	repo.orders["o1"] = &Order{ID: "o1", UserID: "owner", Status: StatusPaid}
	service := NewService(repo, &fakeCart{}, &fakeCatalog{}, payment.NewMockGateway(testLogger()), testLogger())

	_, err := service.Get(context.Background(), "o1", "intruder", false)
	require.Error(t, err)
	// Scoping failures read as not found so order IDs cannot be probed.
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	found, err := service.Get(context.Background(), "o1", "owner", false)
	require.NoError(t, err)
	assert.Equal(t, "o1", found.ID)

	asAdmin, err := service.Get(context.Background(), "o1", "", true)
	require.NoError(t, err)
	assert.Equal(t, "o1", asAdmin.ID)
}

func TestUpdateStatus_EnforcesLifecycle(t *testing.T) {
	repo := newFakeOrderRepository()
	repo.orders["o1"] = &Order{ID: "o1", UserID: "u1", Status: StatusPaid, TransactionID: "tx-1", TotalKurus: 9900}
	service := NewService(repo, &fakeCart{}, &fakeCatalog{}, payment.NewMockGateway(testLogger()), testLogger())

	updated, err := service.UpdateStatus(context.Background(), "o1", StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, updated.Status)

	// Shipped orders cannot be cancelled.
	_, err = service.UpdateStatus(context.Background(), "o1", StatusCancelled)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)

	updated, err = service.UpdateStatus(context.Background(), "o1", StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, updated.Status)

	// Delivered is terminal.
	_, err = service.UpdateStatus(context.Background(), "o1", StatusShipped)
	require.Error(t, err)
}

func TestUpdateStatus_CancellingPaidOrderRefunds(t *testing.T) {
	repo := newFakeOrderRepository()
	gateway := newRefundRecorder()

	// Charge through the mock first so the refund finds the transaction.
	charge, err := gateway.Charge(context.Background(), payment.ChargeRequest{
		OrderID: "o1", UserID: "u1", AmountKurus: 9900, Currency: "try",
	})
	require.NoError(t, err)

	repo.orders["o1"] = &Order{
		ID: "o1", UserID: "u1", Status: StatusPaid,
		TransactionID: charge.TransactionID, TotalKurus: 9900,
	}
	service := NewService(repo, &fakeCart{}, &fakeCatalog{}, gateway, testLogger())

	updated, err := service.UpdateStatus(context.Background(), "o1", StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, updated.Status)
	assert.Equal(t, charge.TransactionID, gateway.refundedTx)
	assert.Equal(t, int64(9900), gateway.refundedAmount)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	service := NewService(newFakeOrderRepository(), &fakeCart{}, &fakeCatalog{},
		payment.NewMockGateway(testLogger()), testLogger())

	_, err := service.UpdateStatus(context.Background(), "o1", Status("teleported"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
