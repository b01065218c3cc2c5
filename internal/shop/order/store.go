// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package order

import (
	"context"

	"github.com/kervanlab/kervan/pkg/pagination"
)

// Repository defines the persistence contract for orders.
type Repository interface {
	// Create inserts the order and its items in one transaction.
	Create(ctx context.Context, order *Order) error
	// FindByID returns the order with its items.
	FindByID(ctx context.Context, id string) (*Order, error)
	// ListByUser returns the user's orders (without items), newest first.
	ListByUser(ctx context.Context, userID string, params pagination.Params) ([]Order, int, error)
	// List returns all orders, optionally filtered by status, newest first.
	List(ctx context.Context, status Status, params pagination.Params) ([]Order, int, error)
	// UpdateStatus sets the order's status.
	UpdateStatus(ctx context.Context, id string, status Status) error
}
