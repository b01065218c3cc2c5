// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package cart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kervanlab/kervan/internal/catalog/product"
	"github.com/kervanlab/kervan/internal/platform/apperr"
)

// CatalogReader is the slice of the product repository the cart needs.
type CatalogReader interface {
	FindByID(ctx context.Context, id string) (*product.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]product.Product, error)
}

// Service orchestrates cart use cases.
type Service struct {
	repository Repository
	catalog    CatalogReader
	logger     *slog.Logger
}

func NewService(repository Repository, catalog CatalogReader, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		catalog:    catalog,
		logger:     logger,
	}
}

// Get loads and hydrates the shopper's cart with current catalog data.
//
// Lines whose product vanished from the catalog are dropped; lines whose
// product sold out stay visible but marked unavailable, and are excluded
// from the total.
func (service *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	quantities, err := service.repository.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cart_service_load_failed: %w", err)
	}

	ids := make([]string, 0, len(quantities))
	for productID := range quantities {
		ids = append(ids, productID)
	}

	products, err := service.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("cart_service_hydrate_failed: %w", err)
	}

	hydrated := &Cart{Items: make([]Item, 0, len(products))}
	for _, item := range products {
		quantity := quantities[item.ID]
		available := item.IsActive && item.InStock(quantity)

		hydrated.Items = append(hydrated.Items, Item{
			ProductID:  item.ID,
			Name:       item.Name,
			Slug:       item.Slug,
			PriceKurus: item.PriceKurus,
			Quantity:   quantity,
			Available:  available,
		})

		if available {
			hydrated.TotalKurus += item.PriceKurus * int64(quantity)
		}
	}

	return hydrated, nil
}

// SetItem upserts one cart line after checking the product exists and the
// quantity is servable.
//
// # Business Rules
//   - Quantity 0 removes the line (idempotent).
//   - Quantity must not exceed current stock or [MaxQuantityPerItem].
func (service *Service) SetItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity == 0 {
		return service.RemoveItem(ctx, userID, productID)
	}

	if quantity < 0 || quantity > MaxQuantityPerItem {
		return apperr.ValidationError("Invalid quantity", apperr.FieldError{
			Field:   "quantity",
			Message: fmt.Sprintf("Must be between 0 and %d", MaxQuantityPerItem),
		})
	}

	item, err := service.catalog.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if !item.IsActive {
		return apperr.Unprocessable("Product is no longer available")
	}
	if !item.InStock(quantity) {
		return apperr.Unprocessable("Requested quantity exceeds available stock")
	}

	if err := service.repository.SetItem(ctx, userID, productID, quantity); err != nil {
		return fmt.Errorf("cart_service_set_item_failed: %w", err)
	}

	return nil
}

// RemoveItem deletes one cart line. Removing an absent line is a no-op.
func (service *Service) RemoveItem(ctx context.Context, userID, productID string) error {
	if err := service.repository.RemoveItem(ctx, userID, productID); err != nil {
		return fmt.Errorf("cart_service_remove_item_failed: %w", err)
	}
	return nil
}

// Clear empties the cart. Used after a successful checkout and exposed as
// its own endpoint.
func (service *Service) Clear(ctx context.Context, userID string) error {
	if err := service.repository.Clear(ctx, userID); err != nil {
		return fmt.Errorf("cart_service_clear_failed: %w", err)
	}
	service.logger.Debug("cart_cleared", slog.String("user_id", userID))
	return nil
}
