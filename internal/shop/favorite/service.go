// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package favorite

import (
	"context"
	"fmt"

	"github.com/kervanlab/kervan/internal/catalog/product"
)

// CatalogReader is the slice of the product repository favorites need.
type CatalogReader interface {
	FindByID(ctx context.Context, id string) (*product.Product, error)
}

type Service struct {
	repository Repository
	catalog    CatalogReader
}

func NewService(repository Repository, catalog CatalogReader) *Service {
	return &Service{repository: repository, catalog: catalog}
}

// Add saves a product to the user's favorites. The product must exist in
// the catalog; inactive products can still be favorited, they just render
// as out of stock.
func (service *Service) Add(ctx context.Context, userID, productID string) error {
	if _, err := service.catalog.FindByID(ctx, productID); err != nil {
		return err
	}
	if err := service.repository.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("favorite_service_add_failed: %w", err)
	}
	return nil
}

func (service *Service) Remove(ctx context.Context, userID, productID string) error {
	if err := service.repository.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("favorite_service_remove_failed: %w", err)
	}
	return nil
}

func (service *Service) List(ctx context.Context, userID string) ([]Favorite, error) {
	favorites, err := service.repository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("favorite_service_list_failed: %w", err)
	}
	return favorites, nil
}
