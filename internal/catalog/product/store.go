// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package product

import (
	"context"

	"github.com/kervanlab/kervan/pkg/pagination"
)

// ListFilter narrows the public product listing.
type ListFilter struct {
	// CategoryID filters to one category when non-empty.
	CategoryID string
	// Brand filters to one brand when non-empty.
	Brand string
	// Search matches name and description, case-insensitively.
	Search string
	// Sort is one of "newest", "price_asc", "price_desc".
	Sort string
}

// SimilarQuery describes one layer of the similar-products lookup.
type SimilarQuery struct {
	// ExcludeID is the product the suggestions are for.
	ExcludeID string
	// CategoryID, when non-empty, restricts matches to the category.
	CategoryID string
	// Brand, when non-empty, restricts matches to the brand.
	Brand string
	// Limit caps the returned rows.
	Limit int
}

// Repository defines the persistence contract for products.
type Repository interface {
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]Product, int, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	// FindByIDs returns the products for the given IDs; missing IDs are
	// silently absent from the result.
	FindByIDs(ctx context.Context, ids []string) ([]Product, error)
	// FindSimilar returns active in-stock products matching one fallback
	// layer, newest first.
	FindSimilar(ctx context.Context, query SimilarQuery) ([]Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	// AdjustStock atomically adds delta (possibly negative) to the stock of
	// each product, failing the whole batch if any row would go negative.
	AdjustStock(ctx context.Context, deltas map[string]int) error
	Delete(ctx context.Context, id string) error
}
