// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package product

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kervanlab/kervan/pkg/pagination"
	"github.com/kervanlab/kervan/pkg/slug"
	"github.com/kervanlab/kervan/pkg/uuid"
)

// Service orchestrates catalog use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// List returns a filtered page of active products.
func (service *Service) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]Product, int, error) {
	return service.repository.List(ctx, filter, params)
}

// GetBySlug resolves a product by its public slug.
func (service *Service) GetBySlug(ctx context.Context, productSlug string) (*Product, error) {
	return service.repository.FindBySlug(ctx, productSlug)
}

// Similar suggests products related to the given one.
//
// # Fallback Layers
//
// Suggestions are gathered in relevance order until [SimilarLimit] is filled:
//
//  1. Same category AND same brand.
//  2. Same category.
//  3. Same brand.
//  4. Newest active products storewide.
//
// Each layer only tops up what earlier layers left unfilled, and a product
// never appears twice. The source product itself is always excluded. The
// endpoint never fails for lack of matches; an empty catalog just yields an
// empty list.
func (service *Service) Similar(ctx context.Context, productID string) ([]Product, error) {
	source, err := service.repository.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	layers := []SimilarQuery{
		{ExcludeID: source.ID, CategoryID: source.CategoryID, Brand: source.Brand},
		{ExcludeID: source.ID, CategoryID: source.CategoryID},
		{ExcludeID: source.ID, Brand: source.Brand},
		{ExcludeID: source.ID},
	}

	seen := map[string]bool{source.ID: true}
	suggestions := make([]Product, 0, SimilarLimit)

	for _, layer := range layers {
		if len(suggestions) >= SimilarLimit {
			break
		}
		layer.Limit = SimilarLimit

		matches, err := service.repository.FindSimilar(ctx, layer)
		if err != nil {
			return nil, fmt.Errorf("product_service_similar_failed: %w", err)
		}

		for _, match := range matches {
			if len(suggestions) >= SimilarLimit {
				break
			}
			if seen[match.ID] {
				continue
			}
			seen[match.ID] = true
			suggestions = append(suggestions, match)
		}
	}

	return suggestions, nil
}

// CreateInput holds the data for a new product.
type CreateInput struct {
	Name        string
	Description string
	Brand       string
	CategoryID  string
	PriceKurus  int64
	Stock       int
	ImageURL    string
}

// Create persists a new product, active by default.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	product := &Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		Brand:       input.Brand,
		CategoryID:  input.CategoryID,
		PriceKurus:  input.PriceKurus,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}

	if err := service.repository.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("product_service_create_failed: %w", err)
	}

	service.logger.Info("product_created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)
	return product, nil
}

// UpdateInput defines the mutable fields of a product.
type UpdateInput struct {
	Name        *string
	Description *string
	Brand       *string
	CategoryID  *string
	PriceKurus  *int64
	Stock       *int
	ImageURL    *string
	IsActive    *bool
}

// Update applies a partial update. Renaming regenerates the slug.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Product, error) {
	product, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.PriceKurus != nil {
		product.PriceKurus = *input.PriceKurus
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := service.repository.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("product_service_update_failed: %w", err)
	}

	return product, nil
}

// Delete deactivates a product. Rows are never physically removed so order
// history keeps resolving.
func (service *Service) Delete(ctx context.Context, id string) error {
	if _, err := service.repository.FindByID(ctx, id); err != nil {
		return err
	}
	return service.repository.Delete(ctx, id)
}
