// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kervanlab/kervan/pkg/slug"
	"github.com/kervanlab/kervan/pkg/uuid"
)

// Service orchestrates taxonomy use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// List returns every category, ordered for display.
func (service *Service) List(ctx context.Context) ([]Category, error) {
	return service.repository.List(ctx)
}

// GetBySlug resolves a category by its public slug.
func (service *Service) GetBySlug(ctx context.Context, categorySlug string) (*Category, error) {
	return service.repository.FindBySlug(ctx, categorySlug)
}

// CreateInput holds the data for a new category.
type CreateInput struct {
	Name        string
	Description string
	SortOrder   int
}

// Create persists a new category. The slug is always derived from the name;
// Turkish product names slugify cleanly (see pkg/slug).
func (service *Service) Create(ctx context.Context, input CreateInput) (*Category, error) {
	category := &Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		SortOrder:   input.SortOrder,
	}

	if err := service.repository.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("category_service_create_failed: %w", err)
	}

	service.logger.Info("category_created", slog.String("category_id", category.ID))
	return category, nil
}

// UpdateInput defines the mutable fields of a category.
type UpdateInput struct {
	Name        *string
	Description *string
	SortOrder   *int
}

// Update applies a partial update. Renaming regenerates the slug, so
// storefront URLs follow the name.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*Category, error) {
	category, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
		category.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}

	if err := service.repository.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("category_service_update_failed: %w", err)
	}

	return category, nil
}

// Delete removes a category. Products referencing it block the delete at the
// database level and surface as 422.
func (service *Service) Delete(ctx context.Context, id string) error {
	if _, err := service.repository.FindByID(ctx, id); err != nil {
		return err
	}
	return service.repository.Delete(ctx, id)
}
