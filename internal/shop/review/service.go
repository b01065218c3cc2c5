// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package review

import (
	"context"
	"fmt"

	"github.com/kervanlab/kervan/internal/catalog/product"
	"github.com/kervanlab/kervan/internal/platform/validate"
	"github.com/kervanlab/kervan/pkg/pagination"
	"github.com/kervanlab/kervan/pkg/uuid"
)

// CatalogReader is the slice of the product repository reviews need.
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

// CreateInput carries a new review submission.
type CreateInput struct {
	ProductID string
	UserID    string
	Score     int
	Comment   string
}

// Create submits a review for moderation. A second review for the same
// product by the same user surfaces as a Conflict from the unique constraint.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Review, error) {
	validator := &validate.Validator{}
	if err := validator.
		UUID("product_id", input.ProductID).
		Range("score", input.Score, MinScore, MaxScore).
		MaxLen("comment", input.Comment, MaxCommentLength).
		Err(); err != nil {
		return nil, err
	}

	if _, err := service.catalog.FindByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	review := &Review{
		ID:        uuid.New(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Score:     input.Score,
		Comment:   input.Comment,
		Approved:  false,
	}

	if err := service.repository.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListForProduct returns approved reviews only.
func (service *Service) ListForProduct(ctx context.Context, productID string, params pagination.Params) ([]Review, int, error) {
	reviews, total, err := service.repository.ListApproved(ctx, productID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("review_service_list_failed: %w", err)
	}
	return reviews, total, nil
}

// ListPending returns the moderation queue, oldest first. Admin only.
func (service *Service) ListPending(ctx context.Context, params pagination.Params) ([]Review, int, error) {
	return service.repository.ListPending(ctx, params)
}

// Approve publishes a review. Admin only.
func (service *Service) Approve(ctx context.Context, id string) (*Review, error) {
	if err := service.repository.Approve(ctx, id); err != nil {
		return nil, err
	}
	return service.repository.FindByID(ctx, id)
}

// Delete removes a review, approved or not. Admin only.
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.repository.Delete(ctx, id)
}
