// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package review

import (
	"context"

	"github.com/kervanlab/kervan/pkg/pagination"
)

// Repository defines the persistence contract for reviews.
type Repository interface {
	Create(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id string) (*Review, error)
	// ListApproved returns approved reviews for one product, newest first.
	ListApproved(ctx context.Context, productID string, params pagination.Params) ([]Review, int, error)
	// ListPending returns reviews awaiting moderation, oldest first.
	ListPending(ctx context.Context, params pagination.Params) ([]Review, int, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
