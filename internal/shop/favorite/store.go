// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package favorite

import "context"

// Repository defines the persistence contract for favorites.
type Repository interface {
	// Add inserts the pair; adding twice is a no-op.
	Add(ctx context.Context, userID, productID string) error
	// Remove deletes the pair; removing an absent pair is a no-op.
	Remove(ctx context.Context, userID, productID string) error
	// ListByUser returns the user's favorites joined with catalog data,
	// newest first.
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
	// Exists reports whether the pair is present.
	Exists(ctx context.Context, userID, productID string) (bool, error)
}
