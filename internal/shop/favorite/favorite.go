// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package favorite implements per-user product wishlists.
package favorite

import "time"

// Favorite links a user to a product they saved for later.
type Favorite struct {
	UserID    string    `json:"-"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	// Denormalized product fields for list responses.
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	PriceKurus int64  `json:"price_kurus"`
	InStock    bool   `json:"in_stock"`
}
