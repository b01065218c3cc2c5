// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package category manages the product taxonomy of the storefront.
package category

import "time"

// Category is a named grouping of products, addressed publicly by slug.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
