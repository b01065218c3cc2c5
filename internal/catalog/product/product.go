// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package product manages the sellable catalog of the storefront.
package product

import "time"

// Product is a sellable catalog item.
//
// # Money
//
// PriceKurus is the price in kuruş (1/100 TRY) as an integer. Floats never
// touch monetary values anywhere in the system.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Brand       string    `json:"brand"`
	CategoryID  string    `json:"category_id"`
	PriceKurus  int64     `json:"price_kurus"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InStock reports whether at least the requested quantity is available.
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}

// SimilarLimit caps how many suggestions the similar-products endpoint returns.
const SimilarLimit = 8
