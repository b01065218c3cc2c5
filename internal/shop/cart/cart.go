// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package cart implements the shopping cart on Redis.
//
// Carts are hot, mutable, and disposable, which makes them a poor fit for
// the relational store: every quantity tweak would be a SQL write. Each cart
// lives as one Redis hash (product ID → quantity) with a sliding TTL, so
// abandoned carts evaporate on their own.
package cart

import "time"

// TTL is the sliding expiry of a cart. Every write re-arms it.
const TTL = 30 * 24 * time.Hour

// MaxQuantityPerItem bounds a single line to keep carts sane.
const MaxQuantityPerItem = 50

// Item is one line of a cart, hydrated with current catalog data.
type Item struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	PriceKurus int64  `json:"price_kurus"`
	Quantity   int    `json:"quantity"`
	// Available mirrors current stock; the storefront greys out lines whose
	// product sold out after it was added.
	Available bool `json:"available"`
}

// Cart is the hydrated view of a shopper's cart.
type Cart struct {
	Items      []Item `json:"items"`
	TotalKurus int64  `json:"total_kurus"`
}
