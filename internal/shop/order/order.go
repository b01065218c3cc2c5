// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package order implements checkout and order lifecycle management.
package order

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions maps each status to the statuses it may move to.
//
// Delivered and cancelled are terminal. Cancellation is allowed up until
// the order ships.
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

// Valid reports whether the status is a known lifecycle state.
func (status Status) Valid() bool {
	switch status {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
func (status Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Item is one purchased line, with the price frozen at checkout time.
type Item struct {
	ID         string `json:"id"`
	OrderID    string `json:"-"`
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceKurus int64  `json:"price_kurus"`
	Quantity   int    `json:"quantity"`
}

// Order is a completed checkout.
type Order struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Status Status `json:"status"`
	// TotalKurus is the sum of line totals at checkout time.
	TotalKurus int64 `json:"total_kurus"`
	// TransactionID is the payment gateway's charge reference.
	TransactionID string    `json:"-"`
	Items         []Item    `json:"items,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
