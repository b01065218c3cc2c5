// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package review implements moderated product reviews.
//
// Reviews are invisible to shoppers until an admin approves them. One
// review per user per product, enforced by a unique constraint.
package review

import "time"

// Score bounds for a review.
const (
	MinScore = 1
	MaxScore = 5
)

// MaxCommentLength bounds the free-text comment.
const MaxCommentLength = 2000

type Review struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"-"`
	// AuthorName is denormalized from the account for list responses.
	AuthorName string    `json:"author_name"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
}
