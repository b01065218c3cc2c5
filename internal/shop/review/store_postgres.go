// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package review

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kervanlab/kervan/internal/platform/dberr"
	"github.com/kervanlab/kervan/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reviewColumns = `r.id, r.productid, r.userid, a.fullname, r.score, r.comment, r.approved, r.createdat`

func scanReview(row pgx.Row, review *Review) error {
	return row.Scan(
		&review.ID, &review.ProductID, &review.UserID, &review.AuthorName,
		&review.Score, &review.Comment, &review.Approved, &review.CreatedAt,
	)
}

func (repository *PostgresRepository) Create(ctx context.Context, review *Review) error {
	const query = `
		INSERT INTO shop.review (id, productid, userid, score, comment, approved, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	review.CreatedAt = time.Now()
	_, err := repository.db.Exec(ctx, query,
		review.ID, review.ProductID, review.UserID,
		review.Score, review.Comment, review.Approved, review.CreatedAt,
	)
	if err != nil {
		// The unique (userid, productid) constraint surfaces as a Conflict.
		return dberr.Wrap(err, "review_create")
	}
	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Review, error) {
	const query = `
		SELECT ` + reviewColumns + `
		FROM shop.review r
		JOIN users.account a ON a.id = r.userid
		WHERE r.id = $1`

	review := &Review{}
	if err := scanReview(repository.db.QueryRow(ctx, query, id), review); err != nil {
		return nil, dberr.Wrap(err, "review_find_by_id")
	}
	return review, nil
}

func (repository *PostgresRepository) ListApproved(ctx context.Context, productID string, params pagination.Params) ([]Review, int, error) {
	var total int
	if err := repository.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM shop.review WHERE productid = $1 AND approved = TRUE`, productID,
	).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "review_count_approved")
	}

	const query = `
		SELECT ` + reviewColumns + `
		FROM shop.review r
		JOIN users.account a ON a.id = r.userid
		WHERE r.productid = $1 AND r.approved = TRUE
		ORDER BY r.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(ctx, query, productID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "review_list_approved")
	}
	defer rows.Close()

	return collectReviews(rows, params.Limit, total)
}

func (repository *PostgresRepository) ListPending(ctx context.Context, params pagination.Params) ([]Review, int, error) {
	var total int
	if err := repository.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM shop.review WHERE approved = FALSE`,
	).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "review_count_pending")
	}

	const query = `
		SELECT ` + reviewColumns + `
		FROM shop.review r
		JOIN users.account a ON a.id = r.userid
		WHERE r.approved = FALSE
		ORDER BY r.createdat ASC
		LIMIT $1 OFFSET $2`

	rows, err := repository.db.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "review_list_pending")
	}
	defer rows.Close()

	return collectReviews(rows, params.Limit, total)
}

func (repository *PostgresRepository) Approve(ctx context.Context, id string) error {
	tag, err := repository.db.Exec(ctx,
		`UPDATE shop.review SET approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "review_approve")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM shop.review WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "review_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func collectReviews(rows pgx.Rows, capacity, total int) ([]Review, int, error) {
	reviews := make([]Review, 0, capacity)
	for rows.Next() {
		var review Review
		if err := scanReview(rows, &review); err != nil {
			return nil, 0, dberr.Wrap(err, "review_scan")
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "review_rows")
	}
	return reviews, total, nil
}
