// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/dberr"
	"github.com/kervanlab/kervan/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, name, slug, description, brand, categoryid, pricekurus, stock, imageurl, isactive, createdat, updatedat`

func scanProduct(row pgx.Row, product *Product) error {
	return row.Scan(
		&product.ID, &product.Name, &product.Slug, &product.Description,
		&product.Brand, &product.CategoryID, &product.PriceKurus,
		&product.Stock, &product.ImageURL, &product.IsActive,
		&product.CreatedAt, &product.UpdatedAt,
	)
}

// List returns a filtered, sorted page of active products and the total count.
func (repository *PostgresRepository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]Product, int, error) {
	conditions := []string{"isactive = TRUE"}
	args := []any{}

	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("categoryid = $%d", len(args)))
	}
	if filter.Brand != "" {
		args = append(args, filter.Brand)
		conditions = append(conditions, fmt.Sprintf("brand = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	where := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM catalog.product WHERE " + where
	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "product_count")
	}

	orderBy := "createdat DESC"
	switch filter.Sort {
	case "price_asc":
		orderBy = "pricekurus ASC"
	case "price_desc":
		orderBy = "pricekurus DESC"
	}

	args = append(args, params.Limit, params.Offset())
	listQuery := fmt.Sprintf(
		"SELECT %s FROM catalog.product WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, where, orderBy, len(args)-1, len(args),
	)

	rows, err := repository.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "product_list")
	}
	defer rows.Close()

	products := make([]Product, 0, params.Limit)
	for rows.Next() {
		var product Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, 0, dberr.Wrap(err, "product_scan")
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "product_rows")
	}

	return products, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	const query = `SELECT ` + productColumns + ` FROM catalog.product WHERE id = $1`

	product := &Product{}
	if err := scanProduct(repository.db.QueryRow(ctx, query, id), product); err != nil {
		return nil, dberr.Wrap(err, "product_find_by_id")
	}
	return product, nil
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	const query = `SELECT ` + productColumns + ` FROM catalog.product WHERE slug = $1 AND isactive = TRUE`

	product := &Product{}
	if err := scanProduct(repository.db.QueryRow(ctx, query, slug), product); err != nil {
		return nil, dberr.Wrap(err, "product_find_by_slug")
	}
	return product, nil
}

func (repository *PostgresRepository) FindByIDs(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	const query = `SELECT ` + productColumns + ` FROM catalog.product WHERE id = ANY($1)`

	rows, err := repository.db.Query(ctx, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "product_find_by_ids")
	}
	defer rows.Close()

	products := make([]Product, 0, len(ids))
	for rows.Next() {
		var product Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, dberr.Wrap(err, "product_scan")
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// FindSimilar returns one fallback layer of suggestions: active, in stock,
// excluding the source product, newest first.
func (repository *PostgresRepository) FindSimilar(ctx context.Context, similar SimilarQuery) ([]Product, error) {
	conditions := []string{"isactive = TRUE", "stock > 0", "id <> $1"}
	args := []any{similar.ExcludeID}

	if similar.CategoryID != "" {
		args = append(args, similar.CategoryID)
		conditions = append(conditions, fmt.Sprintf("categoryid = $%d", len(args)))
	}
	if similar.Brand != "" {
		args = append(args, similar.Brand)
		conditions = append(conditions, fmt.Sprintf("brand = $%d", len(args)))
	}

	args = append(args, similar.Limit)
	query := fmt.Sprintf(
		"SELECT %s FROM catalog.product WHERE %s ORDER BY createdat DESC LIMIT $%d",
		productColumns, strings.Join(conditions, " AND "), len(args),
	)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "product_find_similar")
	}
	defer rows.Close()

	products := make([]Product, 0, similar.Limit)
	for rows.Next() {
		var product Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, dberr.Wrap(err, "product_scan")
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (repository *PostgresRepository) Create(ctx context.Context, product *Product) error {
	const query = `
		INSERT INTO catalog.product (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		product.ID, product.Name, product.Slug, product.Description,
		product.Brand, product.CategoryID, product.PriceKurus,
		product.Stock, product.ImageURL, product.IsActive,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "product_create")
	}

	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, product *Product) error {
	const query = `
		UPDATE catalog.product
		SET name = $2, slug = $3, description = $4, brand = $5, categoryid = $6,
		    pricekurus = $7, stock = $8, imageurl = $9, isactive = $10, updatedat = $11
		WHERE id = $1`

	product.UpdatedAt = time.Now()
	_, err := repository.db.Exec(ctx, query,
		product.ID, product.Name, product.Slug, product.Description,
		product.Brand, product.CategoryID, product.PriceKurus,
		product.Stock, product.ImageURL, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "product_update")
	}

	return nil
}

// AdjustStock applies all deltas in one transaction. The stock CHECK
// constraint rejects any row that would go negative, which rolls back the
// whole batch; the caller sees a Conflict.
func (repository *PostgresRepository) AdjustStock(ctx context.Context, deltas map[string]int) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "product_stock_begin")
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	const query = `
		UPDATE catalog.product
		SET stock = stock + $2, updatedat = $3
		WHERE id = $1`

	now := time.Now()
	for productID, delta := range deltas {
		tag, err := transaction.Exec(ctx, query, productID, delta, now)
		if err != nil {
			// Includes CHECK violations when stock would drop below zero.
			return apperr.Conflict("Insufficient stock")
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Product")
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "product_stock_commit")
	}

	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `UPDATE catalog.product SET isactive = FALSE, updatedat = $2 WHERE id = $1`
	if _, err := repository.db.Exec(ctx, query, id, time.Now()); err != nil {
		return dberr.Wrap(err, "product_delete")
	}
	return nil
}
