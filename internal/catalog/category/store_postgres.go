// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package category

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kervanlab/kervan/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const categoryColumns = `id, name, slug, description, sortorder, createdat, updatedat`

func (repository *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	const query = `
		SELECT ` + categoryColumns + `
		FROM catalog.category
		ORDER BY sortorder ASC, name ASC`

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "category_list")
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var category Category
		if err := rows.Scan(
			&category.ID, &category.Name, &category.Slug,
			&category.Description, &category.SortOrder,
			&category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "category_scan")
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "category_rows")
	}

	return categories, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Category, error) {
	const query = `
		SELECT ` + categoryColumns + `
		FROM catalog.category
		WHERE id = $1`

	category := &Category{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Slug,
		&category.Description, &category.SortOrder,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "category_find_by_id")
	}

	return category, nil
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	const query = `
		SELECT ` + categoryColumns + `
		FROM catalog.category
		WHERE slug = $1`

	category := &Category{}
	err := repository.db.QueryRow(ctx, query, slug).Scan(
		&category.ID, &category.Name, &category.Slug,
		&category.Description, &category.SortOrder,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "category_find_by_slug")
	}

	return category, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, category *Category) error {
	const query = `
		INSERT INTO catalog.category (id, name, slug, description, sortorder, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		category.ID, category.Name, category.Slug,
		category.Description, category.SortOrder,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "category_create")
	}

	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, category *Category) error {
	const query = `
		UPDATE catalog.category
		SET name = $2, slug = $3, description = $4, sortorder = $5, updatedat = $6
		WHERE id = $1`

	category.UpdatedAt = time.Now()
	_, err := repository.db.Exec(ctx, query,
		category.ID, category.Name, category.Slug,
		category.Description, category.SortOrder, category.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "category_update")
	}

	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM catalog.category WHERE id = $1`
	if _, err := repository.db.Exec(ctx, query, id); err != nil {
		return dberr.Wrap(err, "category_delete")
	}
	return nil
}
