// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package favorite

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements [Repository] on the shop.favorite table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Add(ctx context.Context, userID, productID string) error {
	query := `
		INSERT INTO shop.favorite (userid, productid)
		VALUES ($1, $2)
		ON CONFLICT (userid, productid) DO NOTHING`

	if _, err := repository.pool.Exec(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("postgres_favorite_repo_add_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Remove(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM shop.favorite WHERE userid = $1 AND productid = $2`

	if _, err := repository.pool.Exec(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("postgres_favorite_repo_remove_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	query := `
		SELECT f.userid, f.productid, f.createdat,
		       p.name, p.slug, p.pricekurus, p.stock > 0 AND p.isactive
		FROM shop.favorite f
		JOIN catalog.product p ON p.id = f.productid
		WHERE f.userid = $1
		ORDER BY f.createdat DESC`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_favorite_repo_list_failed: %w", err)
	}
	defer rows.Close()

	favorites := make([]Favorite, 0)
	for rows.Next() {
		var favorite Favorite
		if err := rows.Scan(
			&favorite.UserID, &favorite.ProductID, &favorite.CreatedAt,
			&favorite.Name, &favorite.Slug, &favorite.PriceKurus, &favorite.InStock,
		); err != nil {
			return nil, fmt.Errorf("postgres_favorite_repo_scan_failed: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_favorite_repo_rows_failed: %w", err)
	}

	return favorites, nil
}

func (repository *PostgresRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM shop.favorite WHERE userid = $1 AND productid = $2)`

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_favorite_repo_exists_failed: %w", err)
	}
	return exists, nil
}
