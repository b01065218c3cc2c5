// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package order

import (
	"context"
	"fmt"
	"strings"
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

const orderColumns = `id, userid, status, totalkurus, transactionid, createdat, updatedat`

// Create inserts the order header and every line in one transaction so a
// partial order can never be observed.
func (repository *PostgresRepository) Create(ctx context.Context, order *Order) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "order_create_begin")
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	const headerQuery = `
		INSERT INTO shop.order (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := transaction.Exec(ctx, headerQuery,
		order.ID, order.UserID, order.Status, order.TotalKurus,
		order.TransactionID, order.CreatedAt, order.UpdatedAt,
	); err != nil {
		return dberr.Wrap(err, "order_create_header")
	}

	const itemQuery = `
		INSERT INTO shop.orderitem (id, orderid, productid, name, pricekurus, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, item := range order.Items {
		if _, err := transaction.Exec(ctx, itemQuery,
			item.ID, order.ID, item.ProductID, item.Name, item.PriceKurus, item.Quantity,
		); err != nil {
			return dberr.Wrap(err, "order_create_item")
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return dberr.Wrap(err, "order_create_commit")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM shop.order WHERE id = $1`

	order := &Order{}
	if err := repository.db.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.Status, &order.TotalKurus,
		&order.TransactionID, &order.CreatedAt, &order.UpdatedAt,
	); err != nil {
		return nil, dberr.Wrap(err, "order_find_by_id")
	}

	const itemsQuery = `
		SELECT id, orderid, productid, name, pricekurus, quantity
		FROM shop.orderitem WHERE orderid = $1`

	rows, err := repository.db.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "order_find_items")
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.Name, &item.PriceKurus, &item.Quantity,
		); err != nil {
			return nil, dberr.Wrap(err, "order_item_scan")
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "order_item_rows")
	}

	return order, nil
}

func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string, params pagination.Params) ([]Order, int, error) {
	var total int
	if err := repository.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM shop.order WHERE userid = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "order_count_by_user")
	}

	query := fmt.Sprintf(
		`SELECT %s FROM shop.order WHERE userid = $1 ORDER BY createdat DESC LIMIT $2 OFFSET $3`,
		orderColumns,
	)

	rows, err := repository.db.Query(ctx, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "order_list_by_user")
	}
	defer rows.Close()

	return collectOrders(rows, params.Limit, total)
}

func (repository *PostgresRepository) List(ctx context.Context, status Status, params pagination.Params) ([]Order, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	if err := repository.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM shop.order WHERE "+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "order_count")
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(
		"SELECT %s FROM shop.order WHERE %s ORDER BY createdat DESC LIMIT $%d OFFSET $%d",
		orderColumns, where, len(args)-1, len(args),
	)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "order_list")
	}
	defer rows.Close()

	return collectOrders(rows, params.Limit, total)
}

func (repository *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `UPDATE shop.order SET status = $2, updatedat = $3 WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return dberr.Wrap(err, "order_update_status")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func collectOrders(rows pgx.Rows, capacity, total int) ([]Order, int, error) {
	orders := make([]Order, 0, capacity)
	for rows.Next() {
		var order Order
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.Status, &order.TotalKurus,
			&order.TransactionID, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "order_scan")
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "order_rows")
	}
	return orders, total, nil
}
