// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package cart

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kervanlab/kervan/internal/catalog/product"
	"github.com/kervanlab/kervan/internal/platform/apperr"
)

type fakeRepository struct {
	items map[string]int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: make(map[string]int)}
}

func (repo *fakeRepository) Load(context.Context, string) (map[string]int, error) {
	return repo.items, nil
}

func (repo *fakeRepository) SetItem(_ context.Context, _, productID string, quantity int) error {
	repo.items[productID] = quantity
	return nil
}

func (repo *fakeRepository) RemoveItem(_ context.Context, _, productID string) error {
	delete(repo.items, productID)
	return nil
}

func (repo *fakeRepository) Clear(context.Context, string) error {
	repo.items = make(map[string]int)
	return nil
}

type fakeCatalog struct {
	products map[string]product.Product
}

func (catalog *fakeCatalog) FindByID(_ context.Context, id string) (*product.Product, error) {
	item, ok := catalog.products[id]
	if !ok {
		return nil, apperr.NotFound("Product")
	}
	return &item, nil
}

func (catalog *fakeCatalog) FindByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	var found []product.Product
	for _, id := range ids {
		if item, ok := catalog.products[id]; ok {
			found = append(found, item)
		}
	}
	return found, nil
}

func newTestService(repo *fakeRepository, catalog *fakeCatalog) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, catalog, logger)
}

func shelfItem(id string, priceKurus int64, stock int) product.Product {
	return product.Product{
		ID:         id,
		Name:       "Item " + id,
		Slug:       "item-" + id,
		PriceKurus: priceKurus,
		Stock:      stock,
		IsActive:   true,
	}
}

func TestGet_HydratesAndTotals(t *testing.T) {
	repo := newFakeRepository()
	repo.items = map[string]int{"p1": 2, "p2": 1}
	catalog := &fakeCatalog{products: map[string]product.Product{
		"p1": shelfItem("p1", 5000, 10),
		"p2": shelfItem("p2", 12000, 5),
	}}
	service := newTestService(repo, catalog)

	loaded, err := service.Get(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, loaded.Items, 2)
	assert.Equal(t, int64(2*5000+12000), loaded.TotalKurus)
	for _, line := range loaded.Items {
		assert.True(t, line.Available)
		assert.NotEmpty(t, line.Name)
	}
}

func TestGet_SoldOutLinesAreVisibleButExcludedFromTotal(t *testing.T) {
	repo := newFakeRepository()
	repo.items = map[string]int{"p1": 3, "p2": 1}
	soldOut := shelfItem("p1", 5000, 1)
	catalog := &fakeCatalog{products: map[string]product.Product{
		"p1": soldOut,
		"p2": shelfItem("p2", 12000, 5),
	}}
	service := newTestService(repo, catalog)

	loaded, err := service.Get(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, loaded.Items, 2)
	assert.Equal(t, int64(12000), loaded.TotalKurus)
	for _, line := range loaded.Items {
		if line.ProductID == "p1" {
			assert.False(t, line.Available)
		}
	}
}

func TestGet_VanishedProductsAreDropped(t *testing.T) {
	repo := newFakeRepository()
	repo.items = map[string]int{"ghost": 1, "p1": 1}
	catalog := &fakeCatalog{products: map[string]product.Product{
		"p1": shelfItem("p1", 5000, 10),
	}}
	service := newTestService(repo, catalog)

	loaded, err := service.Get(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "p1", loaded.Items[0].ProductID)
}

func TestSetItem_Upserts(t *testing.T) {
	repo := newFakeRepository()
	catalog := &fakeCatalog{products: map[string]product.Product{
		"p1": shelfItem("p1", 5000, 10),
	}}
	service := newTestService(repo, catalog)

	require.NoError(t, service.SetItem(context.Background(), "user-1", "p1", 2))
	assert.Equal(t, 2, repo.items["p1"])

	require.NoError(t, service.SetItem(context.Background(), "user-1", "p1", 7))
	assert.Equal(t, 7, repo.items["p1"])
}

func TestSetItem_ZeroQuantityRemovesLine(t *testing.T) {
	repo := newFakeRepository()
	repo.items["p1"] = 3
	catalog := &fakeCatalog{products: map[string]product.Product{
		"p1": shelfItem("p1", 5000, 10),
	}}
	service := newTestService(repo, catalog)

	require.NoError(t, service.SetItem(context.Background(), "user-1", "p1", 0))
	assert.NotContains(t, repo.items, "p1")
}

func TestSetItem_RejectsExcessiveQuantity(t *testing.T) {
	repo := newFakeRepository()
	catalog := &fakeCatalog{products: map[string]product.Product{
		"p1": shelfItem("p1", 5000, 1000),
	}}
	service := newTestService(repo, catalog)

	err := service.SetItem(context.Background(), "user-1", "p1", MaxQuantityPerItem+1)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	err = service.SetItem(context.Background(), "user-1", "p1", -1)
	require.Error(t, err)
}

func TestSetItem_RejectsUnknownOrInactiveProduct(t *testing.T) {
	repo := newFakeRepository()
	inactive := shelfItem("p2", 5000, 10)
	inactive.IsActive = false
	catalog := &fakeCatalog{products: map[string]product.Product{"p2": inactive}}
	service := newTestService(repo, catalog)

	err := service.SetItem(context.Background(), "user-1", "missing", 1)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	err = service.SetItem(context.Background(), "user-1", "p2", 1)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

func TestSetItem_RejectsQuantityBeyondStock(t *testing.T) {
	repo := newFakeRepository()
	catalog := &fakeCatalog{products: map[string]product.Product{
		"p1": shelfItem("p1", 5000, 3),
	}}
	service := newTestService(repo, catalog)

	err := service.SetItem(context.Background(), "user-1", "p1", 4)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
	assert.NotContains(t, repo.items, "p1")
}

func TestClear_EmptiesCart(t *testing.T) {
	repo := newFakeRepository()
	repo.items = map[string]int{"p1": 1, "p2": 2}
	service := newTestService(repo, &fakeCatalog{})

	require.NoError(t, service.Clear(context.Background(), "user-1"))
	assert.Empty(t, repo.items)
}
