// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package product

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/pkg/pagination"
)

// fakeRepository serves products from a slice, mimicking the SQL layer's
// filtering for the similar-products queries.
type fakeRepository struct {
	products []Product
}

func (repo *fakeRepository) List(_ context.Context, _ ListFilter, _ pagination.Params) ([]Product, int, error) {
	return repo.products, len(repo.products), nil
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*Product, error) {
	for i := range repo.products {
		if repo.products[i].ID == id {
			return &repo.products[i], nil
		}
	}
	return nil, apperr.NotFound("Product")
}

func (repo *fakeRepository) FindBySlug(_ context.Context, slug string) (*Product, error) {
	for i := range repo.products {
		if repo.products[i].Slug == slug {
			return &repo.products[i], nil
		}
	}
	return nil, apperr.NotFound("Product")
}

func (repo *fakeRepository) FindByIDs(_ context.Context, ids []string) ([]Product, error) {
	var found []Product
	for _, id := range ids {
		for _, p := range repo.products {
			if p.ID == id {
				found = append(found, p)
			}
		}
	}
	return found, nil
}

func (repo *fakeRepository) FindSimilar(_ context.Context, query SimilarQuery) ([]Product, error) {
	var matches []Product
	for _, p := range repo.products {
		if p.ID == query.ExcludeID || !p.IsActive || p.Stock <= 0 {
			continue
		}
		if query.CategoryID != "" && p.CategoryID != query.CategoryID {
			continue
		}
		if query.Brand != "" && p.Brand != query.Brand {
			continue
		}
		matches = append(matches, p)
		if len(matches) >= query.Limit {
			break
		}
	}
	return matches, nil
}

func (repo *fakeRepository) Create(_ context.Context, product *Product) error {
	repo.products = append(repo.products, *product)
	return nil
}

func (repo *fakeRepository) Update(context.Context, *Product) error      { return nil }
func (repo *fakeRepository) AdjustStock(context.Context, map[string]int) error { return nil }
func (repo *fakeRepository) Delete(context.Context, string) error        { return nil }

func newTestService(repo *fakeRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger)
}

func catalogItem(id, category, brand string) Product {
	return Product{
		ID:         id,
		Name:       "Item " + id,
		Slug:       "item-" + id,
		CategoryID: category,
		Brand:      brand,
		Stock:      10,
		IsActive:   true,
	}
}

func TestSimilar_PrefersCategoryAndBrand(t *testing.T) {
	repo := &fakeRepository{products: []Product{
		catalogItem("p1", "cat-tea", "karaca"),
		catalogItem("p2", "cat-tea", "karaca"),  // layer 1: same category + brand
		catalogItem("p3", "cat-tea", "paşabahçe"), // layer 2: same category
		catalogItem("p4", "cat-cups", "karaca"),  // layer 3: same brand
		catalogItem("p5", "cat-rugs", "hereke"),  // layer 4: storewide
	}}
	service := newTestService(repo)

	suggestions, err := service.Similar(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, suggestions, 4)
	// Relevance order: exact match first, then category, brand, storewide.
	assert.Equal(t, "p2", suggestions[0].ID)
	assert.Equal(t, "p3", suggestions[1].ID)
	assert.Equal(t, "p4", suggestions[2].ID)
	assert.Equal(t, "p5", suggestions[3].ID)
}

func TestSimilar_NeverIncludesSourceOrDuplicates(t *testing.T) {
	repo := &fakeRepository{products: []Product{
		catalogItem("p1", "cat-tea", "karaca"),
		catalogItem("p2", "cat-tea", "karaca"),
	}}
	service := newTestService(repo)

	suggestions, err := service.Similar(context.Background(), "p1")
	require.NoError(t, err)

	// p2 matches every layer but must appear exactly once.
	require.Len(t, suggestions, 1)
	assert.Equal(t, "p2", suggestions[0].ID)
}

func TestSimilar_SkipsOutOfStockAndInactive(t *testing.T) {
	outOfStock := catalogItem("p2", "cat-tea", "karaca")
	outOfStock.Stock = 0
	inactive := catalogItem("p3", "cat-tea", "karaca")
	inactive.IsActive = false

	repo := &fakeRepository{products: []Product{
		catalogItem("p1", "cat-tea", "karaca"),
		outOfStock,
		inactive,
		catalogItem("p4", "cat-tea", "karaca"),
	}}
	service := newTestService(repo)

	suggestions, err := service.Similar(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "p4", suggestions[0].ID)
}

func TestSimilar_CapsAtLimit(t *testing.T) {
	repo := &fakeRepository{products: []Product{catalogItem("p0", "cat-tea", "karaca")}}
	for i := 1; i <= SimilarLimit+5; i++ {
		repo.products = append(repo.products, catalogItem("q"+string(rune('a'+i)), "cat-tea", "karaca"))
	}
	service := newTestService(repo)

	suggestions, err := service.Similar(context.Background(), "p0")
	require.NoError(t, err)
	assert.Len(t, suggestions, SimilarLimit)
}

func TestSimilar_EmptyCatalogYieldsEmptyList(t *testing.T) {
	repo := &fakeRepository{products: []Product{catalogItem("p1", "cat-tea", "karaca")}}
	service := newTestService(repo)

	suggestions, err := service.Similar(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSimilar_UnknownProductIsNotFound(t *testing.T) {
	service := newTestService(&fakeRepository{})

	_, err := service.Similar(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestCreate_GeneratesTurkishSafeSlug(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	product, err := service.Create(context.Background(), CreateInput{
		Name:       "El Yapımı Çay Bardağı",
		Brand:      "Paşabahçe",
		CategoryID: "cat-tea",
		PriceKurus: 14990,
		Stock:      25,
	})
	require.NoError(t, err)

	assert.Equal(t, "el-yapimi-cay-bardagi", product.Slug)
	assert.True(t, product.IsActive)
}
