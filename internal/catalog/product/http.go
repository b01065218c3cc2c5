// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kervanlab/kervan/internal/platform/middleware"
	requestutil "github.com/kervanlab/kervan/internal/platform/request"
	"github.com/kervanlab/kervan/internal/platform/respond"
	"github.com/kervanlab/kervan/internal/platform/validate"
	"github.com/kervanlab/kervan/pkg/pagination"
)

// Handler implements the product HTTP endpoints.
type Handler struct {
	productService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{productService: service}
}

// Routes returns the public read-only product routes.
//
// # Endpoints
//   - GET /               : Paginated, filterable product listing.
//   - GET /{slug}         : Product detail by slug.
//   - GET /{slug}/similar : Related product suggestions.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.getBySlug)
	router.Get("/{slug}/similar", handler.similar)

	return router
}

// AdminRoutes returns the back-office catalog management routes.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := ListFilter{
		CategoryID: query.Get("category_id"),
		Brand:      query.Get("brand"),
		Search:     query.Get("q"),
		Sort:       query.Get("sort"),
	}

	if filter.Sort != "" {
		validator := &validate.Validator{}
		if err := validator.OneOf("sort", filter.Sort, "newest", "price_asc", "price_desc").Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	products, total, err := handler.productService.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	productSlug := requestutil.Param(request, "slug")

	validator := &validate.Validator{}
	if err := validator.Slug("slug", productSlug).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.productService.GetBySlug(request.Context(), productSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) similar(writer http.ResponseWriter, request *http.Request) {
	productSlug := requestutil.Param(request, "slug")

	validator := &validate.Validator{}
	if err := validator.Slug("slug", productSlug).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	source, err := handler.productService.GetBySlug(request.Context(), productSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	suggestions, err := handler.productService.Similar(request.Context(), source.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, suggestions)
}

type productRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Brand       *string `json:"brand"`
	CategoryID  *string `json:"category_id"`
	PriceKurus  *int64  `json:"price_kurus"`
	Stock       *int    `json:"stock"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input productRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	name, brand, categoryID := "", "", ""
	var priceKurus int64
	stock := 0
	if input.Name != nil {
		name = *input.Name
	}
	if input.Brand != nil {
		brand = *input.Brand
	}
	if input.CategoryID != nil {
		categoryID = *input.CategoryID
	}
	if input.PriceKurus != nil {
		priceKurus = *input.PriceKurus
	}
	if input.Stock != nil {
		stock = *input.Stock
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("name", name).
		MaxLen("name", name, 200).
		Required("brand", brand).
		UUID("category_id", categoryID).
		Positive("price_kurus", priceKurus).
		Custom("stock", stock < 0, "Must not be negative").
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	createInput := CreateInput{
		Name:       name,
		Brand:      brand,
		CategoryID: categoryID,
		PriceKurus: priceKurus,
		Stock:      stock,
	}
	if input.Description != nil {
		createInput.Description = *input.Description
	}
	if input.ImageURL != nil {
		createInput.ImageURL = *input.ImageURL
	}

	product, err := handler.productService.Create(request.Context(), createInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, product)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input productRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.UUID("id", id)
	if input.Name != nil {
		validator.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.PriceKurus != nil {
		validator.Positive("price_kurus", *input.PriceKurus)
	}
	if input.Stock != nil {
		validator.Custom("stock", *input.Stock < 0, "Must not be negative")
	}
	if input.CategoryID != nil {
		validator.UUID("category_id", *input.CategoryID)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.productService.Update(request.Context(), id, UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		Brand:       input.Brand,
		CategoryID:  input.CategoryID,
		PriceKurus:  input.PriceKurus,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		IsActive:    input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.productService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
