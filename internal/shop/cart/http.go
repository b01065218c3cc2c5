// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kervanlab/kervan/internal/platform/middleware"
	requestutil "github.com/kervanlab/kervan/internal/platform/request"
	"github.com/kervanlab/kervan/internal/platform/respond"
	"github.com/kervanlab/kervan/internal/platform/validate"
)

// Handler implements the cart HTTP endpoints.
type Handler struct {
	cartService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{cartService: service}
}

// Routes returns the cart routes. All of them require a shopper session.
//
// # Endpoints
//   - GET    /                  : Hydrated cart with totals.
//   - PUT    /items             : Upserts one line.
//   - DELETE /items/{productID} : Removes one line.
//   - DELETE /                  : Empties the cart.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.get)
	router.Put("/items", handler.setItem)
	router.Delete("/items/{productID}", handler.removeItem)
	router.Delete("/", handler.clear)

	return router
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	hydrated, err := handler.cartService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, hydrated)
}

type setItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (handler *Handler) setItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setItemRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.UUID("product_id", input.ProductID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.cartService.SetItem(request.Context(), userID, input.ProductID, input.Quantity); err != nil {
		respond.Error(writer, request, err)
		return
	}

	hydrated, err := handler.cartService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, hydrated)
}

func (handler *Handler) removeItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	productID := requestutil.Param(request, "productID")

	validator := &validate.Validator{}
	if err := validator.UUID("productID", productID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.cartService.RemoveItem(request.Context(), userID, productID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) clear(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.cartService.Clear(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
