// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kervanlab/kervan/internal/platform/middleware"
	requestutil "github.com/kervanlab/kervan/internal/platform/request"
	"github.com/kervanlab/kervan/internal/platform/respond"
	"github.com/kervanlab/kervan/internal/platform/validate"
)

type Handler struct {
	favoriteService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{favoriteService: service}
}

// Routes returns the favorites routes. All require a shopper session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/{productID}", handler.add)
	router.Delete("/{productID}", handler.remove)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorites, err := handler.favoriteService.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"favorites": favorites})
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.favoriteService.Add(request.Context(), userID, productID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, map[string]string{"product_id": productID})
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.favoriteService.Remove(request.Context(), userID, productID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
