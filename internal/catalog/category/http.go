// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kervanlab/kervan/internal/platform/middleware"
	requestutil "github.com/kervanlab/kervan/internal/platform/request"
	"github.com/kervanlab/kervan/internal/platform/respond"
	"github.com/kervanlab/kervan/internal/platform/validate"
)

// Handler implements the category HTTP endpoints.
type Handler struct {
	categoryService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns the public read-only category routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.getBySlug)

	return router
}

// AdminRoutes returns the back-office category management routes.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.categoryService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	categorySlug := requestutil.Param(request, "slug")

	validator := &validate.Validator{}
	if err := validator.Slug("slug", categorySlug).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.GetBySlug(request.Context(), categorySlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

type categoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	name := ""
	if input.Name != nil {
		name = *input.Name
	}

	validator := &validate.Validator{}
	if err := validator.Required("name", name).MaxLen("name", name, 120).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	createInput := CreateInput{Name: name}
	if input.Description != nil {
		createInput.Description = *input.Description
	}
	if input.SortOrder != nil {
		createInput.SortOrder = *input.SortOrder
	}

	category, err := handler.categoryService.Create(request.Context(), createInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.UUID("id", id)
	if input.Name != nil {
		validator.Required("name", *input.Name).MaxLen("name", *input.Name, 120)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Update(request.Context(), id, UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		SortOrder:   input.SortOrder,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.categoryService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
