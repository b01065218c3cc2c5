// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kervanlab/kervan/internal/platform/middleware"
	requestutil "github.com/kervanlab/kervan/internal/platform/request"
	"github.com/kervanlab/kervan/internal/platform/respond"
	"github.com/kervanlab/kervan/internal/platform/validate"
	"github.com/kervanlab/kervan/pkg/pagination"
)

type Handler struct {
	reviewService *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns the storefront review routes.
//
// Reading approved reviews is public; submitting one requires a session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/product/{productID}", handler.listForProduct)
	router.With(middleware.RequireAuth).Post("/", handler.create)

	return router
}

// AdminRoutes returns the moderation routes.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Get("/pending", handler.listPending)
	router.Put("/{reviewID}/approve", handler.approve)
	router.Delete("/{reviewID}", handler.remove)

	return router
}

func (handler *Handler) listForProduct(writer http.ResponseWriter, request *http.Request) {
	productID := requestutil.Param(request, "productID")

	validator := &validate.Validator{}
	if err := validator.UUID("productID", productID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.reviewService.ListForProduct(request.Context(), productID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

type createReviewRequest struct {
	ProductID string `json:"product_id"`
	Score     int    `json:"score"`
	Comment   string `json:"comment"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.reviewService.Create(request.Context(), CreateInput{
		ProductID: input.ProductID,
		UserID:    userID,
		Score:     input.Score,
		Comment:   input.Comment,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	reviews, total, err := handler.reviewService.ListPending(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	reviewID := requestutil.Param(request, "reviewID")

	validator := &validate.Validator{}
	if err := validator.UUID("reviewID", reviewID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	approved, err := handler.reviewService.Approve(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, approved)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	reviewID := requestutil.Param(request, "reviewID")

	validator := &validate.Validator{}
	if err := validator.UUID("reviewID", reviewID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.Delete(request.Context(), reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
