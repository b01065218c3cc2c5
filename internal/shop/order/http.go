// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kervanlab/kervan/internal/platform/constants"
	"github.com/kervanlab/kervan/internal/platform/middleware"
	"github.com/kervanlab/kervan/internal/platform/ratelimit"
	requestutil "github.com/kervanlab/kervan/internal/platform/request"
	"github.com/kervanlab/kervan/internal/platform/respond"
	"github.com/kervanlab/kervan/internal/platform/validate"
	"github.com/kervanlab/kervan/pkg/pagination"
)

type Handler struct {
	orderService *Service
	throttle     ratelimit.Store
}

func NewHandler(service *Service, throttle ratelimit.Store) *Handler {
	return &Handler{orderService: service, throttle: throttle}
}

// Routes returns the shopper-facing order routes.
//
// Checkout is throttled per user, not per IP: households and offices share
// IPs, but a single account hammering the payment gateway is the signal
// worth catching.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.With(middleware.Throttle(
		handler.throttle, constants.PurposeCheckout,
		constants.CheckoutWindow, constants.CheckoutMaxAttempts,
		middleware.SubjectUser,
	)).Post("/checkout", handler.checkout)

	router.Get("/", handler.listMine)
	router.Get("/{orderID}", handler.getMine)

	return router
}

// AdminRoutes returns the back-office order routes.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Get("/", handler.listAll)
	router.Get("/{orderID}", handler.getAny)
	router.Put("/{orderID}/status", handler.updateStatus)

	return router
}

func (handler *Handler) checkout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.orderService.Checkout(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	orders, total, err := handler.orderService.ListForUser(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, orders, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	orderID := requestutil.Param(request, "orderID")

	validator := &validate.Validator{}
	if err := validator.UUID("orderID", orderID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.orderService.Get(request.Context(), orderID, userID, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	status := Status(request.URL.Query().Get("status"))

	orders, total, err := handler.orderService.ListAll(request.Context(), status, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, orders, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getAny(writer http.ResponseWriter, request *http.Request) {
	orderID := requestutil.Param(request, "orderID")

	validator := &validate.Validator{}
	if err := validator.UUID("orderID", orderID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.orderService.Get(request.Context(), orderID, "", true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	orderID := requestutil.Param(request, "orderID")

	var input updateStatusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		UUID("orderID", orderID).
		Required("status", input.Status).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.orderService.UpdateStatus(request.Context(), orderID, Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}
