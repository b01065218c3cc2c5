// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kervanlab/kervan/internal/platform/middleware"
	requestutil "github.com/kervanlab/kervan/internal/platform/request"
	"github.com/kervanlab/kervan/internal/platform/respond"
	"github.com/kervanlab/kervan/internal/platform/validate"
	"github.com/kervanlab/kervan/internal/users/auth"
	"github.com/kervanlab/kervan/pkg/pagination"
)

// Handler implements profile and user-administration HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the shopper-facing profile routes.
//
// # Endpoints
//   - GET /me : Returns the authenticated profile.
//   - PUT /me : Updates mutable profile fields.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/me", handler.getProfile)
	router.Put("/me", handler.updateProfile)

	return router
}

// AdminRoutes returns the back-office user management routes.
//
// # Endpoints
//   - GET    /            : Lists all accounts (paginated).
//   - PUT    /{id}/role   : Changes an account's role.
//   - DELETE /{id}        : Deactivates an account.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)

	router.Get("/", handler.listUsers)
	router.Put("/{id}/role", handler.setRole)
	router.Delete("/{id}", handler.deactivateUser)

	return router
}

// getProfile handles GET /api/v1/account/me.
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateProfileRequest represents the JSON payload for profile updates.
type updateProfileRequest struct {
	FullName *string `json:"full_name"`
}

// updateProfile handles PUT /api/v1/account/me.
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.FullName != nil {
		validator := &validate.Validator{}
		if err := validator.
			Required("full_name", *input.FullName).
			MaxLen("full_name", *input.FullName, 120).
			Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		FullName: input.FullName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// listUsers handles GET /api/v1/admin/users.
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.accountService.ListUsers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

// setRoleRequest represents the JSON payload for role assignment.
type setRoleRequest struct {
	Role string `json:"role"`
}

// setRole handles PUT /api/v1/admin/users/{id}/role.
func (handler *Handler) setRole(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredAdminSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.Param(request, "id")

	var input setRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		UUID("id", targetID).
		OneOf("role", input.Role, string(auth.UserRoleAdmin), string(auth.UserRoleCustomer)).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.SetRole(request.Context(), actor.UserID, targetID, auth.UserRole(input.Role)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Role updated"})
}

// deactivateUser handles DELETE /api/v1/admin/users/{id}.
func (handler *Handler) deactivateUser(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredAdminSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID("id", targetID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeactivateUser(request.Context(), actor.UserID, targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
