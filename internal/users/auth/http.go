// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// HTTP delivery layer for the auth use cases.
//
// Handlers here are the gatekeepers of the identity domain:
//   - JSON request parsing and strict input validation.
//   - Translating service results into session cookies.
//   - Standardizing JSON response formats via the [respond] package.
//
// They contain NO business logic or database queries.
package auth

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/constants"
	"github.com/kervanlab/kervan/internal/platform/middleware"
	"github.com/kervanlab/kervan/internal/platform/ratelimit"
	requestutil "github.com/kervanlab/kervan/internal/platform/request"
	"github.com/kervanlab/kervan/internal/platform/respond"
	"github.com/kervanlab/kervan/internal/platform/session"
	"github.com/kervanlab/kervan/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// Everything related to account lifecycle entry points: registration, the
// two login surfaces (shopper and admin), logout, CSRF token issuance, and
// the password-reset flow.
type Handler struct {
	authService *Service
	sessions    *session.Manager
	throttle    ratelimit.Store
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, sessions *session.Manager, throttle ratelimit.Store) *Handler {
	return &Handler{
		authService: service,
		sessions:    sessions,
		throttle:    throttle,
	}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register        : Creates a new shopper account.
//   - POST /login           : Authenticates and sets the session cookie.
//   - POST /logout          : Clears the session cookie.
//   - POST /admin/login     : Authenticates an admin into the admin slot.
//   - POST /admin/logout    : Clears the admin_session cookie.
//   - GET  /csrf            : Issues a CSRF token for mutating requests.
//   - POST /forgot-password : Starts the password-reset flow.
//   - POST /reset-password  : Redeems a reset token.
//   - POST /change-password : Rotates the password (session required).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.Throttle(handler.throttle, constants.PurposeRegister,
		constants.RegisterWindow, constants.RegisterMaxAttempts,
		middleware.SubjectIP)).Post("/register", handler.register)

	router.With(middleware.Throttle(handler.throttle, constants.PurposeLogin,
		constants.LoginWindow, constants.LoginMaxAttempts,
		middleware.SubjectIP)).Post("/login", handler.login)

	router.With(middleware.Throttle(handler.throttle, constants.PurposeLogin,
		constants.LoginWindow, constants.LoginMaxAttempts,
		middleware.SubjectIP)).Post("/admin/login", handler.adminLogin)

	router.Post("/logout", handler.logout)
	router.Post("/admin/logout", handler.adminLogout)

	router.Get("/csrf", handler.issueCSRF)

	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	router.With(middleware.RequireAuth).Post("/change-password", handler.changePassword)

	return router
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register handles POST /api/v1/auth/register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the User profile. The session
//     cookie is set immediately so registration doubles as login.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if the email is taken.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	if err := validator.
		Required("full_name", input.FullName).
		MaxLen("full_name", input.FullName, 120).
		Required("email", input.Email).
		Email("email", input.Email).
		MinLen("password", input.Password, PasswordMinLength).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Session Establishment & Presentation ───────────────────────────

	if err := handler.sessions.User.Set(writer, user.ID, user.Email, user.IsAdmin()); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.Created(writer, user)
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /api/v1/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the User profile; the signed token
//     is delivered only as the httpOnly "session" cookie, never in the body.
//   - Writes HTTP 401 Unauthorized for bad credentials.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("email/password", "are required"))
		return
	}

	user, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		// HTTP 401 without leaking whether the email or the password was wrong.
		respond.Error(writer, request, err)
		return
	}

	if err := handler.sessions.User.Set(writer, user.ID, user.Email, user.IsAdmin()); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.OK(writer, user)
}

// adminLogin handles POST /api/v1/auth/admin/login requests.
//
// It writes the admin_session cookie and leaves the shopper "session" slot
// untouched; the two authenticate independently.
func (handler *Handler) adminLogin(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("email/password", "are required"))
		return
	}

	user, err := handler.authService.AdminLogin(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.sessions.Admin.Set(writer, user.ID, user.Email, true); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.OK(writer, user)
}

// logout handles POST /api/v1/auth/logout.
//
// Logout is idempotent and purely client-side: the cookie is expired, but an
// already captured token stays valid until its natural expiry (stateless
// sessions have no server-side revocation list).
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.sessions.User.Clear(writer)
	respond.NoContent(writer)
}

// adminLogout handles POST /api/v1/auth/admin/logout.
func (handler *Handler) adminLogout(writer http.ResponseWriter, request *http.Request) {
	handler.sessions.Admin.Clear(writer)
	respond.NoContent(writer)
}

// issueCSRF handles GET /api/v1/auth/csrf.
//
// The raw token goes to the response body for the SPA to echo back in the
// X-CSRF-Token header; its digest goes into the httpOnly cookie.
func (handler *Handler) issueCSRF(writer http.ResponseWriter, request *http.Request) {
	token, err := handler.sessions.IssueCSRFToken(writer)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.OK(writer, map[string]string{"csrf_token": token})
}

// forgotPasswordRequest represents the JSON payload for reset initiation.
type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// forgotPassword handles POST /api/v1/auth/forgot-password.
//
// # Throttling
//
// The window here is keyed by the TARGET EMAIL, not the caller IP, so a
// distributed attacker cannot flood one mailbox. The subject only becomes
// known after decoding the body, which is why this check lives in the
// handler instead of the [middleware.Throttle] wrapper.
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Required("email", input.Email).Email("email", input.Email).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	identifier := ratelimit.Key(constants.PurposePasswordReset, input.Email)
	decision := handler.throttle.Check(request.Context(), identifier,
		constants.PasswordResetWindow, constants.PasswordResetMaxAttempts)

	header := writer.Header()
	header.Set(constants.HeaderRateLimitLimit, strconv.Itoa(constants.PasswordResetMaxAttempts))
	header.Set(constants.HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
	header.Set(constants.HeaderRateLimitReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))

	if !decision.Allowed {
		retryAfter := int(time.Until(decision.ResetAt).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		header.Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
		respond.Error(writer, request, apperr.RateLimited(retryAfter))
		return
	}

	if err := handler.authService.RequestPasswordReset(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Same response for known and unknown emails.
	respond.OK(writer, map[string]string{
		"message": "If the email is registered, a reset code has been sent",
	})
}

// resetPasswordRequest represents the JSON payload for token redemption.
type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// resetPassword handles POST /api/v1/auth/reset-password.
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("token", input.Token).
		MinLen("new_password", input.NewPassword, PasswordMinLength).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Password has been reset"})
}

// changePasswordRequest represents the JSON payload for password rotation.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// changePassword handles POST /api/v1/auth/change-password.
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required("current_password", input.CurrentPassword).
		MinLen("new_password", input.NewPassword, PasswordMinLength).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Password has been changed"})
}
