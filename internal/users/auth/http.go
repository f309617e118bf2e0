// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/htilssu/demarthology-api/internal/platform/constants"
	"github.com/htilssu/demarthology-api/internal/platform/middleware"
	requestutil "github.com/htilssu/demarthology-api/internal/platform/request"
	"github.com/htilssu/demarthology-api/internal/platform/respond"
	"github.com/htilssu/demarthology-api/internal/users/account"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register        : Creates an account and logs it in.
//   - POST /login           : Authenticates and returns a JWT.
//   - POST /forgot-password : Requests a reset link.
//   - POST /reset-password  : Consumes a reset token.
//   - POST /logout          : Acknowledges logout (authenticated).
//   - GET  /me              : Current profile (authenticated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// # Wire Shapes

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	DateOfBirth     string `json:"dob"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token              string `json:"token"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

// AuthResponse is the flat body returned by login and register.
type AuthResponse struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	User        account.Summary `json:"user"`
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
}

func newAuthResponse(message string, result *AuthResult) AuthResponse {
	return AuthResponse{
		Success:     true,
		Message:     message,
		User:        result.User.Summary(),
		AccessToken: result.AccessToken,
		TokenType:   constants.TokenType,
	}
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Response:
  - 201: AuthResponse
  - 400: Validation failure
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Register(request.Context(), RegisterInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, newAuthResponse(constants.MsgRegistered, result))
}

/*
Login authenticates a user by email and password.

POST /api/v1/auth/login

Response:
  - 200: AuthResponse
  - 401: Incorrect email or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, newAuthResponse(constants.MsgLoggedIn, result))
}

// forgotPassword always answers with the same message for well-formed input.
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ForgotPassword(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, constants.MsgForgotPassword)
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), ResetPasswordInput(input)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, constants.MsgPasswordReset)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authService.Logout(request.Context(), requestutil.CurrentUser(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, constants.MsgLoggedOut)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.authService.Me(request.Context(), requestutil.CurrentUser(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
