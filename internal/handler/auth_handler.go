package handler

import (
	"strconv"

	app_errors "visitas/internal/errors"
	"visitas/internal/middleware"
	"visitas/internal/response"
	"visitas/internal/services"

	"github.com/gin-gonic/gin"
)

// LoginRequest defines the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and issues a token.
// POST /api/auth/login
func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	result, err := s.AuthService.Login(req.Email, req.Password)
	if HandleServiceError(c, err) {
		return
	}

	response.SuccessI18n(c, "auth.login_success", result)
}

// Me returns the authenticated user's profile.
// GET /api/auth/me
func (s *Server) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, app_errors.ErrUnauthorized)
		return
	}
	response.Success(c, user)
}

// ChangePasswordRequest defines the payload for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"password_actual" binding:"required"`
	NewPassword     string `json:"password_nueva" binding:"required"`
}

// ChangePassword updates the authenticated user's password.
// PUT /api/auth/password
func (s *Server) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Error(c, app_errors.ErrUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	err := s.AuthService.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword)
	if HandleServiceError(c, err) {
		return
	}

	response.SuccessI18n(c, "auth.password_changed", nil)
}

// ListUsers returns all accounts. Admin only.
// GET /api/auth/users
func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.AuthService.ListUsers()
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, users)
}

// CreateUserRequest defines the payload for registering an account.
type CreateUserRequest struct {
	Name     string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"rol"`
}

// CreateUser registers a new account. Admin only.
// POST /api/auth/users
func (s *Server) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	user, err := s.AuthService.CreateUser(services.CreateUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if HandleServiceError(c, err) {
		return
	}

	response.Created(c, "auth.user_created", user)
}

// DeactivateUser disables an account. Admin only.
// DELETE /api/auth/users/:id
func (s *Server) DeactivateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrBadRequest, "invalid user id"))
		return
	}

	actor := middleware.CurrentUser(c)
	if actor != nil && actor.ID == uint(id) {
		response.Error(c, app_errors.NewValidationError("cannot deactivate your own account"))
		return
	}

	if HandleServiceError(c, s.AuthService.DeactivateUser(uint(id))) {
		return
	}
	response.SuccessI18n(c, "auth.user_deactivated", nil)
}
