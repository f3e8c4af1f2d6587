package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"jobportal/internal/errors"
	"jobportal/internal/model"
	"jobportal/internal/service"
)

// AuthHandler handles registration and session endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
	Password string `json:"password" validate:"required,min=8,max=32"`
	Role     string `json:"role" validate:"required,oneof='Job Seeker' 'Employer'"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof='Job Seeker' 'Employer'"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ForgotPasswordRequest represents a password reset initiation request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents a password reset completion request.
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8,max=32"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// Register godoc
// @Summary Register a new user and send a verification email
// @Tags user
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /user/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
	}

	_, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		switch err {
		case service.ErrEmailAlreadyRegistered:
			return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
		case service.ErrMailDelivery:
			return c.JSON(http.StatusInternalServerError, errors.Fail(err.Error()))
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "User registered! Please check your email to verify.",
	})
}

// Verify godoc
// @Summary Verify a registration email token
// @Tags user
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /user/verify/{token} [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	if err := h.authService.VerifyEmail(c.Request().Context(), c.Param("token")); err != nil {
		if err == service.ErrInvalidVerifyToken {
			return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Email verified successfully! You may now login.",
	})
}

// Login godoc
// @Summary Login with email, password and role
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
	}

	pair, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			return c.JSON(http.StatusBadRequest, errors.Fail("Invalid Email or Password."))
		case service.ErrEmailNotVerified:
			return c.JSON(http.StatusForbidden, errors.Fail("Please verify your email to login."))
		case service.ErrRoleMismatch:
			return c.JSON(http.StatusNotFound, errors.Fail("User with provided email not found!"))
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"message":       "User Logged In!",
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags user
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.Response
// @Router /user/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if err == service.ErrInvalidRefreshToken {
			return c.JSON(http.StatusUnauthorized, errors.Fail(err.Error()))
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"access_token": accessToken,
	})
}

// Logout godoc
// @Summary Invalidate a refresh token
// @Tags user
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /user/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
	}

	// The current access token, when sent along, gets blacklisted too.
	accessToken := ""
	if header := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		accessToken = strings.TrimPrefix(header, "Bearer ")
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken, accessToken); err != nil {
		if err == service.ErrInvalidRefreshToken {
			return c.JSON(http.StatusUnauthorized, errors.Fail(err.Error()))
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Logged Out Successfully.",
	})
}

// ForgotPassword godoc
// @Summary Email a password reset link
// @Tags user
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /user/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		switch err {
		case service.ErrUserNotFoundByEmail:
			return c.JSON(http.StatusNotFound, errors.Fail(err.Error()))
		case service.ErrMailDelivery:
			return c.JSON(http.StatusInternalServerError, errors.Fail(err.Error()))
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Password reset email sent. Check your inbox.",
	})
}

// ResetPassword godoc
// @Summary Complete a password reset
// @Tags user
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Router /user/password/reset/{token} [put]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
	}

	pair, user, err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), req.Password, req.ConfirmPassword)
	if err != nil {
		switch err {
		case service.ErrPasswordMismatch, service.ErrInvalidResetToken:
			return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"message":       "Password reset successful!",
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}
