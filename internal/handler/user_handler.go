package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobportal/internal/errors"
	"jobportal/internal/model"
	"jobportal/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest carries optional profile changes.
type UpdateProfileRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=3,max=30"`
	Phone   *string `json:"phone" validate:"omitempty,len=10,numeric"`
	Address *string `json:"address"`

	Skills     []string `json:"skills"`
	Experience *string  `json:"experience"`
	Education  *string  `json:"education"`

	CompanyName *string `json:"company_name"`
	Industry    *string `json:"industry"`
	CompanySize *string `json:"company_size"`
}

// UpdatePreferencesRequest carries the preferred job categories.
type UpdatePreferencesRequest struct {
	Categories []string `json:"categories" validate:"required"`
}

// GetUser godoc
// @Summary Get the current user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.Response
// @Router /user/getuser [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// UpdateProfile godoc
// @Summary Update profile fields for the current user
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Router /user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), actor, service.ProfileUpdate{
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Education:   req.Education,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// UpdatePreferences godoc
// @Summary Replace the current user's preferred job categories
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdatePreferencesRequest true "Preferred categories"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Router /user/preferences [put]
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("preferred categories must be an array"))
	}

	categories, err := h.userService.UpdatePreferences(c.Request().Context(), actor, req.Categories)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":              true,
		"message":              "Preferences updated.",
		"preferred_categories": categories,
	})
}

// Count godoc
// @Summary Count users by role
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param role query string true "Role to count"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Router /user/count [get]
func (h *UserHandler) Count(c echo.Context) error {
	role := model.Role(c.QueryParam("role"))
	if role == "" {
		return c.JSON(http.StatusBadRequest, errors.Fail("Query parameter `role` is required"))
	}
	if !role.Valid() {
		return c.JSON(http.StatusBadRequest, errors.Fail("unknown role"))
	}

	count, err := h.userService.CountByRole(c.Request().Context(), role)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": count})
}
