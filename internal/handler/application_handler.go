package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"jobportal/internal/errors"
	"jobportal/internal/model"
	"jobportal/internal/service"
)

// ApplicationHandler handles application ledger endpoints.
type ApplicationHandler struct {
	applicationService service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// UpdateStatusRequest represents an employer's status decision.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reply  string `json:"reply"`
}

// PostApplicationRequest carries the submission form fields. JobID is left
// unvalidated here: the eligibility policy owns that check and its message.
type PostApplicationRequest struct {
	JobID       string `form:"jobId"`
	Name        string `form:"name" validate:"required,min=3,max=30"`
	Email       string `form:"email" validate:"required,email"`
	CoverLetter string `form:"coverLetter" validate:"required"`
	Phone       string `form:"phone" validate:"required,len=10,numeric"`
	Address     string `form:"address" validate:"required"`
}

// Post godoc
// @Summary Submit an application with a resume file
// @Tags application
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param resume formData file true "Resume (PNG, JPEG, WEBP or PDF)"
// @Param jobId formData string true "Target job ID"
// @Param name formData string true "Applicant name"
// @Param email formData string true "Applicant email"
// @Param coverLetter formData string true "Cover letter"
// @Param phone formData string true "Phone number"
// @Param address formData string true "Address"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /application/post [post]
func (h *ApplicationHandler) Post(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req PostApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
	}

	in := service.PostApplicationInput{
		Name:        req.Name,
		Email:       req.Email,
		CoverLetter: req.CoverLetter,
		Phone:       req.Phone,
		Address:     req.Address,
	}

	if req.JobID != "" {
		jobID, err := uuid.Parse(req.JobID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errors.Fail("invalid job id"))
		}
		in.JobID = jobID
	}

	// A missing file is not rejected here: the eligibility policy checks the
	// resume after the submission caps, in its fixed order.
	if fileHeader, err := c.FormFile("resume"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errors.Fail("could not read resume file"))
		}
		defer file.Close()
		in.Resume = &service.ResumeUpload{
			File:        file,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	}

	application, err := h.applicationService.PostApplication(c.Request().Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     "Application Submitted!",
		"application": application,
	})
}

// EmployerGetAll godoc
// @Summary List the employer's applications, hiding soft-deleted records
// @Tags application
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Response
// @Router /application/employer/getall [get]
func (h *ApplicationHandler) EmployerGetAll(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	applications, err := h.applicationService.EmployerApplications(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "applications": applications})
}

// SeekerGetAll godoc
// @Summary List everything the seeker submitted
// @Tags application
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Response
// @Router /application/jobseeker/getall [get]
func (h *ApplicationHandler) SeekerGetAll(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	applications, err := h.applicationService.SeekerApplications(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "applications": applications})
}

// SeekerDelete godoc
// @Summary Hard delete an application the seeker owns
// @Tags application
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /application/delete/{id} [delete]
func (h *ApplicationHandler) SeekerDelete(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid application id"))
	}

	if err := h.applicationService.SeekerDelete(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Application Deleted!",
	})
}

// EmployerDelete godoc
// @Summary Soft delete a rejected application from the employer's view
// @Tags application
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /application/employer/delete/{id} [delete]
func (h *ApplicationHandler) EmployerDelete(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid application id"))
	}

	if err := h.applicationService.EmployerDelete(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Application removed from your view.",
	})
}

// UpdateStatus godoc
// @Summary Accept or reject an application with an optional reply
// @Tags application
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body UpdateStatusRequest true "Status decision"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /application/update/{id} [put]
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid application id"))
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(err.Error()))
	}

	application, err := h.applicationService.UpdateStatus(
		c.Request().Context(), actor, id, model.ApplicationStatus(req.Status), req.Reply)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     "Application " + string(application.Status) + ".",
		"application": application,
	})
}
