package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"jobportal/internal/errors"
	"jobportal/internal/service"
)

// JobHandler handles job posting endpoints.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// JobRequest represents a job create or update request.
type JobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Location    string `json:"location"`
	FixedSalary *int   `json:"fixed_salary"`
	SalaryFrom  *int   `json:"salary_from"`
	SalaryTo    *int   `json:"salary_to"`
	Expired     *bool  `json:"expired"`
}

func (r JobRequest) toInput() service.JobInput {
	return service.JobInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Country:     r.Country,
		City:        r.City,
		Location:    r.Location,
		FixedSalary: r.FixedSalary,
		SalaryFrom:  r.SalaryFrom,
		SalaryTo:    r.SalaryTo,
		Expired:     r.Expired,
	}
}

// GetAll godoc
// @Summary List all live jobs
// @Tags job
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /job/getall [get]
func (h *JobHandler) GetAll(c echo.Context) error {
	jobs, err := h.jobService.ListActive(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "jobs": jobs})
}

// Count godoc
// @Summary Count live jobs
// @Tags job
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /job/count [get]
func (h *JobHandler) Count(c echo.Context) error {
	count, err := h.jobService.CountActive(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": count})
}

// Recommended godoc
// @Summary List live jobs in the caller's preferred categories
// @Tags job
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /job/recommended [get]
func (h *JobHandler) Recommended(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	jobs, err := h.jobService.ListRecommended(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "jobs": jobs})
}

// Post godoc
// @Summary Post a new job
// @Tags job
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body JobRequest true "Job posting"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Router /job/post [post]
func (h *JobHandler) Post(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}

	job, err := h.jobService.PostJob(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Job Posted Successfully!",
		"job":     job,
	})
}

// MyJobs godoc
// @Summary List the employer's own jobs
// @Tags job
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.Response
// @Router /job/getmyjobs [get]
func (h *JobHandler) MyJobs(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	jobs, err := h.jobService.MyJobs(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "my_jobs": jobs})
}

// Update godoc
// @Summary Update a job the employer owns
// @Tags job
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body JobRequest true "Job changes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /job/update/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid job id"))
	}

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}

	job, err := h.jobService.UpdateJob(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Job Updated!",
		"job":     job,
	})
}

// Delete godoc
// @Summary Delete a job the employer owns
// @Tags job
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /job/delete/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid job id"))
	}

	if err := h.jobService.DeleteJob(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Job Deleted!",
	})
}

// Get godoc
// @Summary Get a single job
// @Tags job
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Response
// @Router /job/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid job id"))
	}

	job, err := h.jobService.GetJob(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "job": job})
}
