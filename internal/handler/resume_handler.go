package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"jobportal/internal/errors"
	"jobportal/internal/service"
)

const maxResumeImageBytes = 5 << 20 // 5 MB

var allowedAnalysisTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ResumeHandler handles the resume analysis endpoint.
type ResumeHandler struct {
	resumeService service.ResumeService
}

// NewResumeHandler creates a new resume handler.
func NewResumeHandler(resumeService service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService}
}

// Analyze godoc
// @Summary OCR a resume image and score it with AI
// @Tags resume
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param resumeImage formData file true "Resume image (JPG/PNG, max 5MB)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /resume/analyze [post]
func (h *ResumeHandler) Analyze(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("resumeImage")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("Please upload a resume image (JPG/PNG)."))
	}
	if fileHeader.Size > maxResumeImageBytes {
		return c.JSON(http.StatusBadRequest, errors.Fail("Resume image exceeds the 5MB limit."))
	}
	if !allowedAnalysisTypes[fileHeader.Header.Get("Content-Type")] {
		return c.JSON(http.StatusBadRequest, errors.Fail("Only JPG / PNG images are allowed"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("could not read resume image"))
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxResumeImageBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("could not read resume image"))
	}

	analysis, err := h.resumeService.AnalyzeResume(c.Request().Context(), actor, image)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "analysis": analysis})
}
