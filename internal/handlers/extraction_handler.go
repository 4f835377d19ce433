package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "botfolio/internal/errors"
	"botfolio/internal/models"
	"botfolio/internal/services"
)

// maxReportUploadBytes bounds uploaded report files.
const maxReportUploadBytes = 25 << 20

// ExtractionHandler handles report extraction requests.
type ExtractionHandler struct {
	extractionService services.ExtractionServicer
	logService        services.ActivityLogServicer
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService services.ExtractionServicer, logService services.ActivityLogServicer) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService, logService: logService}
}

// ExtractReport handles uploading a PDF report and extracting its data.
// @Summary     Extract report data
// @Description Upload a PDF performance report and extract its data
// @Tags        reports
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "PDF report file"
// @Success     200 {object} models.ExtractedReport "Extracted report data"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Extraction failed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/reports/extract [post]
func (h *ExtractionHandler) ExtractReport(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "A report file is required"))
		return
	}
	if fileHeader.Size > maxReportUploadBytes {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Report file too large"))
		return
	}

	if _, err := h.logService.Append(actor, models.ActionUpload,
		fmt.Sprintf("Uploaded report: %s", fileHeader.Filename)); err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.extractionService.Extract(c.Request.Context(), actor, fileHeader.Filename)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
