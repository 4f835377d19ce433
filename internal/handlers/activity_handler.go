package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "botfolio/internal/errors"
	"botfolio/internal/services"
)

// ActivityHandler handles activity log requests.
type ActivityHandler struct {
	logService services.ActivityLogServicer
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(logService services.ActivityLogServicer) *ActivityHandler {
	return &ActivityHandler{logService: logService}
}

// LogQuery represents the activity log filter parameters.
type LogQuery struct {
	Action    string `form:"action" binding:"omitempty,log_action"`
	Actor     string `form:"user"`
	DateRange string `form:"date_range" binding:"omitempty,date_range"`
	Search    string `form:"search" binding:"max=200"`
}

func (q LogQuery) filter() services.LogFilter {
	return services.LogFilter{
		Action:    q.Action,
		Actor:     q.Actor,
		DateRange: q.DateRange,
		Search:    q.Search,
	}
}

// GetLogs handles listing activity log entries.
// @Summary     Get activity logs
// @Description Get activity log entries matching the filter, newest first
// @Tags        logs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       action     query string false "Filter by action (or 'all')"
// @Param       user       query string false "Filter by operator name (or 'all')"
// @Param       date_range query string false "Filter by date range (all/today/week/month)"
// @Param       search     query string false "Substring search over description, user, and action"
// @Success     200 {array} models.LogEntry "Matching log entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/logs [get]
func (h *ActivityHandler) GetLogs(c *gin.Context) {
	var query LogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entries, err := h.logService.Query(query.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": entries, "total": len(entries)})
}

// GetLogStats handles the activity log summary.
// @Summary     Get log statistics
// @Description Get aggregate statistics over the full activity log
// @Tags        logs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.LogStats "Log statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/logs/stats [get]
func (h *ActivityHandler) GetLogStats(c *gin.Context) {
	stats, err := h.logService.Stats()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ExportLogs handles downloading the filtered log as a JSON file.
// @Summary     Export activity logs
// @Description Download the filtered activity log as a JSON attachment
// @Tags        logs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       action     query string false "Filter by action (or 'all')"
// @Param       user       query string false "Filter by operator name (or 'all')"
// @Param       date_range query string false "Filter by date range (all/today/week/month)"
// @Param       search     query string false "Substring search over description, user, and action"
// @Success     200 {file} file "JSON log export"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/logs/export [get]
func (h *ActivityHandler) ExportLogs(c *gin.Context) {
	var query LogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	data, filename, err := h.logService.Export(query.filter())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// ClearLogs handles clearing the activity log.
// @Summary     Clear activity logs
// @Description Replace the activity log with a single entry recording the clear
// @Tags        logs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Logs cleared"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/logs [delete]
func (h *ActivityHandler) ClearLogs(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.logService.Clear(actor); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity logs cleared"})
}
