package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "botfolio/internal/errors"
	"botfolio/internal/models"
	"botfolio/internal/services"
)

// PortfolioHandler handles admin catalog requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// CreatePortfolioRequest represents the request payload for creating a
// catalog entry.
type CreatePortfolioRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=100"`
	Description string           `json:"description" binding:"required,min=10,max=500"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	Tier        models.Tier      `json:"tier" binding:"required,tier"`
	Category    string           `json:"category" binding:"max=50"`
	Metrics     models.MetricSet `json:"metrics"`
}

// UpdateFieldRequest represents a single field-level edit.
type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value" binding:"required"`
}

// UpdateMetricRequest represents a single metric-level edit.
type UpdateMetricRequest struct {
	Metric string  `json:"metric" binding:"required"`
	Value  float64 `json:"value"`
}

// GetPortfolios handles listing the admin catalog.
// @Summary     List catalog portfolios
// @Description Get all portfolios in the admin catalog
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Portfolio "Catalog portfolios"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/portfolios [get]
func (h *PortfolioHandler) GetPortfolios(c *gin.Context) {
	portfolios, err := h.portfolioService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolios": portfolios})
}

// GetPortfolio handles retrieving a specific catalog entry.
// @Summary     Get catalog portfolio
// @Description Get a catalog portfolio by ID
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} models.Portfolio "Portfolio details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/portfolios/{id} [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.portfolioService.Get(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// CreatePortfolio handles the creation of a new catalog entry.
// @Summary     Create catalog portfolio
// @Description Add a new portfolio to the admin catalog
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePortfolioRequest true "Portfolio details"
// @Success     201 {object} models.Portfolio "Portfolio created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/portfolios [post]
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolioService.Create(services.PortfolioInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tier:        req.Tier,
		Category:    req.Category,
		Metrics:     req.Metrics,
	}, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"portfolio": portfolio})
}

// UpdatePortfolioField handles a single field-level edit.
// @Summary     Update portfolio field
// @Description Update one field of a catalog portfolio
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Portfolio ID"
// @Param       request body UpdateFieldRequest true "Field and new value"
// @Success     200 {object} models.Portfolio "Updated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/portfolios/{id}/field [patch]
func (h *PortfolioHandler) UpdatePortfolioField(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolioService.UpdateField(c.Param("id"), req.Field, req.Value, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// UpdatePortfolioMetric handles a single metric-level edit.
// @Summary     Update portfolio metric
// @Description Update one performance metric of a catalog portfolio
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Portfolio ID"
// @Param       request body UpdateMetricRequest true "Metric and new value"
// @Success     200 {object} models.Portfolio "Updated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input or metric out of range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/portfolios/{id}/metric [patch]
func (h *PortfolioHandler) UpdatePortfolioMetric(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolioService.UpdateMetric(c.Param("id"), req.Metric, req.Value, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// DeletePortfolio handles removing a catalog entry.
// @Summary     Delete catalog portfolio
// @Description Remove a portfolio from the admin catalog
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} MessageResponse "Portfolio deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/portfolios/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.portfolioService.Delete(c.Param("id"), actor); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted successfully"})
}

// GetDashboard handles the admin dashboard summary.
// @Summary     Get dashboard stats
// @Description Get aggregate statistics over the admin catalog
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardStats "Dashboard statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/dashboard [get]
func (h *PortfolioHandler) GetDashboard(c *gin.Context) {
	stats, err := h.portfolioService.Dashboard()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
