package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "botfolio/internal/errors"
	"botfolio/internal/fixtures"
	"botfolio/internal/metrics"
	"botfolio/internal/services"
)

// CatalogHandler serves the public fixture catalog and the chart statistics
// the marketing site renders.
type CatalogHandler struct {
	fixtures  *fixtures.Catalog
	analytics services.AnalyticsServicer
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(fx *fixtures.Catalog, analytics services.AnalyticsServicer) *CatalogHandler {
	return &CatalogHandler{fixtures: fx, analytics: analytics}
}

// CatalogEntry is one row of the public catalog listing.
type CatalogEntry struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Metrics fixtures.Metrics `json:"metrics"`
}

// ListPortfolios handles listing the fixture portfolios.
// @Summary     List portfolios
// @Description Get the public portfolio catalog with headline metrics
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Success     200 {array} CatalogEntry "Portfolio catalog"
// @Router      /portfolios [get]
func (h *CatalogHandler) ListPortfolios(c *gin.Context) {
	entries := make([]CatalogEntry, 0)
	for _, id := range h.fixtures.PortfolioIDs() {
		data, _ := h.fixtures.Portfolio(id)
		entries = append(entries, CatalogEntry{ID: id, Name: data.Name, Metrics: data.Metrics})
	}
	c.JSON(http.StatusOK, gin.H{"portfolios": entries})
}

// ListBots handles listing the fixture bots.
// @Summary     List bots
// @Description Get the public individual-bot catalog with headline metrics
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Success     200 {array} CatalogEntry "Bot catalog"
// @Router      /bots [get]
func (h *CatalogHandler) ListBots(c *gin.Context) {
	entries := make([]CatalogEntry, 0)
	for _, id := range h.fixtures.BotIDs() {
		data, _ := h.fixtures.Bot(id)
		entries = append(entries, CatalogEntry{ID: id, Name: data.Name, Metrics: data.Metrics})
	}
	c.JSON(http.StatusOK, gin.H{"bots": entries})
}

// GetEntry handles the full fixture document for one catalog entry.
// @Summary     Get catalog entry
// @Description Get the full performance document for a portfolio or bot
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Param       source path string true "Catalog source (portfolios or bots)"
// @Param       id     path string true "Entry ID"
// @Success     200 {object} fixtures.PortfolioData "Catalog entry"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /{source}/{id} [get]
func (h *CatalogHandler) GetEntry(source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			data fixtures.PortfolioData
			ok   bool
		)
		if source == services.SourceBot {
			data, ok = h.fixtures.Bot(c.Param("id"))
		} else {
			data, ok = h.fixtures.Portfolio(c.Param("id"))
		}
		if !ok {
			if source == services.SourceBot {
				respondWithError(c, apperrors.ErrBotNotFound)
			} else {
				respondWithError(c, apperrors.ErrPortfolioNotFound)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"entry": data})
	}
}

// GetEquity handles the equity curve summary for one catalog entry.
// @Summary     Get equity curve
// @Description Get the equity curve and summary for a portfolio or bot
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Param       source path string true "Catalog source (portfolios or bots)"
// @Param       id     path string true "Entry ID"
// @Success     200 {object} metrics.EquitySummary "Equity summary and curve"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /{source}/{id}/equity [get]
func (h *CatalogHandler) GetEquity(source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, curve, err := h.analytics.EquitySummary(source, c.Param("id"))
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": summary, "curve": curve})
	}
}

// GetDrawdown handles the drawdown statistics for one catalog entry.
// @Summary     Get drawdown stats
// @Description Get the drawdown series and summary for a portfolio or bot
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Param       source path string true "Catalog source (portfolios or bots)"
// @Param       id     path string true "Entry ID"
// @Success     200 {object} metrics.DrawdownStats "Drawdown summary and series"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /{source}/{id}/drawdown [get]
func (h *CatalogHandler) GetDrawdown(source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, series, err := h.analytics.DrawdownStats(source, c.Param("id"))
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stats": stats, "series": series})
	}
}

// GetMonthlyReturns handles the monthly-return statistics for one catalog
// entry.
// @Summary     Get monthly returns
// @Description Get the monthly-return summary and year pivot for a portfolio or bot
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Param       source path string true "Catalog source (portfolios or bots)"
// @Param       id     path string true "Entry ID"
// @Success     200 {object} metrics.MonthlyReturnStats "Monthly return statistics"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /{source}/{id}/monthly-returns [get]
func (h *CatalogHandler) GetMonthlyReturns(source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := h.analytics.MonthlyReturnStats(source, c.Param("id"))
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stats": stats})
	}
}

// HeatmapCell is one month of the heatmap response: the raw return (null for
// months without data) plus its color bucket.
type HeatmapCell struct {
	Month  string         `json:"month"`
	Return *float64       `json:"return"`
	Bucket metrics.Bucket `json:"bucket"`
}

// HeatmapRow is one year of the heatmap response.
type HeatmapRow struct {
	Year  int           `json:"year"`
	Cells []HeatmapCell `json:"cells"`
	Total float64       `json:"total"`
}

// GetHeatmap handles the pre-bucketed heatmap for one catalog entry.
// @Summary     Get returns heatmap
// @Description Get the year-by-month heatmap with color buckets for a portfolio or bot
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Param       source path string true "Catalog source (portfolios or bots)"
// @Param       id     path string true "Entry ID"
// @Success     200 {array} HeatmapRow "Heatmap rows"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /{source}/{id}/heatmap [get]
func (h *CatalogHandler) GetHeatmap(source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := h.analytics.MonthlyReturnStats(source, c.Param("id"))
		if err != nil {
			respondWithError(c, err)
			return
		}

		months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
		rows := make([]HeatmapRow, 0, len(stats.Years))
		for _, year := range stats.Years {
			row := HeatmapRow{Year: year.Year, Total: year.Total, Cells: make([]HeatmapCell, 0, len(months))}
			for _, m := range months {
				v := year.Months[m]
				row.Cells = append(row.Cells, HeatmapCell{Month: m, Return: v, Bucket: metrics.ColorBucket(v)})
			}
			rows = append(rows, row)
		}
		c.JSON(http.StatusOK, gin.H{"heatmap": rows})
	}
}
