package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"botfolio/internal/docstore"
	"botfolio/internal/fixtures"
	"botfolio/internal/handlers"
	"botfolio/internal/logger"
	"botfolio/internal/middleware"
	"botfolio/internal/services"
	"botfolio/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Store  docstore.Store
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&docstore.Document{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	store := docstore.New(db)

	fixtureCatalog, err := fixtures.Load()
	if err != nil {
		t.Fatalf("failed to load fixture catalogs: %v", err)
	}

	// Services
	logService := services.NewActivityLogService(store)
	backupService := services.NewBackupService(store, logService)
	authService := services.NewAuthService(store, logService)
	portfolioService := services.NewPortfolioService(store, logService, backupService, fixtureCatalog)
	analyticsService := services.NewAnalyticsService(fixtureCatalog)
	extractionService := services.NewExtractionService(logService, 0, 42)
	contactService := services.NewContactService(store)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	catalogHandler := handlers.NewCatalogHandler(fixtureCatalog, analyticsService)
	activityHandler := handlers.NewActivityHandler(logService)
	backupHandler := handlers.NewBackupHandler(backupService)
	extractionHandler := handlers.NewExtractionHandler(extractionService, logService)
	contactHandler := handlers.NewContactHandler(contactService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/contact", contactHandler.SubmitContact)

	portfolios := v1.Group("/portfolios")
	portfolios.GET("", catalogHandler.ListPortfolios)
	portfolios.GET("/:id", catalogHandler.GetEntry(services.SourcePortfolio))
	portfolios.GET("/:id/equity", catalogHandler.GetEquity(services.SourcePortfolio))
	portfolios.GET("/:id/drawdown", catalogHandler.GetDrawdown(services.SourcePortfolio))
	portfolios.GET("/:id/monthly-returns", catalogHandler.GetMonthlyReturns(services.SourcePortfolio))
	portfolios.GET("/:id/heatmap", catalogHandler.GetHeatmap(services.SourcePortfolio))

	bots := v1.Group("/bots")
	bots.GET("", catalogHandler.ListBots)
	bots.GET("/:id", catalogHandler.GetEntry(services.SourceBot))
	bots.GET("/:id/equity", catalogHandler.GetEquity(services.SourceBot))
	bots.GET("/:id/drawdown", catalogHandler.GetDrawdown(services.SourceBot))
	bots.GET("/:id/monthly-returns", catalogHandler.GetMonthlyReturns(services.SourceBot))
	bots.GET("/:id/heatmap", catalogHandler.GetHeatmap(services.SourceBot))

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/auth/logout", authHandler.Logout)

	admin := protected.Group("/admin")
	admin.GET("/dashboard", portfolioHandler.GetDashboard)

	adminPortfolios := admin.Group("/portfolios")
	adminPortfolios.GET("", portfolioHandler.GetPortfolios)
	adminPortfolios.POST("", portfolioHandler.CreatePortfolio)
	adminPortfolios.GET("/:id", portfolioHandler.GetPortfolio)
	adminPortfolios.PATCH("/:id/field", portfolioHandler.UpdatePortfolioField)
	adminPortfolios.PATCH("/:id/metric", portfolioHandler.UpdatePortfolioMetric)
	adminPortfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)

	logs := admin.Group("/logs")
	logs.GET("", activityHandler.GetLogs)
	logs.GET("/stats", activityHandler.GetLogStats)
	logs.GET("/export", activityHandler.ExportLogs)
	logs.DELETE("", activityHandler.ClearLogs)

	backups := admin.Group("/backups")
	backups.GET("", backupHandler.GetBackups)
	backups.POST("", backupHandler.CreateBackup)
	backups.POST("/import", backupHandler.ImportBackup)
	backups.POST("/:id/restore", backupHandler.RestoreBackup)
	backups.GET("/:id/export", backupHandler.ExportBackup)
	backups.DELETE("/:id", backupHandler.DeleteBackup)

	admin.POST("/reports/extract", extractionHandler.ExtractReport)
	admin.GET("/contact", contactHandler.GetContactMessages)

	return &testApp{DB: db, Store: store, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// upload makes a multipart file upload request to the test router.
func (app *testApp) upload(t *testing.T, path, filename string, content []byte, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts the error code from an error response envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// login authenticates an operator and returns the bearer token.
func (app *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string)
}
