package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "botfolio/internal/errors"
	"botfolio/internal/middleware"
	"botfolio/internal/models"
	"botfolio/internal/services"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	authService services.AuthServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService services.AuthServicer) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse represents the session data in the response.
type SessionResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// AuthResponse represents the authentication response with token.
type AuthResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// Login authenticates an operator against the fixed allow-list.
// @Summary     Login operator
// @Description Authenticate a back-office operator and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Operator credentials"
// @Success     200 {object} AuthResponse "Operator authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	session, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(session)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"session": gin.H{
			"username": session.Username,
			"name":     session.DisplayName,
			"role":     session.Role,
		},
	})
}

// Logout ends the operator session.
// @Summary     Logout operator
// @Description End the authenticated operator's session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, err := sessionFromContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.authService.Logout(session); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetProfile returns the authenticated operator's session.
// @Summary     Get operator profile
// @Description Get the authenticated operator's session information
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SessionResponse "Operator session"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	session, err := sessionFromContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": gin.H{
			"username": session.Username,
			"name":     session.DisplayName,
			"role":     session.Role,
		},
	})
}

// sessionFromContext rebuilds the session identity from the verified token
// claims set by the auth middleware.
func sessionFromContext(c *gin.Context) (*models.Session, error) {
	username, exists := c.Get(middleware.ContextUsername)
	if !exists {
		return nil, apperrors.ErrUnauthorized
	}
	actor, _ := c.Get(middleware.ContextActor)
	role, _ := c.Get(middleware.ContextRole)

	return &models.Session{
		Username:    username.(string),
		DisplayName: actor.(string),
		Role:        role.(models.Role),
	}, nil
}
