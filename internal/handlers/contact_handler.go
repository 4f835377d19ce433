package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "botfolio/internal/errors"
	"botfolio/internal/models"
	"botfolio/internal/services"
)

// ContactHandler handles contact form requests.
type ContactHandler struct {
	contactService services.ContactServicer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.ContactServicer) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest represents the public contact form payload.
type ContactRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Email       string `json:"email" binding:"required,email,max=255"`
	Phone       string `json:"phone" binding:"max=30"`
	Subject     string `json:"subject" binding:"required,min=1,max=200"`
	Message     string `json:"message" binding:"required,min=10,max=2000"`
	ServiceType string `json:"service_type" binding:"omitempty,service_type"`
}

// SubmitContact handles a public contact form submission.
// @Summary     Submit contact form
// @Description Submit a message through the public contact form
// @Tags        contact
// @Accept      json
// @Produce     json
// @Param       request body ContactRequest true "Contact form fields"
// @Success     201 {object} models.ContactMessage "Message received"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	msg, err := h.contactService.Submit(models.ContactMessage{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Message:     req.Message,
		ServiceType: req.ServiceType,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetContactMessages handles listing the contact inbox.
// @Summary     List contact messages
// @Description Get all contact form submissions, newest first
// @Tags        contact
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.ContactMessage "Contact messages"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admin/contact [get]
func (h *ContactHandler) GetContactMessages(c *gin.Context) {
	messages, err := h.contactService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "total": len(messages)})
}
