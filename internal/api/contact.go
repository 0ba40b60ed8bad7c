package api

import (
	"net/http"                          // HTTP status codes
	"vehicle_registry/internal/domain"  // Domain models
	"vehicle_registry/internal/service" // CRUD orchestrators

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for submitting a contact message
type ContactRequest struct {
	Name    string `json:"name"`    // Sender name
	Email   string `json:"email"`   // Sender email
	Subject string `json:"subject"` // Message subject
	Message string `json:"message"` // Message body
}

// SubmitContactHandler accepts a contact message from anyone, including
// anonymous visitors
func SubmitContactHandler(svc *service.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		msg := domain.ContactMessage{Name: req.Name, Email: req.Email, Subject: req.Subject, Message: req.Message}
		if err := svc.Create(&msg); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your message! We will get back to you soon."})
	}
}

// ListMessagesHandler returns all messages, newest first. Gated to
// REGISTERED and ADMIN by the route policy.
func ListMessagesHandler(svc *service.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		msgs, err := svc.List()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs, "total": len(msgs)})
	}
}
