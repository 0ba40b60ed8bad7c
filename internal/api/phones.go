package api

import (
	"net/http"                          // HTTP status codes
	"strconv"                           // String conversion
	"vehicle_registry/internal/domain"  // Domain models
	"vehicle_registry/internal/service" // CRUD orchestrators

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for creating or updating a phone
type PhoneRequest struct {
	PersonID uint   `json:"personid"` // Owning person id, must exist
	Number   string `json:"number"`   // Phone number
}

// ListPhonesHandler returns all phones, optionally filtered by owner via
// ?personid=
func ListPhonesHandler(svc *service.PhoneService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pid := c.Query("personid"); pid != "" {
			id, err := strconv.ParseUint(pid, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid personid"})
				return
			}
			phones, err := svc.ListByPerson(uint(id))
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, phones)
			return
		}
		phones, err := svc.List()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, phones)
	}
}

// CreatePhoneHandler validates and inserts a phone
func CreatePhoneHandler(svc *service.PhoneService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PhoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		phone := domain.Phone{PersonID: req.PersonID, Number: req.Number}
		if err := svc.Create(&phone); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, phone)
	}
}

// UpdatePhoneHandler validates and overwrites a phone by id
func UpdatePhoneHandler(svc *service.PhoneService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var req PhoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		phone := domain.Phone{PersonID: req.PersonID, Number: req.Number}
		if err := svc.Update(id, &phone); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, phone)
	}
}

// DeletePhoneHandler removes a phone by id
func DeletePhoneHandler(svc *service.PhoneService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Phone deleted successfully"})
	}
}
