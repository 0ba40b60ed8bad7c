package api

import (
	"net/http"                         // HTTP status codes
	"vehicle_registry/internal/domain" // Domain models
	"vehicle_registry/internal/service" // CRUD orchestrators

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for creating or updating a person
type PersonRequest struct {
	Name      string `json:"name"`      // Person name
	RegNumber string `json:"regnumber"` // 6-char registration code
	Height    int    `json:"height"`    // Height in cm
}

// ListPersonsHandler returns all persons
func ListPersonsHandler(svc *service.PersonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		persons, err := svc.List()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, persons)
	}
}

// GetPersonHandler returns one person by id
func GetPersonHandler(svc *service.PersonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		person, err := svc.Get(id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, person)
	}
}

// ViewPersonHandler returns a person together with the vehicle they claim
// and their phones. The vehicle link is resolved at read time.
func ViewPersonHandler(svc *service.PersonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		person, vehicle, phones, err := svc.GetWithVehicle(id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"person":  person,
			"vehicle": vehicle, // null when the code matches no vehicle
			"phones":  phones,
		})
	}
}

// CreatePersonHandler validates and inserts a person
func CreatePersonHandler(svc *service.PersonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PersonRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		person := domain.Person{Name: req.Name, RegNumber: req.RegNumber, Height: req.Height}
		if err := svc.Create(&person); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, person)
	}
}

// UpdatePersonHandler validates and overwrites a person by id
func UpdatePersonHandler(svc *service.PersonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		var req PersonRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		person := domain.Person{Name: req.Name, RegNumber: req.RegNumber, Height: req.Height}
		if err := svc.Update(id, &person); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, person)
	}
}

// DeletePersonHandler removes a person, cascading to their phones. The
// vehicle sharing their registration code is untouched.
func DeletePersonHandler(svc *service.PersonService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Person deleted successfully"})
	}
}
