package api

import (
	"net/http"                          // HTTP status codes
	"vehicle_registry/internal/domain"  // Domain models
	"vehicle_registry/internal/service" // CRUD orchestrators

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for creating or updating a vehicle
type VehicleRequest struct {
	RegNum string `json:"regnum"` // Registration number (ignored on update, key comes from the route)
	Brand  string `json:"brand"`  // Vehicle brand
	Color  string `json:"color"`  // Vehicle color
}

// ListVehiclesHandler returns all vehicles with their resolved owners
func ListVehiclesHandler(svc *service.VehicleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicles, owners, err := svc.ListWithOwners()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"vehicles": vehicles, "owners": owners})
	}
}

// GetVehicleHandler returns one vehicle by registration number
func GetVehicleHandler(svc *service.VehicleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicle, err := svc.Get(c.Param("regnum"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, vehicle)
	}
}

// ViewVehicleHandler returns a vehicle together with its owner, if any
func ViewVehicleHandler(svc *service.VehicleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicle, owner, err := svc.GetWithOwner(c.Param("regnum"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"vehicle": vehicle,
			"owner":   owner, // null when no person claims the code
		})
	}
}

// CreateVehicleHandler validates and inserts a vehicle
func CreateVehicleHandler(svc *service.VehicleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VehicleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		vehicle := domain.Vehicle{RegNum: req.RegNum, Brand: req.Brand, Color: req.Color}
		if err := svc.Create(&vehicle); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, vehicle)
	}
}

// UpdateVehicleHandler validates and overwrites a vehicle by registration
// number
func UpdateVehicleHandler(svc *service.VehicleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VehicleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		vehicle := domain.Vehicle{Brand: req.Brand, Color: req.Color}
		if err := svc.Update(c.Param("regnum"), &vehicle); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, vehicle)
	}
}

// DeleteVehicleHandler removes a vehicle unless a person still claims its
// registration number
func DeleteVehicleHandler(svc *service.VehicleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Param("regnum")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
	}
}
