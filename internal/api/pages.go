package api

import (
	"net/http"                             // HTTP status codes
	"vehicle_registry/internal/domain"     // Domain models
	"vehicle_registry/internal/middleware" // Principal lookup
	"vehicle_registry/internal/service"    // CRUD orchestrators
	"vehicle_registry/internal/store"      // Keyed record storage

	"github.com/gin-gonic/gin" // Gin web framework
)

// Public page payloads. Rendering is the front end's concern; these handlers
// only assemble the data each page needs.

// HomeHandler returns the homepage statistics plus the current principal
func HomeHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		persons, err1 := s.Persons.Count()
		vehicles, err2 := s.Vehicles.Count()
		phones, err3 := s.Phones.Count()
		messages, err4 := s.Messages.Count()
		for _, err := range []error{err1, err2, err3, err4} {
			if err != nil {
				writeError(c, err)
				return
			}
		}
		resp := gin.H{
			"total_persons":  persons,
			"total_vehicles": vehicles,
			"total_phones":   phones,
			"total_messages": messages,
		}
		if p := middleware.CurrentPrincipal(c); p != nil {
			resp["username"] = p.Username
			resp["role"] = p.Role
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DatabaseHandler returns the full correlated dump: every person, vehicle
// and phone, plus both directions of the person<->vehicle link resolved at
// read time.
func DatabaseHandler(s *store.Store, personSvc *service.PersonService, vehicleSvc *service.VehicleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		persons, err := personSvc.List()
		if err != nil {
			writeError(c, err)
			return
		}
		vehicles, owners, err := vehicleSvc.ListWithOwners()
		if err != nil {
			writeError(c, err)
			return
		}
		phones, err := s.Phones.List()
		if err != nil {
			writeError(c, err)
			return
		}
		// regnumber -> vehicle for the person side of the link
		personVehicles := make(map[string]domain.Vehicle)
		for _, v := range vehicles {
			if _, claimed := owners[v.RegNum]; claimed {
				personVehicles[v.RegNum] = v
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"persons":         persons,
			"vehicles":        vehicles,
			"phones":          phones,
			"person_vehicles": personVehicles,
			"vehicle_owners":  owners,
			"total_persons":   len(persons),
			"total_vehicles":  len(vehicles),
			"total_phones":    len(phones),
		})
	}
}

// ChartHandler returns brand and color statistics plus totals for the chart
// page
func ChartHandler(s *store.Store, vehicleSvc *service.VehicleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		brands, err := vehicleSvc.StatsByBrand()
		if err != nil {
			writeError(c, err)
			return
		}
		colors, err := vehicleSvc.StatsByColor()
		if err != nil {
			writeError(c, err)
			return
		}
		persons, err := s.Persons.Count()
		if err != nil {
			writeError(c, err)
			return
		}
		vehicles, err := s.Vehicles.Count()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"brand_data":     brands,
			"color_data":     colors,
			"total_persons":  persons,
			"total_vehicles": vehicles,
		})
	}
}
