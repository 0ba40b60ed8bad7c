package api

import (
	"vehicle_registry/internal/identity"   // Identity registry
	"vehicle_registry/internal/middleware" // Principal resolution and role policy
	"vehicle_registry/internal/ownership"  // Person<->Vehicle soft link
	"vehicle_registry/internal/service"    // CRUD orchestrators
	"vehicle_registry/internal/store"      // Keyed record storage

	"github.com/gin-contrib/sessions"        // Session middleware
	"github.com/gin-contrib/sessions/cookie" // Cookie-backed session store
	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/redis/go-redis/v9"           // Redis client
	"gorm.io/gorm"                           // GORM ORM library
)

// NewRouter wires every route group. The role model lives entirely in
// middleware.RoutePolicy; handlers never check roles themselves.
func NewRouter(db *gorm.DB, rdb *redis.Client, jwtSecret, sessionSecret string) *gin.Engine {
	st := store.New(db)
	linker := ownership.NewLinker(st)
	registry := identity.NewRegistry(st)
	personSvc := service.NewPersonService(st, linker)
	vehicleSvc := service.NewVehicleService(st, linker)
	phoneSvc := service.NewPhoneService(st)
	messageSvc := service.NewMessageService(st)
	userSvc := service.NewUserService(st, registry)

	r := gin.Default()
	r.Use(sessions.Sessions("vehicle_registry", cookie.NewStore([]byte(sessionSecret))))
	r.Use(middleware.ResolvePrincipal(st, jwtSecret))

	// Public pages and auth, no gate
	r.GET("/", HomeHandler(st))
	r.GET("/database", DatabaseHandler(st, personSvc, vehicleSvc))
	r.GET("/chart", ChartHandler(st, vehicleSvc))
	r.POST("/register", RegisterHandler(registry))
	r.POST("/login", LoginHandler(registry, jwtSecret))
	r.POST("/logout", LogoutHandler())
	r.POST("/contact", SubmitContactHandler(messageSvc))

	// Person management pages (public in the original security rules)
	crud := r.Group("/crud")
	crud.GET("", ListPersonsHandler(personSvc))
	crud.GET("/view/:id", ViewPersonHandler(personSvc))
	crud.POST("/add", CreatePersonHandler(personSvc))
	crud.POST("/edit/:id", UpdatePersonHandler(personSvc))
	crud.POST("/delete/:id", DeletePersonHandler(personSvc))

	// Vehicle management pages
	vehicles := r.Group("/vehicles")
	vehicles.GET("", ListVehiclesHandler(vehicleSvc))
	vehicles.GET("/view/:regnum", ViewVehicleHandler(vehicleSvc))
	vehicles.POST("/add", CreateVehicleHandler(vehicleSvc))
	vehicles.POST("/edit/:regnum", UpdateVehicleHandler(vehicleSvc))
	vehicles.POST("/delete/:regnum", DeleteVehicleHandler(vehicleSvc))

	// Messages, gated to REGISTERED and ADMIN
	messages := r.Group("/messages", middleware.RequireGroup(middleware.GroupMessages))
	messages.GET("", ListMessagesHandler(messageSvc))

	// Admin, gated to ADMIN
	admin := r.Group("/admin", middleware.RequireGroup(middleware.GroupAdmin))
	admin.GET("", AdminDashboardHandler(st))
	admin.GET("/users", ListUsersHandler(userSvc, rdb))
	admin.GET("/users/export", ExportUsersHandler(userSvc))
	admin.POST("/users/:id/role", SetUserRoleHandler(userSvc, rdb))
	admin.POST("/users/:id/delete", DeleteUserHandler(userSvc, rdb))
	admin.POST("/cache/clear", ClearCacheHandler(rdb))

	// JSON API, gated to REGISTERED and ADMIN
	apiGroup := r.Group("/api", middleware.RequireGroup(middleware.GroupAPI))
	apiGroup.GET("/persons", ListPersonsHandler(personSvc))
	apiGroup.GET("/persons/:id", GetPersonHandler(personSvc))
	apiGroup.POST("/persons", CreatePersonHandler(personSvc))
	apiGroup.PUT("/persons/:id", UpdatePersonHandler(personSvc))
	apiGroup.DELETE("/persons/:id", DeletePersonHandler(personSvc))
	apiGroup.GET("/vehicles", ListVehiclesHandler(vehicleSvc))
	apiGroup.GET("/vehicles/:regnum", GetVehicleHandler(vehicleSvc))
	apiGroup.POST("/vehicles", CreateVehicleHandler(vehicleSvc))
	apiGroup.PUT("/vehicles/:regnum", UpdateVehicleHandler(vehicleSvc))
	apiGroup.DELETE("/vehicles/:regnum", DeleteVehicleHandler(vehicleSvc))
	apiGroup.GET("/phones", ListPhonesHandler(phoneSvc))
	apiGroup.POST("/phones", CreatePhoneHandler(phoneSvc))
	apiGroup.PUT("/phones/:id", UpdatePhoneHandler(phoneSvc))
	apiGroup.DELETE("/phones/:id", DeletePhoneHandler(phoneSvc))
	apiGroup.GET("/stats/vehicles-by-brand", VehiclesByBrandHandler(vehicleSvc, rdb))
	apiGroup.GET("/stats/vehicles-by-color", VehiclesByColorHandler(vehicleSvc, rdb))

	return r
}
