package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/vehicle-rental/internal/config"     // middleware settings
	"github.com/iliyamo/vehicle-rental/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/vehicle-rental/internal/middleware" // import middleware for session authentication and role enforcement
	"github.com/iliyamo/vehicle-rental/internal/model"      // role names for route gating
)

// Deps bundles everything route registration needs: the store handle
// for the health probe, the handlers, and the optional Redis client
// backing rate limiting and response caching. A nil Redis client
// disables both middlewares.
type Deps struct {
	DB      *sql.DB
	Cfg     config.Config
	Redis   *redis.Client
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Booking *handler.BookingHandler
	Profile *handler.ProfileHandler
	Admin   *handler.AdminHandler
	Upload  *handler.UploadHandler
}

// RegisterRoutes wires every route of the service onto the provided
// Echo instance.
//
// Public surface: health probe, auth endpoints (rate limited) and the
// vehicle catalog (response cached). Authenticated surface: booking
// creation and the profile page behind SessionAuth. Admin surface:
// back office and uploads behind SessionAuth + RequireRole(ADMIN).
func RegisterRoutes(e *echo.Echo, d Deps) {
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis)

	// Liveness probe for load balancers and monitoring.
	e.GET("/health", handler.Health(d.DB))

	// Uploaded vehicle images are served statically.
	e.Static("/uploads", d.Cfg.UploadDir)

	// Unauthenticated auth operations. Rate limited so credential
	// stuffing burns tokens instead of the database.
	auth := e.Group("/auth", rateLimit)
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/logout", d.Auth.Logout)

	// Public vehicle catalog. Guests browse it before registering, so
	// the listing sits behind the response cache.
	e.GET("/vehicles", d.Catalog.ListVehicles, cache)
	e.GET("/vehicles/:id", d.Catalog.GetVehicle, cache)

	// Routes requiring a valid session token. Booking creation is open
	// to every authenticated role; the profile page is user-facing, so
	// an admin following it is steered to the dashboard instead.
	user := e.Group("", middleware.SessionAuth(d.Cfg.JWTSecret))
	user.POST("/bookings", d.Booking.CreateBooking, rateLimit)
	user.GET("/user/profile", d.Profile.GetProfile,
		middleware.SteerAdmin("/admin/dashboard-data"))

	// Admin back office. Uploads live here too: the only consumer is
	// vehicle creation.
	admin := e.Group("/admin",
		middleware.SessionAuth(d.Cfg.JWTSecret),
		middleware.RequireRole(model.RoleAdmin))
	admin.GET("/dashboard-data", d.Admin.DashboardData)
	admin.GET("/bookings", d.Admin.ListBookings)
	admin.POST("/vehicles", d.Admin.CreateVehicle)
	admin.PATCH("/vehicles/:id", d.Admin.UpdateVehicleStatus)
	admin.DELETE("/vehicles/:id", d.Admin.DeleteVehicle)
	admin.PATCH("/bookings/:id", d.Admin.DecideBooking)
	admin.DELETE("/bookings/:id", d.Admin.DeleteBooking)

	e.POST("/upload", d.Upload.Upload,
		middleware.SessionAuth(d.Cfg.JWTSecret),
		middleware.RequireRole(model.RoleAdmin))
}
