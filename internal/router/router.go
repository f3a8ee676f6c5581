package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/greenledger/ecotrack/internal/handler"
	"github.com/greenledger/ecotrack/internal/middleware"
	"github.com/greenledger/ecotrack/internal/session"
)

// Deps collects everything route registration needs: the handlers plus
// the middleware chain built around the session store.
type Deps struct {
	Auth      *handler.AuthHandler
	Eco       *handler.EcoHandler
	Admin     *handler.AdminHandler
	Sessions  session.Store
	RateLimit echo.MiddlewareFunc // applied to credential endpoints; may be nil
	Cache     echo.MiddlewareFunc // applied to the public catalog; may be nil
}

// RegisterRoutes wires the whole HTTP surface:
//
//	public     – health check, register, login, action catalog
//	authorized – current user, logout, records, report
//	admin      – catalog management, user search, block/role toggles
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	pub := e.Group("/api")
	if d.RateLimit != nil {
		pub.POST("/register", d.Auth.Register, d.RateLimit)
		pub.POST("/login", d.Auth.Login, d.RateLimit)
	} else {
		pub.POST("/register", d.Auth.Register)
		pub.POST("/login", d.Auth.Login)
	}
	if d.Cache != nil {
		pub.GET("/actions", d.Eco.ListActions, d.Cache)
	} else {
		pub.GET("/actions", d.Eco.ListActions)
	}

	// Everything below requires a valid session token.
	auth := e.Group("/api", middleware.SessionAuth(d.Sessions))
	auth.GET("/user", d.Auth.Me)
	auth.POST("/logout", d.Auth.Logout)
	auth.POST("/record", d.Eco.CreateRecord)
	auth.GET("/records", d.Eco.ListRecords)
	auth.GET("/report", d.Eco.Report)

	// Admin routes additionally require the admin flag in the snapshot.
	admin := e.Group("/api/admin", middleware.SessionAuth(d.Sessions), middleware.RequireAdmin())
	admin.POST("/actions", d.Admin.AddAction)
	admin.PUT("/actions/:id", d.Admin.UpdateCoefficient)
	admin.GET("/users/search", d.Admin.SearchUsers)
	admin.PUT("/users/:id/block", d.Admin.BlockUser)
	admin.PUT("/users/:id/role", d.Admin.SetRole)
}
