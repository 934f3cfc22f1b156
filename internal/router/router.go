package router // package router wires HTTP routes to their handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/farwill/travel-booking/internal/config"
	"github.com/farwill/travel-booking/internal/handler"
	"github.com/farwill/travel-booking/internal/middleware"
	"github.com/farwill/travel-booking/internal/model"
)

// RegisterRoutes registers routes that need no authentication.  The health
// check lives here so load balancers can probe the service.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth mounts the user and admin authentication endpoints.
// Registration, login and the password-reset pair are open; profile and
// logout-all-sessions need a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	user := e.Group("/api/auth/user")
	user.POST("/register", a.Register)
	user.POST("/login", a.Login)
	user.POST("/refresh", a.Refresh)
	user.POST("/logout", a.Logout)
	user.POST("/forgot-password", a.ForgotPassword)
	user.POST("/reset-password/:token", a.ResetPassword)

	admin := e.Group("/api/auth/admin")
	admin.POST("/login", a.AdminLogin)

	me := e.Group("/api/auth")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("/profile", a.Profile)
	me.POST("/logout-all", a.Logout)
}

// RegisterPublic mounts the guest-facing catalog and support routes.  The
// GET endpoints sit behind the redis response cache since the catalog only
// changes on admin edits.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/api/public")
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	g.GET("/packages", p.ListPackages, cached)
	g.GET("/fees", p.GetFees, cached)
	g.POST("/tickets", p.CreateTicket)
}

// RegisterUser mounts the booking endpoints for authenticated users.  The
// payment verification route carries the token-bucket limiter so retry
// storms from a stuck checkout page cannot hammer the gateway.
func RegisterUser(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/api/user")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleUser, model.RoleAdmin))

	g.POST("/verify", r.Verify, middleware.NewTokenBucket(rlCfg, rdb))
	g.GET("/reservations", r.MyReservations)
}

// RegisterAdmin mounts the management endpoints, all behind the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/api/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.GET("/users", a.ListUsers)

	g.GET("/packages", a.ListPackages)
	g.POST("/packages", a.CreatePackage)
	g.PUT("/packages/:id", a.UpdatePackage)
	g.DELETE("/packages/:id", a.DeletePackage)

	g.GET("/fees", a.GetFees)
	g.POST("/fees", a.SetFees)
	g.DELETE("/fees", a.DeleteFees)

	g.GET("/reservations", a.ListReservations)
	g.GET("/reservations/export", a.ExportReservations)

	g.GET("/tickets", a.ListTickets)
	g.POST("/tickets/:id/reply", a.ReplyTicket)
}
