package router

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/farwill/travel-booking/internal/config"
	"github.com/farwill/travel-booking/internal/handler"
)

func registeredRoutes(e *echo.Echo) map[string]bool {
	out := map[string]bool{}
	for _, r := range e.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func TestRegisterAdminRoutes(t *testing.T) {
	e := echo.New()
	RegisterAdmin(e, handler.NewAdminHandler(nil, nil, nil, nil, nil, nil), "secret")

	routes := registeredRoutes(e)
	for _, want := range []string{
		"GET /api/admin/users",
		"GET /api/admin/packages",
		"POST /api/admin/packages",
		"PUT /api/admin/packages/:id",
		"DELETE /api/admin/packages/:id",
		"GET /api/admin/fees",
		"POST /api/admin/fees",
		"DELETE /api/admin/fees",
		"GET /api/admin/reservations",
		"GET /api/admin/reservations/export",
		"GET /api/admin/tickets",
		"POST /api/admin/tickets/:id/reply",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestRegisterUserRoutes(t *testing.T) {
	e := echo.New()
	RegisterUser(e, handler.NewReservationHandler(nil, nil), "secret", config.RateLimitConfig{}, nil)

	routes := registeredRoutes(e)
	assert.True(t, routes["POST /api/user/verify"])
	assert.True(t, routes["GET /api/user/reservations"])
}
