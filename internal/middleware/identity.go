package middleware

import "github.com/labstack/echo/v4"

// CurrentUserID reads the authenticated user id set by JWTAuth.  Returns
// false when the request was not authenticated.
func CurrentUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get("user_id").(uint64)
	return id, ok
}
