package middleware

import "github.com/labstack/echo/v4"

const staffID = "staff-admin-001"

// AuthMiddleware stamps the acting staff member onto the request context.
// The real authentication/authorization layer sits in front of this service;
// this is the seam it plugs into.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("staff_id", staffID)
			return next(c)
		}
	}
}
