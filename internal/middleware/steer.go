package middleware

import (
    "net/http" // redirect status code

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/iliyamo/vehicle-rental/internal/model" // role names
)

// SteerAdmin redirects ADMIN sessions away from a user-facing route to
// the given admin target.  An admin following a /user/profile link
// lands on the dashboard instead of the customer profile.  It assumes
// SessionAuth has already stored the role in the context under "role".
func SteerAdmin(target string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if role, ok := c.Get("role").(string); ok && role == model.RoleAdmin {
                return c.Redirect(http.StatusTemporaryRedirect, target)
            }
            return next(c)
        }
    }
}
