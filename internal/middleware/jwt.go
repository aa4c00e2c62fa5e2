package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes and cookie type
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/vehicle-rental/internal/utils" // token verification
)

// TokenCookie is the cookie holding the session token.  The same token
// may alternatively be sent as a Bearer header; the cookie wins when
// both are present.
const TokenCookie = "token"

// SessionAuth returns an Echo middleware that validates the session
// token and injects the resolved user id and role into the request
// context under "user_id" and "role".  On a missing token it responds
// 401; on a malformed, forged or expired token it additionally clears
// the cookie so the client stops re-sending a dead credential.  The
// role claim is trusted for the token's lifetime; there is no
// per-request re-fetch of the user row, so a role changed in the
// database takes effect only when the token expires.
func SessionAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := tokenFromRequest(c)
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
            }
            userID, role, ok := utils.VerifySessionToken(secret, raw)
            if !ok {
                clearTokenCookie(c)
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
            }
            c.Set("user_id", userID)
            c.Set("role", role)
            return next(c)
        }
    }
}

// tokenFromRequest extracts the raw session token from the token
// cookie or, failing that, from a Bearer Authorization header.
func tokenFromRequest(c echo.Context) string {
    if ck, err := c.Cookie(TokenCookie); err == nil && ck.Value != "" {
        return ck.Value
    }
    auth := c.Request().Header.Get("Authorization")
    if strings.HasPrefix(auth, "Bearer ") {
        return strings.TrimPrefix(auth, "Bearer ")
    }
    return ""
}

// clearTokenCookie expires the session cookie on the client.
func clearTokenCookie(c echo.Context) {
    c.SetCookie(&http.Cookie{
        Name:     TokenCookie,
        Value:    "",
        Path:     "/",
        MaxAge:   -1,
        HttpOnly: true,
    })
}
