package handler // declare the package name; contains HTTP handlers

import (
    "context"      // timeout for the liveness query
    "database/sql" // the store handle to probe
    "net/http"     // net/http provides status codes and response helpers
    "time"         // probe timeout

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health returns a health-check handler used by load balancers and
// monitoring systems. It runs a trivial query against the store so a
// dead database shows up as unhealthy rather than a green probe in
// front of a broken service.
func Health(db *sql.DB) echo.HandlerFunc {
    return func(c echo.Context) error {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
        defer cancel()
        var one int
        if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{
                "status":   "unhealthy",
                "database": "disconnected",
            })
        }
        return c.JSON(http.StatusOK, echo.Map{
            "status":   "healthy",
            "database": "connected",
        })
    }
}
