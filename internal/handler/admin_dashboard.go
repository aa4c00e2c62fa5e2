package handler

import (
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4" // Echo web framework
)

// DashboardData handles GET /admin/dashboard-data. It aggregates
// users, vehicles, bookings and the most recent audit entries into a
// single payload for the admin dashboard.
func (h *AdminHandler) DashboardData(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	vehicles, err := h.Vehicles.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bookings, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	logs, err := h.Logs.ListRecent(ctx, 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":    users,
		"vehicles": vehicles,
		"bookings": bookings,
		"logs":     logs,
	})
}
