package handler

import (
    "database/sql" // sentinel errors from the user repository
    "net/http"     // HTTP status codes

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/vehicle-rental/internal/repository" // repository layer
)

// ProfileHandler returns the authenticated user's own data together
// with their bookings.
type ProfileHandler struct {
	Users    *repository.UserRepo
	Bookings *repository.BookingRepo
}

// NewProfileHandler constructs a ProfileHandler and panics if any
// dependency is nil.
func NewProfileHandler(users *repository.UserRepo, bookings *repository.BookingRepo) *ProfileHandler {
	if users == nil || bookings == nil {
		panic("nil repository passed to NewProfileHandler")
	}
	return &ProfileHandler{Users: users, Bookings: bookings}
}

// GetProfile handles GET /user/profile. Bookings come back newest
// first with vehicle detail attached.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bookings, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user": userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
		"bookings": bookings,
	})
}
