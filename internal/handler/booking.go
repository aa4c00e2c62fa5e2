package handler

import (
    "net/http" // HTTP status codes
    "strings"  // trimming of form fields
    "time"     // date parsing

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/vehicle-rental/internal/model"      // domain types
    "github.com/iliyamo/vehicle-rental/internal/repository" // repository layer
)

// BookingHandler lets authenticated users request vehicle bookings.
// The vehicle must exist and be AVAILABLE at creation time; the row is
// inserted as PENDING and the vehicle stays AVAILABLE until an admin
// approves the booking.
type BookingHandler struct {
	Bookings *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler and panics if the
// repository is nil.
func NewBookingHandler(bookings *repository.BookingRepo) *BookingHandler {
	if bookings == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

type createBookingReq struct {
	VehicleID   uint64 `json:"vehicle_id"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Address = strings.TrimSpace(req.Address)
	missing := make([]string, 0, 4)
	if req.VehicleID == 0 {
		missing = append(missing, "vehicle_id")
	}
	if req.StartDate == "" {
		missing = append(missing, "start_date")
	}
	if req.EndDate == "" {
		missing = append(missing, "end_date")
	}
	if req.PhoneNumber == "" {
		missing = append(missing, "phone_number")
	}
	if req.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "missing required fields",
			"missing": missing,
		})
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date"})
	}
	if end.Before(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date before start_date"})
	}

	b := model.Booking{
		UserID:      userID,
		VehicleID:   req.VehicleID,
		StartDate:   start,
		EndDate:     end,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}
	if err := h.Bookings.Create(c.Request().Context(), &b); err != nil {
		switch err {
		case repository.ErrVehicleNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		case repository.ErrVehicleUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle is not available"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":           b.ID,
		"vehicle_id":   b.VehicleID,
		"status":       b.Status,
		"start_date":   b.StartDate.Format("2006-01-02"),
		"end_date":     b.EndDate.Format("2006-01-02"),
		"phone_number": b.PhoneNumber,
		"address":      b.Address,
		"created_at":   b.CreatedAt,
	})
}
