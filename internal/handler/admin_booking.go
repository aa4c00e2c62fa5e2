package handler

import (
    "context"  // detached context for post-commit event publishing
    "fmt"      // audit log descriptions
    "net/http" // HTTP status codes
    "strings"  // status normalization
    "time"     // event timestamps

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/vehicle-rental/internal/model"                // domain types
    "github.com/iliyamo/vehicle-rental/internal/queue"                // event payloads
    "github.com/iliyamo/vehicle-rental/internal/repository"           // repository layer
    queue_publisher "github.com/iliyamo/vehicle-rental/internal/service" // broker publishing
)

// ListBookings handles GET /admin/bookings. Every booking is returned
// with user and vehicle summaries, newest first.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	bookings, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, bookings)
}

type decideBookingReq struct {
	Status string `json:"status"`
}

// DecideBooking handles PATCH /admin/bookings/:id. The booking status
// change and the vehicle status flip happen in one transaction with a
// row lock on the vehicle, so two admins racing to approve bookings
// for the same vehicle cannot both win. The audit log entry commits
// with the mutation; the broker event is published best-effort after
// the commit.
func (h *AdminHandler) DecideBooking(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req decideBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != model.BookingApproved && status != model.BookingRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be APPROVED or REJECTED"})
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	dec, err := h.Bookings.DecideTx(ctx, tx, h.Vehicles, id, status)
	if err != nil {
		switch err {
		case repository.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case repository.ErrVehicleUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"error": "vehicle is not available"})
		case repository.ErrInvalidTransition:
			return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
		default:
			h.AppLog.WithField("booking_id", id).Errorf("decide booking: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	desc := fmt.Sprintf("Booking for %s by %s %s", dec.VehicleName, dec.UserName, strings.ToLower(status))
	if err := h.Logs.AppendTx(ctx, tx, model.ActionUpdateBooking, desc, adminID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "audit log failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Publish after commit; a broker outage must not fail the decision.
	ev := queue.BookingDecidedEvent{
		BookingID:     dec.Booking.ID,
		UserID:        dec.Booking.UserID,
		UserName:      dec.UserName,
		VehicleID:     dec.Booking.VehicleID,
		VehicleName:   dec.VehicleName,
		Status:        status,
		VehicleStatus: dec.VehicleStatus,
		StartDate:     dec.Booking.StartDate.Format("2006-01-02"),
		EndDate:       dec.Booking.EndDate.Format("2006-01-02"),
		DecidedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingDecided(pubCtx, ev)
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"id":             dec.Booking.ID,
		"status":         dec.Booking.Status,
		"vehicle_id":     dec.Booking.VehicleID,
		"vehicle_status": dec.VehicleStatus,
	})
}

// DeleteBooking handles DELETE /admin/bookings/:id. Deleting an
// APPROVED booking reclaims the vehicle: its status goes back to
// AVAILABLE in the same transaction.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	dec, err := h.Bookings.DeleteTx(ctx, tx, h.Vehicles, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	desc := fmt.Sprintf("Booking for %s by %s was deleted", dec.VehicleName, dec.UserName)
	if err := h.Logs.AppendTx(ctx, tx, model.ActionDeleteBooking, desc, adminID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "audit log failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted"})
}
