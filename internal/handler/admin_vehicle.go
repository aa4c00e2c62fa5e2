// Package handler defines HTTP handlers for authenticated ADMIN
// operations. This file implements the vehicle back office: creation,
// status overrides and deletion. Every mutation appends an audit log
// entry in the same transaction as the change it records. Appropriate
// HTTP status codes are returned when resources are missing or cannot
// be mutated due to conflicts (e.g. active bookings).
package handler

import (
    "fmt"      // audit log descriptions
    "net/http" // status code constants
    "strings"  // status normalization

    "github.com/labstack/echo/v4" // echo provides request/response handling
    "github.com/sirupsen/logrus"  // application logger for internal failures

    "github.com/iliyamo/vehicle-rental/internal/model"      // domain types
    "github.com/iliyamo/vehicle-rental/internal/repository" // repository layer
)

// AdminHandler groups the repositories the admin back office needs.
// All methods assume SessionAuth and RequireRole(ADMIN) have already
// run; getUserID is still checked so a missing identity yields 401
// instead of a zero-valued admin ID in the audit trail.
type AdminHandler struct {
	Users    *repository.UserRepo
	Vehicles *repository.VehicleRepo
	Bookings *repository.BookingRepo
	Logs     *repository.LogRepo
	AppLog   *logrus.Logger
}

// NewAdminHandler constructs an AdminHandler with the provided
// repositories. All dependencies must be non-nil.
func NewAdminHandler(users *repository.UserRepo, vehicles *repository.VehicleRepo, bookings *repository.BookingRepo, logs *repository.LogRepo, appLog *logrus.Logger) *AdminHandler {
	if users == nil || vehicles == nil || bookings == nil || logs == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	if appLog == nil {
		appLog = logrus.StandardLogger()
	}
	return &AdminHandler{Users: users, Vehicles: vehicles, Bookings: bookings, Logs: logs, AppLog: appLog}
}

type createVehicleReq struct {
	Name         string   `json:"name"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	LicensePlate string   `json:"license_plate"`
	PricePerDay  float64  `json:"price_per_day"`
	SeatCount    int      `json:"seat_count"`
	Images       []string `json:"images"`
}

// CreateVehicle handles POST /admin/vehicles. Missing fields are
// reported all at once; a duplicate license plate yields 409.
func (h *AdminHandler) CreateVehicle(c echo.Context) error {
	var req createVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Model = strings.TrimSpace(req.Model)
	req.LicensePlate = strings.TrimSpace(req.LicensePlate)
	missing := make([]string, 0, 6)
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Model == "" {
		missing = append(missing, "model")
	}
	if req.Year == 0 {
		missing = append(missing, "year")
	}
	if req.LicensePlate == "" {
		missing = append(missing, "license_plate")
	}
	if req.PricePerDay <= 0 {
		missing = append(missing, "price_per_day")
	}
	if req.SeatCount <= 0 {
		missing = append(missing, "seat_count")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "missing required fields",
			"missing": missing,
		})
	}

	v := model.Vehicle{
		Name:         req.Name,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		PricePerDay:  req.PricePerDay,
		SeatCount:    req.SeatCount,
	}
	detail, err := h.Vehicles.Create(c.Request().Context(), &v, req.Images)
	if err != nil {
		if err == repository.ErrPlateExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "license plate already exists"})
		}
		h.AppLog.WithField("plate", req.LicensePlate).Errorf("create vehicle: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create vehicle failed"})
	}
	return c.JSON(http.StatusCreated, detail)
}

type updateVehicleReq struct {
	Status string `json:"status"`
}

// UpdateVehicleStatus handles PATCH /admin/vehicles/:id. The status is
// overwritten unconditionally; only the value itself is validated.
func (h *AdminHandler) UpdateVehicleStatus(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}
	var req updateVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !model.ValidVehicleStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx := c.Request().Context()
	tx, err := h.Vehicles.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	v, err := h.Vehicles.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrVehicleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Vehicles.UpdateStatusTx(ctx, tx, id, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	desc := fmt.Sprintf("Vehicle %s status updated to %s", v.Name, status)
	if err := h.Logs.AppendTx(ctx, tx, model.ActionUpdateVehicle, desc, adminID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "audit log failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	v.Status = status
	return c.JSON(http.StatusOK, echo.Map{
		"id":     v.ID,
		"name":   v.Name,
		"status": v.Status,
	})
}

// DeleteVehicle handles DELETE /admin/vehicles/:id. A vehicle with any
// PENDING or APPROVED booking cannot be deleted; the guard and the
// deletes run in one transaction so the invariant holds under
// concurrent booking creation.
func (h *AdminHandler) DeleteVehicle(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Vehicles.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	v, err := h.Vehicles.DeleteTx(ctx, tx, id)
	if err != nil {
		switch err {
		case repository.ErrVehicleNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		case repository.ErrActiveBookings:
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete vehicle with active bookings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	desc := fmt.Sprintf("Vehicle %s (%s) was deleted", v.Name, v.LicensePlate)
	if err := h.Logs.AppendTx(ctx, tx, model.ActionDeleteVehicle, desc, adminID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "audit log failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{"message": "vehicle deleted"})
}
