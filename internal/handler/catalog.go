package handler

import (
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/vehicle-rental/internal/repository" // repository layer
)

// CatalogHandler serves the public vehicle catalog.  No authentication
// is required so that guests can browse vehicles before registering.
type CatalogHandler struct {
	Vehicles *repository.VehicleRepo
}

// NewCatalogHandler constructs a CatalogHandler and panics if the
// repository is nil.
func NewCatalogHandler(vehicles *repository.VehicleRepo) *CatalogHandler {
	if vehicles == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Vehicles: vehicles}
}

// ListVehicles handles GET /vehicles. It returns every vehicle with
// its images.
func (h *CatalogHandler) ListVehicles(c echo.Context) error {
	vehicles, err := h.Vehicles.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, vehicles)
}

// GetVehicle handles GET /vehicles/:id.
func (h *CatalogHandler) GetVehicle(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}
	v, err := h.Vehicles.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrVehicleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, v)
}
