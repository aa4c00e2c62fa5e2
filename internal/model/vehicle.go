package model

import "time"

// Vehicle status values stored in the vehicles.status column.
// AVAILABLE vehicles can receive bookings, BOOKED vehicles are claimed
// by exactly one approved booking, and MAINTENANCE is set by an admin
// to withdraw a vehicle from the catalog independently of bookings.
const (
    VehicleAvailable   = "AVAILABLE"
    VehicleBooked      = "BOOKED"
    VehicleMaintenance = "MAINTENANCE"
)

// ValidVehicleStatus reports whether s is one of the three vehicle
// status values.  Admin status updates are rejected for anything else.
func ValidVehicleStatus(s string) bool {
    switch s {
    case VehicleAvailable, VehicleBooked, VehicleMaintenance:
        return true
    }
    return false
}

// Vehicle mirrors the `vehicles` table.  A vehicle is created by an
// admin with status AVAILABLE and carries an ordered list of image
// URLs stored in the vehicle_images table.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name (e.g. "Toyota Corolla").
//  Model        – manufacturer model string.
//  Year         – model year.
//  LicensePlate – unique plate number.
//  PricePerDay  – rental price per day.
//  SeatCount    – number of seats.
//  Status       – AVAILABLE, BOOKED or MAINTENANCE.
//  CreatedAt    – timestamp of creation.
type Vehicle struct {
    ID           uint64    // vehicles.id
    Name         string    // vehicles.name
    Model        string    // vehicles.model
    Year         int       // vehicles.year
    LicensePlate string    // vehicles.license_plate
    PricePerDay  float64   // vehicles.price_per_day
    SeatCount    int       // vehicles.seat_count
    Status       string    // vehicles.status
    CreatedAt    time.Time // vehicles.created_at
}
