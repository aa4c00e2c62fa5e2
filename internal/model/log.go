package model

import "time"

// Audit log action tags.  One row is appended for every admin mutation
// of a vehicle or booking.  The log is write-only for the service; it
// is read back only by the admin dashboard.
const (
    ActionUpdateVehicle = "UPDATE_VEHICLE"
    ActionDeleteVehicle = "DELETE_VEHICLE"
    ActionUpdateBooking = "UPDATE_BOOKING"
    ActionDeleteBooking = "DELETE_BOOKING"
)

// Log mirrors the `logs` table.
//
// Fields:
//  ID          – primary key identifier.
//  Action      – one of the Action* tags above.
//  Description – human-readable summary of the mutation.
//  UserID      – admin who performed the mutation.
//  CreatedAt   – timestamp of the mutation.
type Log struct {
    ID          uint64    // logs.id
    Action      string    // logs.action
    Description string    // logs.description
    UserID      uint64    // logs.user_id
    CreatedAt   time.Time // logs.created_at
}
