// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingDecidedEvent is published when an admin approves or rejects a
// booking. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type BookingDecidedEvent struct {
    BookingID     uint64 `json:"booking_id"`
    UserID        uint64 `json:"user_id"`
    UserName      string `json:"user_name"`
    VehicleID     uint64 `json:"vehicle_id"`
    VehicleName   string `json:"vehicle_name"`
    Status        string `json:"status"`
    VehicleStatus string `json:"vehicle_status"`
    StartDate     string `json:"start_date"`
    EndDate       string `json:"end_date"`
    DecidedAt     string `json:"decided_at"`
}
