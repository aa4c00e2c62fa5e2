package model

import "time"

// Booking status values stored in the bookings.status column.
// PENDING and APPROVED are active states: they block deletion of the
// vehicle.  REJECTED and CANCELLED are terminal but stay queryable
// until the booking row is deleted.
const (
    BookingPending   = "PENDING"
    BookingApproved  = "APPROVED"
    BookingRejected  = "REJECTED"
    BookingCancelled = "CANCELLED"
)

// bookingTransitions is the allowed status flow for bookings.  Terminal
// states have no outgoing edges; rows in those states can only be
// deleted.  The admin decision endpoint produces only APPROVED and
// REJECTED; no API operation emits CANCELLED yet, so the APPROVED to
// CANCELLED edge waits on a user-facing cancellation endpoint.
var bookingTransitions = map[string][]string{
    BookingPending:   {BookingApproved, BookingRejected},
    BookingApproved:  {BookingCancelled},
    BookingRejected:  {},
    BookingCancelled: {},
}

// CanTransitionBooking reports whether a booking may move from one
// status to another.  Same-state writes are treated as no-ops and
// allowed.
func CanTransitionBooking(from, to string) bool {
    if from == to {
        return true
    }
    allowed, ok := bookingTransitions[from]
    if !ok {
        return false
    }
    for _, s := range allowed {
        if s == to {
            return true
        }
    }
    return false
}

// Booking mirrors the `bookings` table.  A booking links a user to a
// vehicle for a date range.  It is created as PENDING against an
// AVAILABLE vehicle; the vehicle stays AVAILABLE until an admin
// approves the booking, at which point the vehicle flips to BOOKED in
// the same transaction.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who requested the booking.
//  VehicleID   – vehicle being booked.
//  StartDate   – first day of the rental.
//  EndDate     – last day of the rental.
//  PhoneNumber – contact number given on the booking form.
//  Address     – contact address given on the booking form.
//  Status      – PENDING, APPROVED, REJECTED or CANCELLED.
//  CreatedAt   – timestamp of creation.
type Booking struct {
    ID          uint64    // bookings.id
    UserID      uint64    // bookings.user_id
    VehicleID   uint64    // bookings.vehicle_id
    StartDate   time.Time // bookings.start_date
    EndDate     time.Time // bookings.end_date
    PhoneNumber string    // bookings.phone_number
    Address     string    // bookings.address
    Status      string    // bookings.status
    CreatedAt   time.Time // bookings.created_at
}
