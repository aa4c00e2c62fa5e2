// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: each one
// maps to a specific HTTP status (conflict sentinels like
// ErrVehicleUnavailable and ErrActiveBookings to 409, the not-found
// sentinels to 404).
package repository

import "errors"

// ErrVehicleUnavailable is returned when a booking is created against,
// or approved for, a vehicle whose status is not AVAILABLE. The check
// on the approval path runs under a row lock on the vehicle, so of two
// concurrent approvals for the same vehicle exactly one receives this
// error.
var ErrVehicleUnavailable = errors.New("vehicle is not available")

// ErrInvalidTransition is returned when a booking status change is not
// permitted by the booking state machine (e.g. approving a REJECTED
// booking).
var ErrInvalidTransition = errors.New("invalid status transition")
