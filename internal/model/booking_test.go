package model

import "testing"

func TestCanTransitionBooking(t *testing.T) {
	if !CanTransitionBooking(BookingPending, BookingApproved) {
		t.Fatalf("expected pending -> approved allowed")
	}
	if !CanTransitionBooking(BookingPending, BookingRejected) {
		t.Fatalf("expected pending -> rejected allowed")
	}
	if !CanTransitionBooking(BookingApproved, BookingCancelled) {
		t.Fatalf("expected approved -> cancelled allowed")
	}
	if CanTransitionBooking(BookingRejected, BookingApproved) {
		t.Fatalf("expected rejected -> approved not allowed")
	}
	if CanTransitionBooking(BookingCancelled, BookingApproved) {
		t.Fatalf("expected cancelled -> approved not allowed")
	}
	if CanTransitionBooking(BookingApproved, BookingRejected) {
		t.Fatalf("expected approved -> rejected not allowed")
	}
	// same-state writes are no-ops
	if !CanTransitionBooking(BookingApproved, BookingApproved) {
		t.Fatalf("expected approved -> approved allowed")
	}
	if CanTransitionBooking("UNKNOWN", BookingApproved) {
		t.Fatalf("expected unknown source status not allowed")
	}
}

func TestValidVehicleStatus(t *testing.T) {
	for _, s := range []string{VehicleAvailable, VehicleBooked, VehicleMaintenance} {
		if !ValidVehicleStatus(s) {
			t.Fatalf("expected %s valid", s)
		}
	}
	if ValidVehicleStatus("SOLD") {
		t.Fatalf("expected SOLD invalid")
	}
	if ValidVehicleStatus("available") {
		t.Fatalf("expected lowercase invalid; handlers upper-case first")
	}
}
