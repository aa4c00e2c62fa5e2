package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/vehicle-rental/internal/model"
)

// The exact statements the repository issues, so the mock matches them
// byte for byte.
const (
	qBookingLock   = "SELECT id,user_id,vehicle_id,start_date,end_date,phone_number,address,status,created_at FROM bookings WHERE id=? FOR UPDATE"
	qVehicleLock   = "SELECT id,name,model,year,license_plate,price_per_day,seat_count,status,created_at FROM vehicles WHERE id=? FOR UPDATE"
	qUpdateBooking = "UPDATE bookings SET status=? WHERE id=?"
	qUpdateVehicle = "UPDATE vehicles SET status=? WHERE id=?"
	qOtherApproved = "SELECT COUNT(*) FROM bookings WHERE vehicle_id=? AND status=? AND id<>?"
	qUserName      = "SELECT name FROM users WHERE id=?"
	qDeleteBooking = "DELETE FROM bookings WHERE id=?"
	qVehicleStatus = "SELECT status FROM vehicles WHERE id=?"
)

func newMockRepos(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *BookingRepo, *VehicleRepo) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock, NewBookingRepo(db), NewVehicleRepo(db)
}

func bookingRows(id, userID, vehicleID int64, status string) *sqlmock.Rows {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "user_id", "vehicle_id", "start_date", "end_date",
		"phone_number", "address", "status", "created_at",
	}).AddRow(id, userID, vehicleID, start, start.AddDate(0, 0, 4),
		"555-0100", "12 Main St", status, start)
}

func vehicleRows(id int64, name, status string) *sqlmock.Rows {
	created := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "name", "model", "year", "license_plate",
		"price_per_day", "seat_count", "status", "created_at",
	}).AddRow(id, name, "Corolla", 2021, "XYZ-1", 45.0, 5, status, created)
}

func beginTx(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) *sql.Tx {
	t.Helper()
	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	return tx
}

func checkMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideTxApproveFlipsVehicle(t *testing.T) {
	db, mock, bookings, vehicles := newMockRepos(t)
	tx := beginTx(t, db, mock)

	mock.ExpectQuery(qBookingLock).WithArgs(5).
		WillReturnRows(bookingRows(5, 2, 3, model.BookingPending))
	mock.ExpectQuery(qVehicleLock).WithArgs(3).
		WillReturnRows(vehicleRows(3, "Toyota Corolla", model.VehicleAvailable))
	mock.ExpectExec(qUpdateBooking).WithArgs(model.BookingApproved, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qUpdateVehicle).WithArgs(model.VehicleBooked, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(qUserName).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Alice"))

	dec, err := bookings.DecideTx(context.Background(), tx, vehicles, 5, model.BookingApproved)
	if err != nil {
		t.Fatalf("DecideTx: %v", err)
	}
	if dec.Booking.Status != model.BookingApproved {
		t.Fatalf("expected booking APPROVED, got %s", dec.Booking.Status)
	}
	if dec.VehicleStatus != model.VehicleBooked {
		t.Fatalf("expected vehicle BOOKED, got %s", dec.VehicleStatus)
	}
	if dec.VehicleName != "Toyota Corolla" || dec.UserName != "Alice" {
		t.Fatalf("expected names for the audit entry, got %q/%q", dec.VehicleName, dec.UserName)
	}
	checkMet(t, mock)
}

func TestDecideTxApproveLosesWhenVehicleClaimed(t *testing.T) {
	db, mock, bookings, vehicles := newMockRepos(t)
	tx := beginTx(t, db, mock)

	// A concurrent approval already flipped the vehicle; the re-check
	// under the row lock must reject this one.
	mock.ExpectQuery(qBookingLock).WithArgs(5).
		WillReturnRows(bookingRows(5, 2, 3, model.BookingPending))
	mock.ExpectQuery(qVehicleLock).WithArgs(3).
		WillReturnRows(vehicleRows(3, "Toyota Corolla", model.VehicleBooked))

	_, err := bookings.DecideTx(context.Background(), tx, vehicles, 5, model.BookingApproved)
	if err != ErrVehicleUnavailable {
		t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
	}
	checkMet(t, mock)
}

func TestDecideTxApproveFailsAtomically(t *testing.T) {
	db, mock, bookings, vehicles := newMockRepos(t)
	tx := beginTx(t, db, mock)

	boom := errors.New("connection reset")
	mock.ExpectQuery(qBookingLock).WithArgs(5).
		WillReturnRows(bookingRows(5, 2, 3, model.BookingPending))
	mock.ExpectQuery(qVehicleLock).WithArgs(3).
		WillReturnRows(vehicleRows(3, "Toyota Corolla", model.VehicleAvailable))
	mock.ExpectExec(qUpdateBooking).WithArgs(model.BookingApproved, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qUpdateVehicle).WithArgs(model.VehicleBooked, 3).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := bookings.DecideTx(context.Background(), tx, vehicles, 5, model.BookingApproved)
	if err == nil {
		t.Fatalf("expected error when the vehicle flip fails")
	}
	// The caller rolls back, discarding the booking update too.
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	checkMet(t, mock)
}

func TestDecideTxRejectReclaimsVehicle(t *testing.T) {
	db, mock, bookings, vehicles := newMockRepos(t)
	tx := beginTx(t, db, mock)

	mock.ExpectQuery(qBookingLock).WithArgs(7).
		WillReturnRows(bookingRows(7, 2, 3, model.BookingPending))
	mock.ExpectQuery(qVehicleLock).WithArgs(3).
		WillReturnRows(vehicleRows(3, "Toyota Corolla", model.VehicleAvailable))
	mock.ExpectExec(qUpdateBooking).WithArgs(model.BookingRejected, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(qOtherApproved).WithArgs(3, model.BookingApproved, 7).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectExec(qUpdateVehicle).WithArgs(model.VehicleAvailable, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(qUserName).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Alice"))

	dec, err := bookings.DecideTx(context.Background(), tx, vehicles, 7, model.BookingRejected)
	if err != nil {
		t.Fatalf("DecideTx: %v", err)
	}
	if dec.VehicleStatus != model.VehicleAvailable {
		t.Fatalf("expected vehicle AVAILABLE, got %s", dec.VehicleStatus)
	}
	checkMet(t, mock)
}

func TestDecideTxRejectLeavesClaimedVehicle(t *testing.T) {
	db, mock, bookings, vehicles := newMockRepos(t)
	tx := beginTx(t, db, mock)

	// Another booking holds the vehicle; rejecting this one must not
	// release it.
	mock.ExpectQuery(qBookingLock).WithArgs(7).
		WillReturnRows(bookingRows(7, 2, 3, model.BookingPending))
	mock.ExpectQuery(qVehicleLock).WithArgs(3).
		WillReturnRows(vehicleRows(3, "Toyota Corolla", model.VehicleBooked))
	mock.ExpectExec(qUpdateBooking).WithArgs(model.BookingRejected, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(qOtherApproved).WithArgs(3, model.BookingApproved, 7).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	mock.ExpectQuery(qUserName).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Alice"))

	dec, err := bookings.DecideTx(context.Background(), tx, vehicles, 7, model.BookingRejected)
	if err != nil {
		t.Fatalf("DecideTx: %v", err)
	}
	if dec.VehicleStatus != model.VehicleBooked {
		t.Fatalf("expected vehicle still BOOKED, got %s", dec.VehicleStatus)
	}
	checkMet(t, mock)
}

func TestDecideTxRejectKeepsMaintenance(t *testing.T) {
	db, mock, bookings, vehicles := newMockRepos(t)
	tx := beginTx(t, db, mock)

	mock.ExpectQuery(qBookingLock).WithArgs(7).
		WillReturnRows(bookingRows(7, 2, 3, model.BookingPending))
	mock.ExpectQuery(qVehicleLock).WithArgs(3).
		WillReturnRows(vehicleRows(3, "Toyota Corolla", model.VehicleMaintenance))
	mock.ExpectExec(qUpdateBooking).WithArgs(model.BookingRejected, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(qOtherApproved).WithArgs(3, model.BookingApproved, 7).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectQuery(qUserName).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Alice"))

	dec, err := bookings.DecideTx(context.Background(), tx, vehicles, 7, model.BookingRejected)
	if err != nil {
		t.Fatalf("DecideTx: %v", err)
	}
	if dec.VehicleStatus != model.VehicleMaintenance {
		t.Fatalf("expected vehicle kept in MAINTENANCE, got %s", dec.VehicleStatus)
	}
	checkMet(t, mock)
}

func TestDecideTxRejectsInvalidTransition(t *testing.T) {
	db, mock, bookings, vehicles := newMockRepos(t)
	tx := beginTx(t, db, mock)

	mock.ExpectQuery(qBookingLock).WithArgs(9).
		WillReturnRows(bookingRows(9, 2, 3, model.BookingRejected))

	_, err := bookings.DecideTx(context.Background(), tx, vehicles, 9, model.BookingApproved)
	if err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	checkMet(t, mock)
}

func TestDeleteTxReclaimsApprovedBooking(t *testing.T) {
	db, mock, bookings, vehicles := newMockRepos(t)
	tx := beginTx(t, db, mock)

	mock.ExpectQuery(qBookingLock).WithArgs(5).
		WillReturnRows(bookingRows(5, 2, 3, model.BookingApproved))
	mock.ExpectQuery(qVehicleLock).WithArgs(3).
		WillReturnRows(vehicleRows(3, "Toyota Corolla", model.VehicleBooked))
	mock.ExpectQuery(qOtherApproved).WithArgs(3, model.BookingApproved, 5).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectExec(qUpdateVehicle).WithArgs(model.VehicleAvailable, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDeleteBooking).WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(qUserName).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Alice"))

	dec, err := bookings.DeleteTx(context.Background(), tx, vehicles, 5)
	if err != nil {
		t.Fatalf("DeleteTx: %v", err)
	}
	if dec.VehicleStatus != model.VehicleAvailable {
		t.Fatalf("expected vehicle reclaimed to AVAILABLE, got %s", dec.VehicleStatus)
	}
	checkMet(t, mock)
}

func TestDeleteTxTerminalBookingLeavesVehicle(t *testing.T) {
	db, mock, bookings, vehicles := newMockRepos(t)
	tx := beginTx(t, db, mock)

	// Deleting a REJECTED booking never touches the vehicle status.
	mock.ExpectQuery(qBookingLock).WithArgs(5).
		WillReturnRows(bookingRows(5, 2, 3, model.BookingRejected))
	mock.ExpectQuery(qVehicleLock).WithArgs(3).
		WillReturnRows(vehicleRows(3, "Toyota Corolla", model.VehicleAvailable))
	mock.ExpectExec(qDeleteBooking).WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(qUserName).WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Alice"))

	dec, err := bookings.DeleteTx(context.Background(), tx, vehicles, 5)
	if err != nil {
		t.Fatalf("DeleteTx: %v", err)
	}
	if dec.VehicleStatus != model.VehicleAvailable {
		t.Fatalf("expected vehicle untouched, got %s", dec.VehicleStatus)
	}
	checkMet(t, mock)
}

func TestDeleteTxMissingBooking(t *testing.T) {
	db, mock, bookings, vehicles := newMockRepos(t)
	tx := beginTx(t, db, mock)

	mock.ExpectQuery(qBookingLock).WithArgs(404).WillReturnError(sql.ErrNoRows)

	_, err := bookings.DeleteTx(context.Background(), tx, vehicles, 404)
	if err != ErrBookingNotFound {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCreateBookingVehicleUnavailable(t *testing.T) {
	_, mock, bookings, _ := newMockRepos(t)

	mock.ExpectQuery(qVehicleStatus).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(model.VehicleBooked))

	b := model.Booking{UserID: 2, VehicleID: 3}
	if err := bookings.Create(context.Background(), &b); err != ErrVehicleUnavailable {
		t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
	}
	if b.ID != 0 {
		t.Fatalf("expected no booking row created")
	}
	checkMet(t, mock)
}

func TestCreateBookingVehicleMissing(t *testing.T) {
	_, mock, bookings, _ := newMockRepos(t)

	mock.ExpectQuery(qVehicleStatus).WithArgs(404).
		WillReturnError(sql.ErrNoRows)

	b := model.Booking{UserID: 2, VehicleID: 404}
	if err := bookings.Create(context.Background(), &b); err != ErrVehicleNotFound {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
	checkMet(t, mock)
}
