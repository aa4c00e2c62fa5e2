package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/vehicle-rental/internal/model"
)

// BookingRepo provides CRUD operations for bookings and owns the
// booking/vehicle status synchronization.  Every mutation that touches
// both a booking and its vehicle is expressed as a ...Tx method: the
// handler opens the transaction, calls the repository and the audit
// log inside it, and commits.  Approval takes a row lock on the
// vehicle before re-checking availability, so two concurrent approvals
// for the same vehicle are serialized and the loser is rejected.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying pool so handlers can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// ErrBookingNotFound is returned when the referenced booking does not
// exist.
var ErrBookingNotFound = errors.New("booking not found")

// Create inserts a PENDING booking for a vehicle that must exist and be
// AVAILABLE at creation time.  The vehicle status is deliberately left
// untouched: several PENDING bookings may coexist for one vehicle, and
// availability is only consumed when an admin approves one of them.
// It returns ErrVehicleNotFound or ErrVehicleUnavailable on the two
// precondition failures.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    var status string
    err := r.db.QueryRowContext(ctx,
        "SELECT status FROM vehicles WHERE id=?", b.VehicleID).Scan(&status)
    if err != nil {
        if err == sql.ErrNoRows {
            return ErrVehicleNotFound
        }
        return err
    }
    if status != model.VehicleAvailable {
        return ErrVehicleUnavailable
    }
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO bookings (user_id, vehicle_id, start_date, end_date, phone_number, address, status) VALUES (?,?,?,?,?,?,?)",
        b.UserID, b.VehicleID, b.StartDate, b.EndDate, b.PhoneNumber, b.Address, model.BookingPending)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    b.Status = model.BookingPending
    const sel = "SELECT created_at FROM bookings WHERE id=?"
    return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// Decision describes the outcome of a booking status change or
// deletion.  It carries the names the audit log entry and the
// published event need, so handlers do not re-query after commit.
type Decision struct {
    Booking       model.Booking
    VehicleName   string
    UserName      string
    VehicleStatus string // vehicle status after the operation
}

// getForUpdateTx loads a booking row under SELECT ... FOR UPDATE.  The
// booking lock is always taken before the vehicle lock so concurrent
// transactions acquire locks in the same order.
func (r *BookingRepo) getForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
    var b model.Booking
    err := tx.QueryRowContext(ctx,
        "SELECT id,user_id,vehicle_id,start_date,end_date,phone_number,address,status,created_at FROM bookings WHERE id=? FOR UPDATE",
        id).Scan(&b.ID, &b.UserID, &b.VehicleID, &b.StartDate, &b.EndDate, &b.PhoneNumber, &b.Address, &b.Status, &b.CreatedAt)
    if err == sql.ErrNoRows {
        return b, ErrBookingNotFound
    }
    return b, err
}

// otherApprovedExistsTx reports whether any APPROVED booking other than
// excludeID references the vehicle.  Used before resetting a vehicle to
// AVAILABLE so a vehicle claimed by another booking is never released.
func (r *BookingRepo) otherApprovedExistsTx(ctx context.Context, tx *sql.Tx, vehicleID, excludeID uint64) (bool, error) {
    var n int
    err := tx.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM bookings WHERE vehicle_id=? AND status=? AND id<>?",
        vehicleID, model.BookingApproved, excludeID).Scan(&n)
    return n > 0, err
}

// DecideTx applies an admin decision (APPROVED or REJECTED) to a
// booking and keeps the linked vehicle in sync, all inside the given
// transaction:
//
//   - APPROVED: the vehicle row is locked, availability is re-checked
//     under the lock and the vehicle flips to BOOKED. A concurrent
//     approval that already claimed the vehicle makes this one fail
//     with ErrVehicleUnavailable.
//   - REJECTED: the vehicle is reset to AVAILABLE only when no other
//     APPROVED booking claims it and an admin has not set MAINTENANCE.
//
// Disallowed transitions (e.g. approving a CANCELLED booking) fail with
// ErrInvalidTransition.  The caller commits or rolls back.
func (r *BookingRepo) DecideTx(ctx context.Context, tx *sql.Tx, vehicles *VehicleRepo, bookingID uint64, newStatus string) (*Decision, error) {
    b, err := r.getForUpdateTx(ctx, tx, bookingID)
    if err != nil {
        return nil, err
    }
    if !model.CanTransitionBooking(b.Status, newStatus) {
        return nil, ErrInvalidTransition
    }
    v, err := vehicles.GetForUpdateTx(ctx, tx, b.VehicleID)
    if err != nil {
        return nil, err
    }
    if newStatus == model.BookingApproved && b.Status != model.BookingApproved {
        if v.Status != model.VehicleAvailable {
            return nil, ErrVehicleUnavailable
        }
    }
    if _, err := tx.ExecContext(ctx,
        "UPDATE bookings SET status=? WHERE id=?", newStatus, b.ID); err != nil {
        return nil, err
    }
    vehicleStatus := v.Status
    switch newStatus {
    case model.BookingApproved:
        if err := vehicles.UpdateStatusTx(ctx, tx, v.ID, model.VehicleBooked); err != nil {
            return nil, err
        }
        vehicleStatus = model.VehicleBooked
    case model.BookingRejected, model.BookingCancelled:
        claimed, err := r.otherApprovedExistsTx(ctx, tx, v.ID, b.ID)
        if err != nil {
            return nil, err
        }
        if !claimed && v.Status != model.VehicleMaintenance {
            if err := vehicles.UpdateStatusTx(ctx, tx, v.ID, model.VehicleAvailable); err != nil {
                return nil, err
            }
            vehicleStatus = model.VehicleAvailable
        }
    }
    b.Status = newStatus
    var userName string
    if err := tx.QueryRowContext(ctx,
        "SELECT name FROM users WHERE id=?", b.UserID).Scan(&userName); err != nil {
        return nil, err
    }
    return &Decision{Booking: b, VehicleName: v.Name, UserName: userName, VehicleStatus: vehicleStatus}, nil
}

// DeleteTx removes a booking inside the given transaction.  When the
// booking being deleted is APPROVED its vehicle is reclaimed: the
// status goes back to AVAILABLE unless another APPROVED booking still
// claims the vehicle or an admin has set MAINTENANCE.
func (r *BookingRepo) DeleteTx(ctx context.Context, tx *sql.Tx, vehicles *VehicleRepo, bookingID uint64) (*Decision, error) {
    b, err := r.getForUpdateTx(ctx, tx, bookingID)
    if err != nil {
        return nil, err
    }
    v, err := vehicles.GetForUpdateTx(ctx, tx, b.VehicleID)
    if err != nil {
        return nil, err
    }
    vehicleStatus := v.Status
    if b.Status == model.BookingApproved {
        claimed, err := r.otherApprovedExistsTx(ctx, tx, v.ID, b.ID)
        if err != nil {
            return nil, err
        }
        if !claimed && v.Status != model.VehicleMaintenance {
            if err := vehicles.UpdateStatusTx(ctx, tx, v.ID, model.VehicleAvailable); err != nil {
                return nil, err
            }
            vehicleStatus = model.VehicleAvailable
        }
    }
    if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", b.ID); err != nil {
        return nil, err
    }
    var userName string
    if err := tx.QueryRowContext(ctx,
        "SELECT name FROM users WHERE id=?", b.UserID).Scan(&userName); err != nil {
        return nil, err
    }
    return &Decision{Booking: b, VehicleName: v.Name, UserName: userName, VehicleStatus: vehicleStatus}, nil
}

// AdminBookingDetail is a booking with user and vehicle summaries, as
// listed on the admin dashboard.
type AdminBookingDetail struct {
    ID          uint64    `json:"id"`
    Status      string    `json:"status"`
    StartDate   time.Time `json:"start_date"`
    EndDate     time.Time `json:"end_date"`
    PhoneNumber string    `json:"phone_number"`
    Address     string    `json:"address"`
    CreatedAt   time.Time `json:"created_at"`
    UserID      uint64    `json:"user_id"`
    UserName    string    `json:"user_name"`
    UserEmail   string    `json:"user_email"`
    VehicleID   uint64    `json:"vehicle_id"`
    VehicleName string    `json:"vehicle_name"`
    VehicleMod  string    `json:"vehicle_model"`
}

// ListAll returns every booking with user and vehicle summaries,
// newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]AdminBookingDetail, error) {
    const q = `SELECT b.id, b.status, b.start_date, b.end_date, b.phone_number, b.address, b.created_at,
                      u.id, u.name, u.email,
                      v.id, v.name, v.model
               FROM bookings b
               JOIN users u ON u.id = b.user_id
               JOIN vehicles v ON v.id = b.vehicle_id
               ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]AdminBookingDetail, 0)
    for rows.Next() {
        var d AdminBookingDetail
        if err := rows.Scan(
            &d.ID, &d.Status, &d.StartDate, &d.EndDate, &d.PhoneNumber, &d.Address, &d.CreatedAt,
            &d.UserID, &d.UserName, &d.UserEmail,
            &d.VehicleID, &d.VehicleName, &d.VehicleMod,
        ); err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    return details, rows.Err()
}

// UserBookingDetail is a booking with the vehicle detail a user sees on
// their profile page.
type UserBookingDetail struct {
    ID           uint64    `json:"id"`
    Status       string    `json:"status"`
    StartDate    time.Time `json:"start_date"`
    EndDate      time.Time `json:"end_date"`
    PhoneNumber  string    `json:"phone_number"`
    Address      string    `json:"address"`
    CreatedAt    time.Time `json:"created_at"`
    VehicleID    uint64    `json:"vehicle_id"`
    VehicleName  string    `json:"vehicle_name"`
    VehicleModel string    `json:"vehicle_model"`
    LicensePlate string    `json:"license_plate"`
    PricePerDay  float64   `json:"price_per_day"`
    VehicleState string    `json:"vehicle_status"`
}

// ListByUser returns all bookings for the given user with vehicle
// detail, newest first.  When no bookings exist an empty slice is
// returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]UserBookingDetail, error) {
    const q = `SELECT b.id, b.status, b.start_date, b.end_date, b.phone_number, b.address, b.created_at,
                      v.id, v.name, v.model, v.license_plate, v.price_per_day, v.status
               FROM bookings b
               JOIN vehicles v ON v.id = b.vehicle_id
               WHERE b.user_id = ?
               ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]UserBookingDetail, 0)
    for rows.Next() {
        var d UserBookingDetail
        if err := rows.Scan(
            &d.ID, &d.Status, &d.StartDate, &d.EndDate, &d.PhoneNumber, &d.Address, &d.CreatedAt,
            &d.VehicleID, &d.VehicleName, &d.VehicleModel, &d.LicensePlate, &d.PricePerDay, &d.VehicleState,
        ); err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    return details, rows.Err()
}
