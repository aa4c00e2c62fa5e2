package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/vehicle-rental/internal/model"
)

// VehicleRepo provides CRUD operations for vehicles and their images.
// Images live in the vehicle_images table and are always loaded with
// the vehicle.  Deletion is guarded: a vehicle with any PENDING or
// APPROVED booking cannot be removed.
type VehicleRepo struct {
    db *sql.DB
}

// NewVehicleRepo returns a new VehicleRepo bound to the given database.
func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{db: db} }

// DB exposes the underlying pool so handlers can open transactions that
// span vehicles, bookings and logs.
func (r *VehicleRepo) DB() *sql.DB { return r.db }

// ErrPlateExists is returned when a vehicle is created with a license
// plate that is already taken.
var ErrPlateExists = errors.New("license plate already exists")

// ErrVehicleNotFound is returned when the referenced vehicle does not
// exist.
var ErrVehicleNotFound = errors.New("vehicle not found")

// ErrActiveBookings is returned when a vehicle cannot be deleted
// because a PENDING or APPROVED booking still references it.
var ErrActiveBookings = errors.New("vehicle has active bookings")

// VehicleDetail is a vehicle together with its ordered image URLs.  It
// is the shape returned by the public catalog and the admin endpoints.
type VehicleDetail struct {
    ID           uint64   `json:"id"`
    Name         string   `json:"name"`
    Model        string   `json:"model"`
    Year         int      `json:"year"`
    LicensePlate string   `json:"license_plate"`
    PricePerDay  float64  `json:"price_per_day"`
    SeatCount    int      `json:"seat_count"`
    Status       string   `json:"status"`
    Images       []string `json:"images"`
}

// Create inserts a vehicle with status AVAILABLE and attaches the given
// image URLs in order.  Both inserts run in one transaction so a failed
// image insert leaves no orphan vehicle.  It returns ErrPlateExists on
// a duplicate license plate.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle, images []string) (*VehicleDetail, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    res, err := tx.ExecContext(ctx,
        "INSERT INTO vehicles (name, model, year, license_plate, price_per_day, seat_count, status) VALUES (?,?,?,?,?,?,?)",
        v.Name, v.Model, v.Year, v.LicensePlate, v.PricePerDay, v.SeatCount, model.VehicleAvailable)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return nil, ErrPlateExists
        }
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    v.ID = uint64(id)
    for _, url := range images {
        if _, err := tx.ExecContext(ctx,
            "INSERT INTO vehicle_images (vehicle_id, url) VALUES (?,?)", v.ID, url); err != nil {
            return nil, err
        }
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return &VehicleDetail{
        ID:           v.ID,
        Name:         v.Name,
        Model:        v.Model,
        Year:         v.Year,
        LicensePlate: v.LicensePlate,
        PricePerDay:  v.PricePerDay,
        SeatCount:    v.SeatCount,
        Status:       model.VehicleAvailable,
        Images:       append([]string{}, images...),
    }, nil
}

// GetByID returns a single vehicle with its images.  It returns
// ErrVehicleNotFound when no row exists.
func (r *VehicleRepo) GetByID(ctx context.Context, id uint64) (*VehicleDetail, error) {
    var d VehicleDetail
    err := r.db.QueryRowContext(ctx,
        "SELECT id,name,model,year,license_plate,price_per_day,seat_count,status FROM vehicles WHERE id=?",
        id).Scan(&d.ID, &d.Name, &d.Model, &d.Year, &d.LicensePlate, &d.PricePerDay, &d.SeatCount, &d.Status)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrVehicleNotFound
        }
        return nil, err
    }
    d.Images = make([]string, 0)
    rows, err := r.db.QueryContext(ctx,
        "SELECT url FROM vehicle_images WHERE vehicle_id=? ORDER BY id", id)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var url string
        if err := rows.Scan(&url); err != nil {
            return nil, err
        }
        d.Images = append(d.Images, url)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return &d, nil
}

// ListAll returns every vehicle with its images.  Images for all
// vehicles are loaded in a single query and distributed by vehicle ID.
func (r *VehicleRepo) ListAll(ctx context.Context) ([]VehicleDetail, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT id,name,model,year,license_plate,price_per_day,seat_count,status FROM vehicles ORDER BY created_at DESC")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]VehicleDetail, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var d VehicleDetail
        if err := rows.Scan(&d.ID, &d.Name, &d.Model, &d.Year, &d.LicensePlate, &d.PricePerDay, &d.SeatCount, &d.Status); err != nil {
            return nil, err
        }
        d.Images = make([]string, 0)
        index[d.ID] = len(details)
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(details) == 0 {
        return details, nil
    }
    irows, err := r.db.QueryContext(ctx,
        "SELECT vehicle_id, url FROM vehicle_images ORDER BY vehicle_id, id")
    if err != nil {
        return nil, err
    }
    defer irows.Close()
    for irows.Next() {
        var vid uint64
        var url string
        if err := irows.Scan(&vid, &url); err != nil {
            return nil, err
        }
        if idx, ok := index[vid]; ok {
            details[idx].Images = append(details[idx].Images, url)
        }
    }
    return details, irows.Err()
}

// GetForUpdateTx loads a vehicle row under SELECT ... FOR UPDATE inside
// the given transaction.  Booking approval takes this lock first so
// that two concurrent approvals for the same vehicle are serialized.
func (r *VehicleRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Vehicle, error) {
    var v model.Vehicle
    err := tx.QueryRowContext(ctx,
        "SELECT id,name,model,year,license_plate,price_per_day,seat_count,status,created_at FROM vehicles WHERE id=? FOR UPDATE",
        id).Scan(&v.ID, &v.Name, &v.Model, &v.Year, &v.LicensePlate, &v.PricePerDay, &v.SeatCount, &v.Status, &v.CreatedAt)
    if err == sql.ErrNoRows {
        return v, ErrVehicleNotFound
    }
    return v, err
}

// UpdateStatusTx overwrites the vehicle status inside the given
// transaction.
func (r *VehicleRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
    res, err := tx.ExecContext(ctx, "UPDATE vehicles SET status=? WHERE id=?", status, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrVehicleNotFound
    }
    return nil
}

// DeleteTx removes a vehicle and its images inside the given
// transaction.  It fails with ErrActiveBookings when any booking for
// the vehicle is still PENDING or APPROVED; the existence check and the
// deletes run under the same transaction so a booking created
// concurrently cannot slip past the guard.
func (r *VehicleRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Vehicle, error) {
    v, err := r.GetForUpdateTx(ctx, tx, id)
    if err != nil {
        return v, err
    }
    var active int
    err = tx.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM bookings WHERE vehicle_id=? AND status IN (?,?)",
        id, model.BookingPending, model.BookingApproved).Scan(&active)
    if err != nil {
        return v, err
    }
    if active > 0 {
        return v, ErrActiveBookings
    }
    if _, err := tx.ExecContext(ctx, "DELETE FROM vehicle_images WHERE vehicle_id=?", id); err != nil {
        return v, err
    }
    // Terminal bookings (REJECTED/CANCELLED) referencing the vehicle go
    // with it so the foreign key does not block the delete.
    if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE vehicle_id=?", id); err != nil {
        return v, err
    }
    _, err = tx.ExecContext(ctx, "DELETE FROM vehicles WHERE id=?", id)
    return v, err
}
