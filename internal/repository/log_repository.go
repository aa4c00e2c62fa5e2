package repository

import (
    "context"
    "database/sql"
    "time"
)

// LogRepo appends audit rows for admin mutations.  The log is
// append-only from the service's point of view; the only read path is
// the recent-entries listing on the admin dashboard.
type LogRepo struct {
    db *sql.DB
}

// NewLogRepo returns a new LogRepo bound to the given database.
func NewLogRepo(db *sql.DB) *LogRepo { return &LogRepo{db: db} }

// AppendTx inserts an audit row inside the given transaction so the
// entry commits atomically with the mutation it describes.
func (r *LogRepo) AppendTx(ctx context.Context, tx *sql.Tx, action, description string, userID uint64) error {
    _, err := tx.ExecContext(ctx,
        "INSERT INTO logs (action, description, user_id) VALUES (?,?,?)",
        action, description, userID)
    return err
}

// LogEntry is an audit row as returned to the admin dashboard.
type LogEntry struct {
    ID          uint64    `json:"id"`
    Action      string    `json:"action"`
    Description string    `json:"description"`
    UserID      uint64    `json:"user_id"`
    CreatedAt   time.Time `json:"created_at"`
}

// ListRecent returns the newest audit entries up to limit.
func (r *LogRepo) ListRecent(ctx context.Context, limit int) ([]LogEntry, error) {
    if limit <= 0 {
        limit = 50
    }
    rows, err := r.db.QueryContext(ctx,
        "SELECT id, action, description, user_id, created_at FROM logs ORDER BY created_at DESC, id DESC LIMIT ?", limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    entries := make([]LogEntry, 0, limit)
    for rows.Next() {
        var e LogEntry
        if err := rows.Scan(&e.ID, &e.Action, &e.Description, &e.UserID, &e.CreatedAt); err != nil {
            return nil, err
        }
        entries = append(entries, e)
    }
    return entries, rows.Err()
}
