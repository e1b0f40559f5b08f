package repository // repository defines data access for check-in records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/flight-checkin/internal/model"
	"github.com/iliyamo/flight-checkin/internal/seating"
)

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// CheckinRecord is one traveler seated on one flight.  Records are written
// after the engine commits and are replayed at startup to rebuild the seat
// pools.
type CheckinRecord struct {
	ID         uint64
	Flight     string
	Class      string // catalog name, e.g. "economy"
	SeatLabel  string // e.g. "12A"
	Traveler   string
	Minor      bool
	Preference string // window | aisle | none
	Penalty    float64
	CreatedAt  time.Time
}

// CheckinRepo provides methods to work with check-ins in the database.
type CheckinRepo struct {
	db *sql.DB
}

// NewCheckinRepo constructs a CheckinRepo with the given DB handle.
func NewCheckinRepo(db *sql.DB) *CheckinRepo {
	return &CheckinRepo{db: db}
}

// CreateBulkTx inserts multiple check-in rows in a single statement inside
// tx.  Passing an empty slice has no effect.  A seat that is already taken
// on the flight yields ErrConflict.
func (r *CheckinRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, recs []CheckinRecord) error {
	if len(recs) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(`INSERT INTO checkins (flight, class, seat_label, traveler, minor, preference, penalty) VALUES `)
	args := make([]any, 0, len(recs)*7)
	for i, c := range recs {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, c.Flight, c.Class, c.SeatLabel, c.Traveler, c.Minor, c.Preference, c.Penalty)
	}
	if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return fmt.Errorf("%w: %s", ErrConflict, me.Message)
		}
		return err
	}
	return nil
}

// SaveAssignments stores every assignment of a check-in result in one
// transaction.
func (r *CheckinRepo) SaveAssignments(ctx context.Context, flight string, res seating.CheckinResult) (err error) {
	if len(res.Assignments) == 0 {
		return nil
	}
	cat := model.DefaultCatalog()
	recs := make([]CheckinRecord, 0, len(res.Assignments))
	for _, a := range res.Assignments {
		recs = append(recs, CheckinRecord{
			Flight:     flight,
			Class:      cat.ClassName(res.Class),
			SeatLabel:  a.Seat.Label,
			Traveler:   a.Traveler.Name,
			Minor:      a.Traveler.Minor,
			Preference: cat.SeatTypeName(a.Traveler.Preference),
			Penalty:    a.Penalty,
		})
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save checkins: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = r.CreateBulkTx(ctx, tx, recs); err != nil {
		return fmt.Errorf("save checkins: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save checkins: commit: %w", err)
	}
	return nil
}

// ListByFlight returns the check-ins of a flight in insertion order.
func (r *CheckinRepo) ListByFlight(ctx context.Context, flight string) ([]CheckinRecord, error) {
	const q = `SELECT id, flight, class, seat_label, traveler, minor, preference, penalty, created_at
	           FROM checkins
	           WHERE flight = ?
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, flight)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()

	var out []CheckinRecord
	for rows.Next() {
		var c CheckinRecord
		if err := rows.Scan(&c.ID, &c.Flight, &c.Class, &c.SeatLabel, &c.Traveler,
			&c.Minor, &c.Preference, &c.Penalty, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("list checkins: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	return out, nil
}
