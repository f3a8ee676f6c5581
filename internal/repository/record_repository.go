package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/greenledger/ecotrack/internal/model"
)

// RecordRepo provides persistence for the append-only records ledger.
// There are deliberately no update or delete methods.
type RecordRepo struct{ DB *sql.DB }

func NewRecordRepo(db *sql.DB) *RecordRepo { return &RecordRepo{DB: db} }

// Create appends a record and returns its ID.  Existence of the action is
// not checked here; the foreign key does that, and a violation surfaces as
// ErrUnknownAction.
func (r *RecordRepo) Create(ctx context.Context, userID, actionID uint64, quantity float64, recordDate time.Time) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO records (user_id, action_id, quantity, record_date) VALUES (?,?,?,?)",
		userID, actionID, quantity, recordDate.Format("2006-01-02"))
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrUnknownAction
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByUser returns the user's records joined with action and coefficient
// data, newest first.  Contribution is left at zero; the service computes
// it from quantity and coefficient value.
func (r *RecordRepo) ListByUser(ctx context.Context, userID uint64) ([]model.RecordDetail, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, a.name, a.category, a.unit_of_measure,
		       r.quantity, r.record_date, c.value, c.emission_unit
		FROM records r
		JOIN actions a ON r.action_id = a.id
		JOIN coefficients c ON a.coefficient_id = c.id
		WHERE r.user_id = ?
		ORDER BY r.record_date DESC, r.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RecordDetail
	for rows.Next() {
		var (
			d    model.RecordDetail
			date time.Time
		)
		if err := rows.Scan(&d.ID, &d.ActionName, &d.Category, &d.UnitOfMeasure,
			&d.Quantity, &date, &d.CoefficientValue, &d.EmissionUnit); err != nil {
			return nil, err
		}
		d.RecordDate = date.Format("2006-01-02")
		out = append(out, d)
	}
	return out, rows.Err()
}

// Report sums quantity * coefficient value per action category over the
// user's records, optionally bounded by inclusive start/end dates
// (formatted as YYYY-MM-DD).  Each bound is applied independently; empty
// strings mean unbounded.  Rows come back sorted by contribution,
// largest first.
func (r *RecordRepo) Report(ctx context.Context, userID uint64, startDate, endDate string) ([]model.CategoryTotal, error) {
	q := `
		SELECT a.category, SUM(r.quantity * c.value) AS contribution, c.emission_unit
		FROM records r
		JOIN actions a ON r.action_id = a.id
		JOIN coefficients c ON a.coefficient_id = c.id
		WHERE r.user_id = ?`
	args := []any{userID}
	if startDate != "" {
		q += " AND r.record_date >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		q += " AND r.record_date <= ?"
		args = append(args, endDate)
	}
	q += " GROUP BY a.category, c.emission_unit ORDER BY contribution DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CategoryTotal
	for rows.Next() {
		var t model.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Contribution, &t.EmissionUnit); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
