package repository

import (
	"context"
	"database/sql"

	"github.com/greenledger/ecotrack/internal/model"
)

// ActionRepo provides persistence for the action catalog and its
// coefficients.  The two tables form a 1:1 pair created together, so the
// create path runs both inserts inside one transaction.
type ActionRepo struct{ DB *sql.DB }

func NewActionRepo(db *sql.DB) *ActionRepo { return &ActionRepo{DB: db} }

// List returns every action joined with its current coefficient, ordered
// by name.
func (r *ActionRepo) List(ctx context.Context) ([]model.CatalogEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT a.id, a.name, a.description, a.category, a.unit_of_measure,
		       c.id, c.value, c.emission_unit
		FROM actions a
		JOIN coefficients c ON a.coefficient_id = c.id
		ORDER BY a.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CatalogEntry
	for rows.Next() {
		var (
			e    model.CatalogEntry
			desc sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &desc, &e.Category, &e.UnitOfMeasure,
			&e.CoefficientID, &e.CoefficientValue, &e.EmissionUnit); err != nil {
			return nil, err
		}
		e.Description = desc.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateWithCoefficient inserts a coefficient row and the action
// referencing it as one atomic unit.  The transaction guarantees no
// orphaned coefficient can remain when the action insert fails.  It
// returns the new action id.
func (r *ActionRepo) CreateWithCoefficient(ctx context.Context, a model.Action, value float64, emissionUnit string) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO coefficients (value, emission_unit) VALUES (?, ?)", value, emissionUnit)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	coeffID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	res, err = tx.ExecContext(ctx,
		"INSERT INTO actions (name, description, category, unit_of_measure, coefficient_id) VALUES (?, ?, ?, ?, ?)",
		a.Name, a.Description, a.Category, a.UnitOfMeasure, coeffID)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	actionID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(actionID), nil
}

// UpdateCoefficient sets a new value on a coefficient row.  Zero affected
// rows is ambiguous under MySQL (missing row vs. unchanged value); an
// existence check resolves it the same way the user updates do.
func (r *ActionRepo) UpdateCoefficient(ctx context.Context, coefficientID uint64, value float64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE coefficients SET value=? WHERE id=?", value, coefficientID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM coefficients WHERE id=?)", coefficientID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrCoefficientNotFound
	}
	return nil
}
