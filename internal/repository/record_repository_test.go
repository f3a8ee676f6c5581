package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRecordRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRecordRepo(db)

	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WithArgs(uint64(1), uint64(2), 12.5, "2026-03-15").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Create(context.Background(), 1, 2, 12.5, date)
	require.NoError(t, err)
	require.Equal(t, uint64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepoCreateUnknownAction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRecordRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WillReturnError(errors.New("Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails"))

	_, err = repo.Create(context.Background(), 1, 999, 1, time.Now())
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestRecordRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRecordRepo(db)

	cols := []string{"id", "name", "category", "unit_of_measure", "quantity", "record_date", "value", "emission_unit"}
	mock.ExpectQuery("SELECT r.id, a.name, a.category").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(8, "Cycling", "Transport", "km", 10.0, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), 0.2, "kg CO2e").
			AddRow(7, "Waste sorting", "Waste", "kg", 3.0, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 0.12, "kg CO2e"))

	recs, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "2026-03-16", recs[0].RecordDate)
	require.Equal(t, "Cycling", recs[0].ActionName)
	require.Equal(t, 0.12, recs[1].CoefficientValue)
}

func TestRecordRepoReportBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRecordRepo(db)

	cols := []string{"category", "contribution", "emission_unit"}

	// Both bounds present.
	mock.ExpectQuery(regexp.QuoteMeta("r.record_date >= ? AND r.record_date <= ?")).
		WithArgs(uint64(1), "2026-01-01", "2026-03-31").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("Transport", 10.4, "kg CO2e").
			AddRow("Waste", 2.4, "kg CO2e"))

	totals, err := repo.Report(context.Background(), 1, "2026-01-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, "Transport", totals[0].Category)
	require.Equal(t, 10.4, totals[0].Contribution)

	// End bound only.
	mock.ExpectQuery(regexp.QuoteMeta("r.record_date <= ?")).
		WithArgs(uint64(1), "2026-03-31").
		WillReturnRows(sqlmock.NewRows(cols))

	totals, err = repo.Report(context.Background(), 1, "", "2026-03-31")
	require.NoError(t, err)
	require.Empty(t, totals)

	// No bounds.
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY a.category, c.emission_unit")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("Energy", 5.0, "kg CO2e"))

	totals, err = repo.Report(context.Background(), 1, "", "")
	require.NoError(t, err)
	require.Len(t, totals, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
