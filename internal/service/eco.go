package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/greenledger/ecotrack/internal/errs"
	"github.com/greenledger/ecotrack/internal/model"
	"github.com/greenledger/ecotrack/internal/repository"
)

// defaultEmissionUnit is used when a report matches no records.
const defaultEmissionUnit = "kg CO2e"

// dateLayout is the wire format for record and report dates.
const dateLayout = "2006-01-02"

// CatalogStore is the persistence surface for the action catalog.
type CatalogStore interface {
	List(ctx context.Context) ([]model.CatalogEntry, error)
	CreateWithCoefficient(ctx context.Context, a model.Action, value float64, emissionUnit string) (uint64, error)
	UpdateCoefficient(ctx context.Context, coefficientID uint64, value float64) error
}

// RecordStore is the persistence surface for the records ledger.
type RecordStore interface {
	Create(ctx context.Context, userID, actionID uint64, quantity float64, recordDate time.Time) (uint64, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.RecordDetail, error)
	Report(ctx context.Context, userID uint64, startDate, endDate string) ([]model.CategoryTotal, error)
}

// Report is the aggregate served by the report endpoint.
type Report struct {
	TotalContribution float64              `json:"total_contribution"`
	Unit              string               `json:"unit"`
	DetailsByCategory []model.CategoryTotal `json:"details_by_category"`
}

// EcoService implements record logging, listing and report generation.
type EcoService struct {
	catalog CatalogStore
	records RecordStore
}

// NewEcoService constructs an EcoService with its dependencies.
func NewEcoService(catalog CatalogStore, records RecordStore) *EcoService {
	return &EcoService{catalog: catalog, records: records}
}

// ListActions returns the full catalog joined with coefficients, ordered
// by name.
func (s *EcoService) ListActions(ctx context.Context) ([]model.CatalogEntry, error) {
	return s.catalog.List(ctx)
}

// CreateRecord validates and appends a ledger entry.  Action existence is
// not checked here; the storage foreign key enforces it and a violation is
// reported as a validation failure.
func (s *EcoService) CreateRecord(ctx context.Context, userID, actionID uint64, quantity float64, recordDate string) (uint64, error) {
	if actionID == 0 || quantity <= 0 || recordDate == "" {
		return 0, errs.Validation("action, positive quantity and date are required")
	}
	date, err := time.Parse(dateLayout, recordDate)
	if err != nil {
		return 0, errs.Validation("record date must be formatted as YYYY-MM-DD")
	}
	id, err := s.records.Create(ctx, userID, actionID, quantity, date)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownAction) {
			return 0, errs.Validation("the referenced action does not exist")
		}
		return 0, err
	}
	return id, nil
}

// ListUserRecords returns the user's ledger, newest first, each row
// annotated with contribution = quantity * coefficient value.
func (s *EcoService) ListUserRecords(ctx context.Context, userID uint64) ([]model.RecordDetail, error) {
	details, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range details {
		details[i].Contribution = round2(details[i].Quantity * details[i].CoefficientValue)
	}
	return details, nil
}

// GenerateReport sums contributions per category over the optional
// inclusive date range.  Bounds are applied independently; both empty
// means all records.  With no matching rows the report is zero-valued
// with the default unit.
func (s *EcoService) GenerateReport(ctx context.Context, userID uint64, startDate, endDate string) (Report, error) {
	for _, d := range []string{startDate, endDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return Report{}, errs.Validation("report dates must be formatted as YYYY-MM-DD")
		}
	}
	totals, err := s.records.Report(ctx, userID, startDate, endDate)
	if err != nil {
		return Report{}, err
	}
	rep := Report{Unit: defaultEmissionUnit, DetailsByCategory: []model.CategoryTotal{}}
	for i, t := range totals {
		if i == 0 && t.EmissionUnit != "" {
			rep.Unit = t.EmissionUnit
		}
		t.Contribution = round2(t.Contribution)
		rep.TotalContribution += t.Contribution
		rep.DetailsByCategory = append(rep.DetailsByCategory, t)
	}
	rep.TotalContribution = round2(rep.TotalContribution)
	return rep, nil
}

// round2 rounds to two decimal places, the precision the dashboard shows.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
