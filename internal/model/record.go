package model

import "time"

// Record is a user's logged occurrence of an action: how much of it they
// did and on which date.  Records form an append-only ledger; they are
// never mutated or deleted once written.
//
// Fields:
//
//	ID         – primary key identifier.
//	UserID     – owner of the record.
//	ActionID   – catalog action that was performed.
//	Quantity   – amount performed, always > 0.
//	RecordDate – calendar date the action took place.
//	CreatedAt  – timestamp the row was written.
type Record struct {
	ID         uint64    // records.id
	UserID     uint64    // records.user_id
	ActionID   uint64    // records.action_id
	Quantity   float64   // records.quantity
	RecordDate time.Time // records.record_date
	CreatedAt  time.Time // records.created_at
}

// RecordDetail is a record joined with its action and coefficient, as
// returned by the records listing.  Contribution is computed by the
// service layer as Quantity * CoefficientValue.
type RecordDetail struct {
	ID               uint64  `json:"id"`
	ActionName       string  `json:"action_name"`
	Category         string  `json:"category"`
	UnitOfMeasure    string  `json:"unit_of_measure"`
	Quantity         float64 `json:"quantity"`
	RecordDate       string  `json:"record_date"`
	CoefficientValue float64 `json:"coefficient_value"`
	EmissionUnit     string  `json:"emission_unit"`
	Contribution     float64 `json:"contribution"`
}

// CategoryTotal is one aggregated report row: the summed contribution of
// all matching records in a category.
type CategoryTotal struct {
	Category     string  `json:"category"`
	Contribution float64 `json:"contribution"`
	EmissionUnit string  `json:"-"`
}
