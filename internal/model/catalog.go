package model

import "time"

// Coefficient is an emissions factor: the amount of CO2-equivalent saved
// per unit of an action.  A coefficient belongs to exactly one action and
// is created together with it.  Coefficients are never deleted; admin
// updates only change the value.
//
// Fields:
//
//	ID           – primary key identifier.
//	Value        – emissions factor, always > 0.
//	EmissionUnit – unit of the factor, defaults to "kg CO2e".
//	LastUpdated  – timestamp of the most recent value change.
type Coefficient struct {
	ID           uint64    // coefficients.id
	Value        float64   // coefficients.value
	EmissionUnit string    // coefficients.emission_unit
	LastUpdated  time.Time // coefficients.last_updated
}

// Action is a catalog entry describing a trackable eco-friendly behavior
// and its unit of measure.  Each action references exactly one coefficient.
//
// Fields:
//
//	ID            – primary key identifier.
//	Name          – display name of the behavior.
//	Description   – optional free-form description.
//	Category      – grouping used by reports (e.g. Transport, Waste).
//	UnitOfMeasure – unit the user logs quantities in (km, kg, kWh).
//	CoefficientID – reference to the owning coefficient row.
type Action struct {
	ID            uint64 // actions.id
	Name          string // actions.name
	Description   string // actions.description
	Category      string // actions.category
	UnitOfMeasure string // actions.unit_of_measure
	CoefficientID uint64 // actions.coefficient_id
}

// CatalogEntry is an action joined with its current coefficient, the shape
// served by the public catalog endpoint and consumed by the dashboard.
type CatalogEntry struct {
	ID               uint64  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	UnitOfMeasure    string  `json:"unit_of_measure"`
	CoefficientID    uint64  `json:"coefficient_id"`
	CoefficientValue float64 `json:"coefficient_value"`
	EmissionUnit     string  `json:"emission_unit"`
}
