// Package queue defines message payloads exchanged over the message broker
// and the background consumer turning them into an audit trail.
package queue

// RecordLoggedEvent is published after a record has been appended to the
// ledger.  It carries enough information for downstream consumers to audit
// or trigger analytics without querying the primary database.
type RecordLoggedEvent struct {
	RecordID   uint64  `json:"record_id"`
	UserID     uint64  `json:"user_id"`
	ActionID   uint64  `json:"action_id"`
	Quantity   float64 `json:"quantity"`
	RecordDate string  `json:"record_date"`
	LoggedAt   string  `json:"logged_at"`
}
