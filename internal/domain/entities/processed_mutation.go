package entities

import "time"

// MutationAction identifies what a pushed mutation wants to do.

type MutationAction string

const (
	MutationActionCreate       MutationAction = "create"
	MutationActionUpdate       MutationAction = "update"
	MutationActionUpdateStatus MutationAction = "update_status"
	MutationActionDelete       MutationAction = "delete"
)

// MutationOutcome is the final status recorded for a processed mutation.

type MutationOutcome string

const (
	MutationOutcomeApplied  MutationOutcome = "applied"
	MutationOutcomeRejected MutationOutcome = "rejected"
)

// ProcessedMutation is the idempotency ledger record for one client mutation.
//
// Storage model (DynamoDB):
//   - PK: user_id
//   - SK: mutation_id
//
// A ledger entry is created exactly once per mutation id and retained
// permanently. A replayed mutation id always returns the stored outcome and
// performs no further writes; that is what makes client retries safe.
type ProcessedMutation struct {
	MutationID  string          `json:"mutation_id"`
	UserID      string          `json:"user_id"`
	EntityID    string          `json:"entity_id"`
	Action      MutationAction  `json:"action"`
	Status      MutationOutcome `json:"status"`
	Record      *WorkOrder      `json:"record,omitempty"`
	Error       string          `json:"error,omitempty"`
	ProcessedAt time.Time       `json:"processed_at"`
}
