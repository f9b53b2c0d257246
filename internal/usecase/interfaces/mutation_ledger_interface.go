package interfaces

import (
	"context"
	"errors"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
)

// ErrMutationAlreadyProcessed is returned by Commit when another request won
// the race for the same mutation id. The caller re-reads the ledger and
// replays the stored outcome.
var ErrMutationAlreadyProcessed = errors.New("mutation already processed")

// ErrWorkOrderIDTaken is returned when a create-only write loses to an
// existing record with the same id.
var ErrWorkOrderIDTaken = errors.New("work order id already exists")

// WorkOrderWrite is the data-side half of a mutation commit. Exactly one of
// Put or DeleteID is set; a nil *WorkOrderWrite means the mutation was
// rejected and only the ledger entry is written.
type WorkOrderWrite struct {
	Put      *entities.WorkOrder
	DeleteID string

	// CreateOnly guards the Put with an existence check so a create can
	// never silently overwrite a record that already has the same id.
	CreateOnly bool
}

// IMutationLedgerRepository abstracts the idempotency ledger.
//
// Commit persists the ledger entry and the corresponding work-order write as
// one atomic unit. If they could commit separately, a crash between them
// would leave the mutation either replayable with no ledger guard or
// ledger-guarded with no applied effect.

type IMutationLedgerRepository interface {
	Get(ctx context.Context, userID, mutationID string) (entities.ProcessedMutation, error)
	Commit(ctx context.Context, entry entities.ProcessedMutation, write *WorkOrderWrite) error
}
