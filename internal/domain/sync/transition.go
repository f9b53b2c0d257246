package sync

import (
	"errors"
	"fmt"
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
)

var (
	ErrUnknownStatus        = errors.New("unknown work order status")
	ErrTransitionNotAllowed = errors.New("invalid status transition")
)

// TransitionRole distinguishes who is asking for a status change. The
// interactive CRUD surface allows reopening a finished work order
// (DONE -> IN_PROGRESS); the sync push path does not. Both share this one
// table instead of maintaining two diverging copies.

type TransitionRole string

const (
	RoleInteractive TransitionRole = "interactive"
	RoleSync        TransitionRole = "sync"
)

var allowedTransitions = map[entities.WorkOrderStatus][]entities.WorkOrderStatus{
	entities.WorkOrderStatusScheduled:  {entities.WorkOrderStatusInProgress, entities.WorkOrderStatusCanceled},
	entities.WorkOrderStatusInProgress: {entities.WorkOrderStatusDone, entities.WorkOrderStatusCanceled},
	entities.WorkOrderStatusDone:       {},
	entities.WorkOrderStatusCanceled:   {},
}

// ValidateTransition checks from -> to against the transition table for the
// given role. A transition into the current state is accepted as a retry
// no-op. Anything else outside the table is rejected with an error naming
// the attempted pair; it is never coerced to a nearest valid state.
func ValidateTransition(role TransitionRole, from, to entities.WorkOrderStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w %q", ErrUnknownStatus, to)
	}
	if from == to {
		return nil
	}
	if role == RoleInteractive && from == entities.WorkOrderStatusDone && to == entities.WorkOrderStatusInProgress {
		return nil
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w from %s to %s", ErrTransitionNotAllowed, from, to)
}

// ApplyTransition validates and applies a status change, stamping the
// execution window timestamps. Each timestamp is set only if still unset, so
// repeating a transition into an already-reached state never moves it.
func ApplyTransition(role TransitionRole, wo *entities.WorkOrder, to entities.WorkOrderStatus, now time.Time) error {
	if err := ValidateTransition(role, wo.Status, to); err != nil {
		return err
	}
	wo.Status = to
	switch to {
	case entities.WorkOrderStatusInProgress:
		if wo.StartedAt == nil {
			t := now
			wo.StartedAt = &t
		}
	case entities.WorkOrderStatusDone:
		if wo.FinishedAt == nil {
			t := now
			wo.FinishedAt = &t
		}
	}
	return nil
}
