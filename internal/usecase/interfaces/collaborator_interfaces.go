package interfaces

import (
	"context"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
)

// IInventoryService abstracts the external inventory collaborator. Deduction
// fires when a work order reaches the configured trigger status; it is
// fire-and-forget and must never fail or roll back the status change.
type IInventoryService interface {
	DeductForWorkOrder(ctx context.Context, wo entities.WorkOrder) error
}

// IStatusNotifier abstracts the external notification collaborator. Only the
// interactive CRUD path fires it; sync does not require notifications.
type IStatusNotifier interface {
	NotifyStatusChange(ctx context.Context, wo entities.WorkOrder, previous entities.WorkOrderStatus) error
}
