package interfaces

import (
	"context"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/sync"
)

// IWorkOrderRepository abstracts DynamoDB persistence for WorkOrder.
//
// Every read and write is scoped to the owning technician; a lookup for a
// record that exists but belongs to someone else behaves exactly like a
// miss. Missing records come back as the zero value with a nil error.

type IWorkOrderRepository interface {
	Create(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error)
	GetByID(ctx context.Context, userID, id string) (entities.WorkOrder, error)
	Put(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error)
	Delete(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]entities.WorkOrder, error)
	CountByUser(ctx context.Context, userID string) (int, error)

	// QueryChangedAfter walks the caller's delta stream in (UpdatedAt, ID)
	// order, strictly after afterSortKey (see sync.SortKey), returning at
	// most limit records that match the filter.
	QueryChangedAfter(ctx context.Context, userID, afterSortKey string, filter sync.Filter, limit int) ([]entities.WorkOrder, error)
}
