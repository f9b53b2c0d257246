package entities

import "time"

// WorkOrderStatus represents the lifecycle of a work order.
//
// Domain notes:
//   - The server is the single source of truth for work-order state.
//   - Allowed transitions are enforced by the transition validator in
//     internal/domain/sync; nothing else may change Status.

type WorkOrderStatus string

const (
	WorkOrderStatusScheduled  WorkOrderStatus = "SCHEDULED"
	WorkOrderStatusInProgress WorkOrderStatus = "IN_PROGRESS"
	WorkOrderStatusDone       WorkOrderStatus = "DONE"
	WorkOrderStatusCanceled   WorkOrderStatus = "CANCELED"
)

// IsTerminal reports whether the status admits no further sync transitions.
func (s WorkOrderStatus) IsTerminal() bool {
	return s == WorkOrderStatusDone || s == WorkOrderStatusCanceled
}

// IsValid reports whether s is one of the known lifecycle states.
func (s WorkOrderStatus) IsValid() bool {
	switch s {
	case WorkOrderStatusScheduled, WorkOrderStatusInProgress, WorkOrderStatusDone, WorkOrderStatusCanceled:
		return true
	}
	return false
}

// WorkOrderItemDetail is a denormalized line item snapshot attached to a
// work order at the time the item is added. It is copied by value and is
// never re-derived from the catalog, so later catalog price changes do not
// retroactively alter an already-synced work order.
type WorkOrderItemDetail struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ItemType  string  `json:"item_type"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

// WorkOrder is the synchronized aggregate persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-updated_sort-index): user_id / updated_sort, where
//     updated_sort is a fixed-width UTC timestamp plus "#" plus id, so the
//     index order equals the (UpdatedAt, ID) delta-sync order.
//
// UpdatedAt strictly increases on every successful mutation and is the sole
// ordering key for delta sync; ties are broken by ID.
type WorkOrder struct {
	ID                string                `json:"id"`
	UserID            string                `json:"user_id"`
	ClientID          string                `json:"client_id"`
	ClientName        string                `json:"client_name"`
	QuoteID           string                `json:"quote_id,omitempty"`
	WorkOrderTypeID   string                `json:"work_order_type_id,omitempty"`
	WorkOrderTypeName string                `json:"work_order_type_name,omitempty"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	Status            WorkOrderStatus       `json:"status"`
	ScheduledDate     *time.Time            `json:"scheduled_date,omitempty"`
	ScheduledStart    *time.Time            `json:"scheduled_start,omitempty"`
	ScheduledEnd      *time.Time            `json:"scheduled_end,omitempty"`
	StartedAt         *time.Time            `json:"started_at,omitempty"`
	FinishedAt        *time.Time            `json:"finished_at,omitempty"`
	Address           string                `json:"address,omitempty"`
	Notes             string                `json:"notes,omitempty"`
	TotalValue        float64               `json:"total_value"`
	Active            bool                  `json:"active"`
	Items             []WorkOrderItemDetail `json:"items,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// ComputeItemTotals recalculates each item total and the aggregate value.
func (w *WorkOrder) ComputeItemTotals() {
	total := 0.0
	for i := range w.Items {
		it := &w.Items[i]
		it.Total = it.Quantity*it.UnitPrice - it.Discount
		total += it.Total
	}
	w.TotalValue = total
}
