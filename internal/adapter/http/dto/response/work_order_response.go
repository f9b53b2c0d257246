package response

import (
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
)

type WorkOrderItemRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ItemType  string  `json:"itemType,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

// WorkOrderRecord is the wire shape shared by the sync protocol and the
// interactive CRUD endpoints. ClientName and WorkOrderTypeName are
// denormalized so the mobile app can render lists without extra lookups.
type WorkOrderRecord struct {
	ID                string                `json:"id"`
	ClientID          string                `json:"clientId"`
	ClientName        string                `json:"clientName,omitempty"`
	QuoteID           string                `json:"quoteId,omitempty"`
	WorkOrderTypeID   string                `json:"workOrderTypeId,omitempty"`
	WorkOrderTypeName string                `json:"workOrderTypeName,omitempty"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	Status            string                `json:"status"`
	ScheduledDate     *time.Time            `json:"scheduledDate,omitempty"`
	ScheduledStart    *time.Time            `json:"scheduledStart,omitempty"`
	ScheduledEnd      *time.Time            `json:"scheduledEnd,omitempty"`
	StartedAt         *time.Time            `json:"startedAt,omitempty"`
	FinishedAt        *time.Time            `json:"finishedAt,omitempty"`
	Address           string                `json:"address,omitempty"`
	Notes             string                `json:"notes,omitempty"`
	TotalValue        float64               `json:"totalValue"`
	Active            bool                  `json:"active"`
	Items             []WorkOrderItemRecord `json:"items,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

func FromWorkOrder(wo entities.WorkOrder) WorkOrderRecord {
	var items []WorkOrderItemRecord
	if len(wo.Items) > 0 {
		items = make([]WorkOrderItemRecord, 0, len(wo.Items))
		for _, it := range wo.Items {
			items = append(items, WorkOrderItemRecord{
				ID:        it.ID,
				Name:      it.Name,
				ItemType:  it.ItemType,
				Unit:      it.Unit,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Discount:  it.Discount,
				Total:     it.Total,
			})
		}
	}
	return WorkOrderRecord{
		ID:                wo.ID,
		ClientID:          wo.ClientID,
		ClientName:        wo.ClientName,
		QuoteID:           wo.QuoteID,
		WorkOrderTypeID:   wo.WorkOrderTypeID,
		WorkOrderTypeName: wo.WorkOrderTypeName,
		Title:             wo.Title,
		Description:       wo.Description,
		Status:            string(wo.Status),
		ScheduledDate:     wo.ScheduledDate,
		ScheduledStart:    wo.ScheduledStart,
		ScheduledEnd:      wo.ScheduledEnd,
		StartedAt:         wo.StartedAt,
		FinishedAt:        wo.FinishedAt,
		Address:           wo.Address,
		Notes:             wo.Notes,
		TotalValue:        wo.TotalValue,
		Active:            wo.Active,
		Items:             items,
		CreatedAt:         wo.CreatedAt,
		UpdatedAt:         wo.UpdatedAt,
	}
}

func FromWorkOrders(wos []entities.WorkOrder) []WorkOrderRecord {
	out := make([]WorkOrderRecord, 0, len(wos))
	for _, wo := range wos {
		out = append(out, FromWorkOrder(wo))
	}
	return out
}
