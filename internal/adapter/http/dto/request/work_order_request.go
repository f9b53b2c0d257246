package request

import (
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase"
)

type WorkOrderItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	ItemType  string  `json:"itemType"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unitPrice"`
	Discount  float64 `json:"discount"`
}

type CreateWorkOrderRequest struct {
	ClientID        string                 `json:"clientId" binding:"required"`
	QuoteID         string                 `json:"quoteId"`
	WorkOrderTypeID string                 `json:"workOrderTypeId"`
	Title           string                 `json:"title" binding:"required"`
	Description     string                 `json:"description"`
	ScheduledDate   *time.Time             `json:"scheduledDate"`
	ScheduledStart  *time.Time             `json:"scheduledStart"`
	ScheduledEnd    *time.Time             `json:"scheduledEnd"`
	Address         string                 `json:"address"`
	Notes           string                 `json:"notes"`
	Items           []WorkOrderItemRequest `json:"items"`
}

func (r CreateWorkOrderRequest) ToInput() usecase.CreateWorkOrderInput {
	return usecase.CreateWorkOrderInput{
		ClientID:        r.ClientID,
		QuoteID:         r.QuoteID,
		WorkOrderTypeID: r.WorkOrderTypeID,
		Title:           r.Title,
		Description:     r.Description,
		ScheduledDate:   r.ScheduledDate,
		ScheduledStart:  r.ScheduledStart,
		ScheduledEnd:    r.ScheduledEnd,
		Address:         r.Address,
		Notes:           r.Notes,
		Items:           toItemInputs(r.Items),
	}
}

// UpdateWorkOrderRequest is a sparse patch: nil means "leave unchanged",
// so scalar fields are pointers even where the create request is not.
type UpdateWorkOrderRequest struct {
	ClientID       *string                 `json:"clientId"`
	Title          *string                 `json:"title"`
	Description    *string                 `json:"description"`
	ScheduledDate  *time.Time              `json:"scheduledDate"`
	ScheduledStart *time.Time              `json:"scheduledStart"`
	ScheduledEnd   *time.Time              `json:"scheduledEnd"`
	Address        *string                 `json:"address"`
	Notes          *string                 `json:"notes"`
	Items          *[]WorkOrderItemRequest `json:"items"`
}

func (r UpdateWorkOrderRequest) ToInput() usecase.UpdateWorkOrderInput {
	in := usecase.UpdateWorkOrderInput{
		ClientID:       r.ClientID,
		Title:          r.Title,
		Description:    r.Description,
		ScheduledDate:  r.ScheduledDate,
		ScheduledStart: r.ScheduledStart,
		ScheduledEnd:   r.ScheduledEnd,
		Address:        r.Address,
		Notes:          r.Notes,
	}
	if r.Items != nil {
		items := toItemInputs(*r.Items)
		in.Items = &items
	}
	return in
}

type UpdateWorkOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func toItemInputs(items []WorkOrderItemRequest) []usecase.WorkOrderItemInput {
	out := make([]usecase.WorkOrderItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, usecase.WorkOrderItemInput{
			Name:      it.Name,
			ItemType:  it.ItemType,
			Unit:      it.Unit,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
		})
	}
	return out
}
