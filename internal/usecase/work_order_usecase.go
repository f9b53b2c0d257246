package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/sync"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces"
)

var (
	ErrWorkOrderNotFound     = errors.New("work order not found or does not belong to you")
	ErrClientNotFound        = errors.New("client not found or does not belong to you")
	ErrInvalidWorkOrderID    = errors.New("invalid work order id")
	ErrInvalidWorkOrderData  = errors.New("invalid work order data")
	ErrWorkOrderTerminal     = errors.New("work order is in a terminal status")
	ErrWorkOrderNotDeletable = errors.New("work order cannot be deleted in its current status")
)

// WorkOrderItemInput is a line item handed in by the interactive surface; it
// is snapshotted onto the work order by value.
type WorkOrderItemInput struct {
	Name      string
	ItemType  string
	Unit      string
	Quantity  float64
	UnitPrice float64
	Discount  float64
}

type CreateWorkOrderInput struct {
	ClientID        string
	QuoteID         string
	WorkOrderTypeID string
	Title           string
	Description     string
	ScheduledDate   *time.Time
	ScheduledStart  *time.Time
	ScheduledEnd    *time.Time
	Address         string
	Notes           string
	Items           []WorkOrderItemInput
}

// UpdateWorkOrderInput is sparse: nil fields are left untouched.
type UpdateWorkOrderInput struct {
	ClientID       *string
	Title          *string
	Description    *string
	ScheduledDate  *time.Time
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	Address        *string
	Notes          *string
	Items          *[]WorkOrderItemInput
}

// IWorkOrderUseCase is the interactive (non-sync) CRUD surface. It shares
// the transition table and the ownership rules with the sync engine but runs
// under the interactive role, which additionally allows reopening a DONE
// work order.

type IWorkOrderUseCase interface {
	Create(ctx context.Context, userID string, in CreateWorkOrderInput) (entities.WorkOrder, error)
	GetByID(ctx context.Context, userID, id string) (entities.WorkOrder, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]entities.WorkOrder, error)
	Update(ctx context.Context, userID, id string, in UpdateWorkOrderInput) (entities.WorkOrder, error)
	UpdateStatus(ctx context.Context, userID, id string, target entities.WorkOrderStatus) (entities.WorkOrder, error)
	Delete(ctx context.Context, userID, id string) error
}

type WorkOrderUseCase struct {
	repo      interfaces.IWorkOrderRepository
	clients   interfaces.IClientRepository
	notifier  interfaces.IStatusNotifier
	inventory interfaces.IInventoryService

	inventoryTrigger entities.WorkOrderStatus
}

var _ IWorkOrderUseCase = (*WorkOrderUseCase)(nil)

func NewWorkOrderUseCase(
	repo interfaces.IWorkOrderRepository,
	clients interfaces.IClientRepository,
	notifier interfaces.IStatusNotifier,
	inventory interfaces.IInventoryService,
	inventoryTrigger entities.WorkOrderStatus,
) *WorkOrderUseCase {
	if inventoryTrigger == "" {
		inventoryTrigger = entities.WorkOrderStatusDone
	}
	return &WorkOrderUseCase{
		repo:             repo,
		clients:          clients,
		notifier:         notifier,
		inventory:        inventory,
		inventoryTrigger: inventoryTrigger,
	}
}

func (u *WorkOrderUseCase) Create(ctx context.Context, userID string, in CreateWorkOrderInput) (entities.WorkOrder, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.WorkOrder{}, ErrInvalidUserID
	}
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.Title = strings.TrimSpace(in.Title)
	if in.ClientID == "" || in.Title == "" {
		return entities.WorkOrder{}, ErrInvalidWorkOrderData
	}

	client, err := u.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if client.ID == "" || client.UserID != userID {
		return entities.WorkOrder{}, ErrClientNotFound
	}

	now := time.Now().UTC()
	wo := entities.WorkOrder{
		ID:              uuid.NewString(),
		UserID:          userID,
		ClientID:        client.ID,
		ClientName:      client.Name,
		QuoteID:         strings.TrimSpace(in.QuoteID),
		WorkOrderTypeID: strings.TrimSpace(in.WorkOrderTypeID),
		Title:           in.Title,
		Description:     in.Description,
		Status:          entities.WorkOrderStatusScheduled,
		ScheduledDate:   in.ScheduledDate,
		ScheduledStart:  in.ScheduledStart,
		ScheduledEnd:    in.ScheduledEnd,
		Address:         in.Address,
		Notes:           in.Notes,
		Items:           snapshotItemInputs(in.Items),
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	wo.ComputeItemTotals()

	return u.repo.Create(ctx, wo)
}

func (u *WorkOrderUseCase) GetByID(ctx context.Context, userID, id string) (entities.WorkOrder, error) {
	userID = strings.TrimSpace(userID)
	id = strings.TrimSpace(id)
	if userID == "" {
		return entities.WorkOrder{}, ErrInvalidUserID
	}
	if id == "" {
		return entities.WorkOrder{}, ErrInvalidWorkOrderID
	}

	wo, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if wo.ID == "" {
		return entities.WorkOrder{}, ErrWorkOrderNotFound
	}
	return wo, nil
}

func (u *WorkOrderUseCase) ListByUser(ctx context.Context, userID string, limit int) ([]entities.WorkOrder, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if limit <= 0 {
		limit = DefaultPullLimit
	}
	if limit > MaxPullLimit {
		limit = MaxPullLimit
	}
	return u.repo.ListByUser(ctx, userID, limit)
}

func (u *WorkOrderUseCase) Update(ctx context.Context, userID, id string, in UpdateWorkOrderInput) (entities.WorkOrder, error) {
	wo, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if wo.Status.IsTerminal() {
		return entities.WorkOrder{}, ErrWorkOrderTerminal
	}

	if in.ClientID != nil {
		clientID := strings.TrimSpace(*in.ClientID)
		if clientID == "" {
			return entities.WorkOrder{}, ErrInvalidWorkOrderData
		}
		client, err := u.clients.GetByID(ctx, clientID)
		if err != nil {
			return entities.WorkOrder{}, err
		}
		if client.ID == "" || client.UserID != userID {
			return entities.WorkOrder{}, ErrClientNotFound
		}
		wo.ClientID = client.ID
		wo.ClientName = client.Name
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return entities.WorkOrder{}, ErrInvalidWorkOrderData
		}
		wo.Title = title
	}
	if in.Description != nil {
		wo.Description = *in.Description
	}
	if in.ScheduledDate != nil {
		wo.ScheduledDate = in.ScheduledDate
	}
	if in.ScheduledStart != nil {
		wo.ScheduledStart = in.ScheduledStart
	}
	if in.ScheduledEnd != nil {
		wo.ScheduledEnd = in.ScheduledEnd
	}
	if in.Address != nil {
		wo.Address = *in.Address
	}
	if in.Notes != nil {
		wo.Notes = *in.Notes
	}
	if in.Items != nil {
		wo.Items = snapshotItemInputs(*in.Items)
		wo.ComputeItemTotals()
	}
	wo.UpdatedAt = nextUpdatedAt(wo.UpdatedAt, time.Now().UTC())

	return u.repo.Put(ctx, wo)
}

func (u *WorkOrderUseCase) UpdateStatus(ctx context.Context, userID, id string, target entities.WorkOrderStatus) (entities.WorkOrder, error) {
	wo, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	previous := wo.Status

	now := time.Now().UTC()
	if err := sync.ApplyTransition(sync.RoleInteractive, &wo, target, now); err != nil {
		return entities.WorkOrder{}, err
	}
	wo.UpdatedAt = nextUpdatedAt(wo.UpdatedAt, now)

	updated, err := u.repo.Put(ctx, wo)
	if err != nil {
		return entities.WorkOrder{}, err
	}

	if previous != updated.Status {
		u.fireStatusHooks(ctx, updated, previous)
	}
	return updated, nil
}

func (u *WorkOrderUseCase) Delete(ctx context.Context, userID, id string) error {
	wo, err := u.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if wo.Status == entities.WorkOrderStatusInProgress || wo.Status == entities.WorkOrderStatusDone {
		return ErrWorkOrderNotDeletable
	}
	return u.repo.Delete(ctx, userID, wo.ID)
}

// fireStatusHooks invokes the external collaborators after a committed
// status change. Hook failures are logged and swallowed; they never roll
// back the change.
func (u *WorkOrderUseCase) fireStatusHooks(ctx context.Context, wo entities.WorkOrder, previous entities.WorkOrderStatus) {
	if u.notifier != nil {
		if err := u.notifier.NotifyStatusChange(ctx, wo, previous); err != nil {
			log.Printf("[workorder][hook] status notification failed work_order_id=%s err=%v", wo.ID, err)
		}
	}
	if u.inventory != nil && wo.Status == u.inventoryTrigger {
		if err := u.inventory.DeductForWorkOrder(ctx, wo); err != nil {
			log.Printf("[workorder][hook] inventory deduction failed work_order_id=%s err=%v", wo.ID, err)
		}
	}
}

func snapshotItemInputs(items []WorkOrderItemInput) []entities.WorkOrderItemDetail {
	if len(items) == 0 {
		return nil
	}
	out := make([]entities.WorkOrderItemDetail, 0, len(items))
	for _, it := range items {
		out = append(out, entities.WorkOrderItemDetail{
			ID:        uuid.NewString(),
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
