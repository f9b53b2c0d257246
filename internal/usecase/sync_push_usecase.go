package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/sync"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces"
)

const (
	msgNotOwned       = "work order not found or does not belong to you"
	msgClientNotOwned = "client not found or does not belong to you"
	msgInternal       = "internal error, mutation was not applied; safe to retry"
)

// Mutation is one client-submitted change. Record is kept raw here and
// parsed into the variant each action actually uses, so illegal field
// combinations are unrepresentable past the dispatch point.
type Mutation struct {
	MutationID      string
	Action          entities.MutationAction
	ClientUpdatedAt *time.Time
	Record          json.RawMessage
}

type MutationResult struct {
	MutationID string
	Status     entities.MutationOutcome
	Record     *entities.WorkOrder
	Error      string
}

type PushOutput struct {
	Results    []MutationResult
	ServerTime time.Time
}

// ISyncPushUseCase applies a batch of client mutations.

type ISyncPushUseCase interface {
	Push(ctx context.Context, userID string, mutations []Mutation) (PushOutput, error)
}

type SyncPushUseCase struct {
	workOrders interfaces.IWorkOrderRepository
	clients    interfaces.IClientRepository
	ledger     interfaces.IMutationLedgerRepository
	inventory  interfaces.IInventoryService

	// Status that triggers the inventory deduction collaborator.
	inventoryTrigger entities.WorkOrderStatus
}

var _ ISyncPushUseCase = (*SyncPushUseCase)(nil)

func NewSyncPushUseCase(
	workOrders interfaces.IWorkOrderRepository,
	clients interfaces.IClientRepository,
	ledger interfaces.IMutationLedgerRepository,
	inventory interfaces.IInventoryService,
	inventoryTrigger entities.WorkOrderStatus,
) *SyncPushUseCase {
	if inventoryTrigger == "" {
		inventoryTrigger = entities.WorkOrderStatusDone
	}
	return &SyncPushUseCase{
		workOrders:       workOrders,
		clients:          clients,
		ledger:           ledger,
		inventory:        inventory,
		inventoryTrigger: inventoryTrigger,
	}
}

// Push applies the batch strictly sequentially in input order. One failing
// mutation never aborts or rolls back its siblings; the response always
// carries exactly one result per input mutation, in the same order.
func (u *SyncPushUseCase) Push(ctx context.Context, userID string, mutations []Mutation) (PushOutput, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return PushOutput{}, ErrInvalidUserID
	}

	results := make([]MutationResult, 0, len(mutations))
	for _, m := range mutations {
		results = append(results, u.applyMutation(ctx, userID, m))
	}
	return PushOutput{Results: results, ServerTime: time.Now().UTC()}, nil
}

func (u *SyncPushUseCase) applyMutation(ctx context.Context, userID string, m Mutation) MutationResult {
	mutationID := strings.TrimSpace(m.MutationID)
	if mutationID == "" {
		return MutationResult{Status: entities.MutationOutcomeRejected, Error: "mutationId is required"}
	}

	// Ledger first: a replayed mutation id returns the stored outcome
	// verbatim and performs no further writes.
	if existing, err := u.ledger.Get(ctx, userID, mutationID); err != nil {
		log.Printf("[sync][push] ledger lookup failed user_id=%s mutation_id=%s err=%v", userID, mutationID, err)
		return MutationResult{MutationID: mutationID, Status: entities.MutationOutcomeRejected, Error: msgInternal}
	} else if existing.MutationID != "" {
		return replayResult(existing)
	}

	now := time.Now().UTC()
	outcome := u.dispatch(ctx, userID, m, now)
	outcome.result.MutationID = mutationID

	if outcome.transient {
		// Transient infrastructure failure: reject this mutation only and
		// leave the ledger untouched so an honest retry can still succeed.
		return outcome.result
	}

	entry := entities.ProcessedMutation{
		MutationID:  mutationID,
		UserID:      userID,
		EntityID:    outcome.entityID,
		Action:      m.Action,
		Status:      outcome.result.Status,
		Record:      outcome.result.Record,
		Error:       outcome.result.Error,
		ProcessedAt: now,
	}

	if err := u.ledger.Commit(ctx, entry, outcome.write); err != nil {
		switch {
		case errors.Is(err, interfaces.ErrMutationAlreadyProcessed):
			// A racing retry committed first; its outcome is authoritative.
			stored, getErr := u.ledger.Get(ctx, userID, mutationID)
			if getErr != nil || stored.MutationID == "" {
				log.Printf("[sync][push] ledger re-read after race failed user_id=%s mutation_id=%s err=%v", userID, mutationID, getErr)
				return MutationResult{MutationID: mutationID, Status: entities.MutationOutcomeRejected, Error: msgInternal}
			}
			return replayResult(stored)
		case errors.Is(err, interfaces.ErrWorkOrderIDTaken):
			// Client-supplied id collided with an existing record. Record
			// the rejection so the retry replays it instead of re-running.
			entry.Status = entities.MutationOutcomeRejected
			entry.Record = nil
			entry.Error = "work order id already exists"
			if commitErr := u.ledger.Commit(ctx, entry, nil); commitErr != nil {
				log.Printf("[sync][push] rejection commit failed user_id=%s mutation_id=%s err=%v", userID, mutationID, commitErr)
				return MutationResult{MutationID: mutationID, Status: entities.MutationOutcomeRejected, Error: msgInternal}
			}
			return MutationResult{MutationID: mutationID, Status: entities.MutationOutcomeRejected, Error: entry.Error}
		default:
			log.Printf("[sync][push] commit failed user_id=%s mutation_id=%s action=%s err=%v", userID, mutationID, m.Action, err)
			return MutationResult{MutationID: mutationID, Status: entities.MutationOutcomeRejected, Error: msgInternal}
		}
	}

	if outcome.result.Status == entities.MutationOutcomeApplied && outcome.result.Record != nil &&
		outcome.reachedStatus == u.inventoryTrigger && outcome.reachedStatus != "" {
		u.fireInventoryDeduction(ctx, *outcome.result.Record)
	}

	return outcome.result
}

// mutationOutcome is the value every action handler folds into: the result
// for the response, the data-side write to commit with the ledger entry, and
// bookkeeping for collaborator hooks. No error ever crosses a mutation
// boundary.
type mutationOutcome struct {
	result        MutationResult
	write         *interfaces.WorkOrderWrite
	entityID      string
	reachedStatus entities.WorkOrderStatus
	transient     bool
}

func rejectedOutcome(entityID, msg string, server *entities.WorkOrder) mutationOutcome {
	return mutationOutcome{
		result:   MutationResult{Status: entities.MutationOutcomeRejected, Record: server, Error: msg},
		entityID: entityID,
	}
}

func transientOutcome(action entities.MutationAction, err error) mutationOutcome {
	log.Printf("[sync][push] transient failure action=%s err=%v", action, err)
	return mutationOutcome{
		result:    MutationResult{Status: entities.MutationOutcomeRejected, Error: msgInternal},
		transient: true,
	}
}

func (u *SyncPushUseCase) dispatch(ctx context.Context, userID string, m Mutation, now time.Time) mutationOutcome {
	switch m.Action {
	case entities.MutationActionCreate:
		return u.applyCreate(ctx, userID, m, now)
	case entities.MutationActionUpdate:
		return u.applyUpdate(ctx, userID, m, now)
	case entities.MutationActionUpdateStatus:
		return u.applyUpdateStatus(ctx, userID, m, now)
	case entities.MutationActionDelete:
		return u.applyDelete(ctx, userID, m)
	default:
		return rejectedOutcome("", fmt.Sprintf("unknown action %q", m.Action), nil)
	}
}

// itemPayload is the wire shape of a line item snapshot.
type itemPayload struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ItemType  string  `json:"itemType"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Discount  float64 `json:"discount"`
}

type createPayload struct {
	ID              string        `json:"id"`
	ClientID        string        `json:"clientId"`
	QuoteID         string        `json:"quoteId"`
	WorkOrderTypeID string        `json:"workOrderTypeId"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	ScheduledDate   *time.Time    `json:"scheduledDate"`
	ScheduledStart  *time.Time    `json:"scheduledStart"`
	ScheduledEnd    *time.Time    `json:"scheduledEnd"`
	Address         string        `json:"address"`
	Notes           string        `json:"notes"`
	Items           []itemPayload `json:"items"`
}

// updatePayload is sparse on purpose: only fields present in the payload are
// applied, everything else is left untouched.
type updatePayload struct {
	ID             string         `json:"id"`
	ClientID       *string        `json:"clientId"`
	Title          *string        `json:"title"`
	Description    *string        `json:"description"`
	ScheduledDate  *time.Time     `json:"scheduledDate"`
	ScheduledStart *time.Time     `json:"scheduledStart"`
	ScheduledEnd   *time.Time     `json:"scheduledEnd"`
	Address        *string        `json:"address"`
	Notes          *string        `json:"notes"`
	Items          *[]itemPayload `json:"items"`
}

type updateStatusPayload struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type deletePayload struct {
	ID string `json:"id"`
}

func (u *SyncPushUseCase) applyCreate(ctx context.Context, userID string, m Mutation, now time.Time) mutationOutcome {
	var p createPayload
	if err := json.Unmarshal(m.Record, &p); err != nil {
		return rejectedOutcome("", "malformed create record", nil)
	}
	p.ClientID = strings.TrimSpace(p.ClientID)
	p.Title = strings.TrimSpace(p.Title)
	if p.ClientID == "" {
		return rejectedOutcome("", "clientId is required", nil)
	}
	if p.Title == "" {
		return rejectedOutcome("", "title is required", nil)
	}

	client, err := u.clients.GetByID(ctx, p.ClientID)
	if err != nil {
		return transientOutcome(m.Action, err)
	}
	if client.ID == "" || client.UserID != userID {
		// Indistinguishable from a true miss; never leak other tenants'
		// records.
		return rejectedOutcome("", msgClientNotOwned, nil)
	}

	id := strings.TrimSpace(p.ID)
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return rejectedOutcome("", "id must be a valid UUID", nil)
	}

	wo := entities.WorkOrder{
		ID:              id,
		UserID:          userID,
		ClientID:        client.ID,
		ClientName:      client.Name,
		QuoteID:         strings.TrimSpace(p.QuoteID),
		WorkOrderTypeID: strings.TrimSpace(p.WorkOrderTypeID),
		Title:           p.Title,
		Description:     p.Description,
		Status:          entities.WorkOrderStatusScheduled,
		ScheduledDate:   p.ScheduledDate,
		ScheduledStart:  p.ScheduledStart,
		ScheduledEnd:    p.ScheduledEnd,
		Address:         p.Address,
		Notes:           p.Notes,
		Items:           snapshotItems(p.Items),
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	wo.ComputeItemTotals()

	return mutationOutcome{
		result:        MutationResult{Status: entities.MutationOutcomeApplied, Record: &wo},
		write:         &interfaces.WorkOrderWrite{Put: &wo, CreateOnly: true},
		entityID:      wo.ID,
		reachedStatus: wo.Status,
	}
}

func (u *SyncPushUseCase) applyUpdate(ctx context.Context, userID string, m Mutation, now time.Time) mutationOutcome {
	var p updatePayload
	if err := json.Unmarshal(m.Record, &p); err != nil {
		return rejectedOutcome("", "malformed update record", nil)
	}
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return rejectedOutcome("", "id is required", nil)
	}
	if m.ClientUpdatedAt == nil {
		return rejectedOutcome(p.ID, "clientUpdatedAt is required for update", nil)
	}

	wo, err := u.workOrders.GetByID(ctx, userID, p.ID)
	if err != nil {
		return transientOutcome(m.Action, err)
	}
	if wo.ID == "" {
		return rejectedOutcome(p.ID, msgNotOwned, nil)
	}
	if wo.Status.IsTerminal() {
		return rejectedOutcome(p.ID, fmt.Sprintf("work order in status %s can no longer be updated", wo.Status), &wo)
	}

	// Last-write-wins: a stale client edit is rejected and handed the
	// current server record so the client can re-merge.
	if wo.UpdatedAt.After(*m.ClientUpdatedAt) {
		return rejectedOutcome(p.ID, "server has newer version", &wo)
	}

	if p.ClientID != nil {
		clientID := strings.TrimSpace(*p.ClientID)
		if clientID == "" {
			return rejectedOutcome(p.ID, "clientId cannot be empty", &wo)
		}
		client, err := u.clients.GetByID(ctx, clientID)
		if err != nil {
			return transientOutcome(m.Action, err)
		}
		if client.ID == "" || client.UserID != userID {
			return rejectedOutcome(p.ID, msgClientNotOwned, &wo)
		}
		wo.ClientID = client.ID
		wo.ClientName = client.Name
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return rejectedOutcome(p.ID, "title cannot be empty", &wo)
		}
		wo.Title = title
	}
	if p.Description != nil {
		wo.Description = *p.Description
	}
	if p.ScheduledDate != nil {
		wo.ScheduledDate = p.ScheduledDate
	}
	if p.ScheduledStart != nil {
		wo.ScheduledStart = p.ScheduledStart
	}
	if p.ScheduledEnd != nil {
		wo.ScheduledEnd = p.ScheduledEnd
	}
	if p.Address != nil {
		wo.Address = *p.Address
	}
	if p.Notes != nil {
		wo.Notes = *p.Notes
	}
	if p.Items != nil {
		wo.Items = snapshotItems(*p.Items)
		wo.ComputeItemTotals()
	}
	wo.UpdatedAt = nextUpdatedAt(wo.UpdatedAt, now)

	return mutationOutcome{
		result:   MutationResult{Status: entities.MutationOutcomeApplied, Record: &wo},
		write:    &interfaces.WorkOrderWrite{Put: &wo},
		entityID: wo.ID,
	}
}

func (u *SyncPushUseCase) applyUpdateStatus(ctx context.Context, userID string, m Mutation, now time.Time) mutationOutcome {
	var p updateStatusPayload
	if err := json.Unmarshal(m.Record, &p); err != nil {
		return rejectedOutcome("", "malformed update_status record", nil)
	}
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return rejectedOutcome("", "id is required", nil)
	}
	target := entities.WorkOrderStatus(strings.TrimSpace(p.Status))
	if target == "" {
		return rejectedOutcome(p.ID, "status is required", nil)
	}

	wo, err := u.workOrders.GetByID(ctx, userID, p.ID)
	if err != nil {
		return transientOutcome(m.Action, err)
	}
	if wo.ID == "" {
		return rejectedOutcome(p.ID, msgNotOwned, nil)
	}

	if err := sync.ApplyTransition(sync.RoleSync, &wo, target, now); err != nil {
		return rejectedOutcome(p.ID, err.Error(), &wo)
	}
	wo.UpdatedAt = nextUpdatedAt(wo.UpdatedAt, now)

	return mutationOutcome{
		result:        MutationResult{Status: entities.MutationOutcomeApplied, Record: &wo},
		write:         &interfaces.WorkOrderWrite{Put: &wo},
		entityID:      wo.ID,
		reachedStatus: wo.Status,
	}
}

func (u *SyncPushUseCase) applyDelete(ctx context.Context, userID string, m Mutation) mutationOutcome {
	var p deletePayload
	if err := json.Unmarshal(m.Record, &p); err != nil {
		return rejectedOutcome("", "malformed delete record", nil)
	}
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return rejectedOutcome("", "id is required", nil)
	}

	wo, err := u.workOrders.GetByID(ctx, userID, p.ID)
	if err != nil {
		return transientOutcome(m.Action, err)
	}
	if wo.ID == "" {
		return rejectedOutcome(p.ID, msgNotOwned, nil)
	}
	if wo.Status == entities.WorkOrderStatusInProgress || wo.Status == entities.WorkOrderStatusDone {
		return rejectedOutcome(p.ID, fmt.Sprintf("work order in status %s cannot be deleted; cancel it first", wo.Status), &wo)
	}

	return mutationOutcome{
		result:   MutationResult{Status: entities.MutationOutcomeApplied},
		write:    &interfaces.WorkOrderWrite{DeleteID: wo.ID},
		entityID: wo.ID,
	}
}

func (u *SyncPushUseCase) fireInventoryDeduction(ctx context.Context, wo entities.WorkOrder) {
	if u.inventory == nil {
		return
	}
	// Fire-and-forget: a collaborator failure is logged and must never roll
	// back or fail the already-committed status change.
	if err := u.inventory.DeductForWorkOrder(ctx, wo); err != nil {
		log.Printf("[sync][push] inventory deduction failed work_order_id=%s err=%v", wo.ID, err)
	}
}

func replayResult(entry entities.ProcessedMutation) MutationResult {
	return MutationResult{
		MutationID: entry.MutationID,
		Status:     entry.Status,
		Record:     entry.Record,
		Error:      entry.Error,
	}
}

func snapshotItems(items []itemPayload) []entities.WorkOrderItemDetail {
	if len(items) == 0 {
		return nil
	}
	out := make([]entities.WorkOrderItemDetail, 0, len(items))
	for _, it := range items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, entities.WorkOrderItemDetail{
			ID:        id,
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

// nextUpdatedAt keeps UpdatedAt strictly increasing even when the wall clock
// has not moved past the previous write.
func nextUpdatedAt(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}
