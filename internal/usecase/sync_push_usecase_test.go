package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces"
	mock_interfaces "github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type pushMocks struct {
	workOrders *mock_interfaces.MockIWorkOrderRepository
	clients    *mock_interfaces.MockIClientRepository
	ledger     *mock_interfaces.MockIMutationLedgerRepository
	inventory  *mock_interfaces.MockIInventoryService
}

func newPushUseCase(t *testing.T) (*SyncPushUseCase, pushMocks, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	m := pushMocks{
		workOrders: mock_interfaces.NewMockIWorkOrderRepository(ctrl),
		clients:    mock_interfaces.NewMockIClientRepository(ctrl),
		ledger:     mock_interfaces.NewMockIMutationLedgerRepository(ctrl),
		inventory:  mock_interfaces.NewMockIInventoryService(ctrl),
	}
	uc := NewSyncPushUseCase(m.workOrders, m.clients, m.ledger, m.inventory, entities.WorkOrderStatusDone)
	return uc, m, ctrl
}

func rawRecord(t *testing.T, v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	return b
}

func TestSyncPushUseCase_IdempotentReplay(t *testing.T) {
	uc, m, ctrl := newPushUseCase(t)
	defer ctrl.Finish()

	stored := entities.ProcessedMutation{
		MutationID: "wo-1:update:3",
		UserID:     "tech-1",
		Action:     entities.MutationActionUpdate,
		Status:     entities.MutationOutcomeApplied,
		Record:     &entities.WorkOrder{ID: "wo-1", Title: "as applied the first time"},
	}
	// Replay performs no further writes, even with a different payload.
	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "wo-1:update:3").Return(stored, nil).Times(2)

	first, err := uc.Push(context.Background(), "tech-1", []Mutation{{
		MutationID: "wo-1:update:3",
		Action:     entities.MutationActionUpdate,
		Record:     rawRecord(t, map[string]any{"id": "wo-1", "title": "attempt one"}),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Push(context.Background(), "tech-1", []Mutation{{
		MutationID: "wo-1:update:3",
		Action:     entities.MutationActionUpdate,
		Record:     rawRecord(t, map[string]any{"id": "wo-1", "title": "different payload"}),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := json.Marshal(first.Results[0])
	b, _ := json.Marshal(second.Results[0])
	if string(a) != string(b) {
		t.Fatalf("replay outcomes differ:\n%s\n%s", a, b)
	}
	if first.Results[0].Record.Title != "as applied the first time" {
		t.Fatalf("replay must return the stored record verbatim")
	}
}

func TestSyncPushUseCase_CreateAppliesAndLedgers(t *testing.T) {
	uc, m, ctrl := newPushUseCase(t)
	defer ctrl.Finish()

	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
	m.clients.EXPECT().GetByID(gomock.Any(), "cl-1").Return(entities.Client{ID: "cl-1", UserID: "tech-1", Name: "Acme Facilities"}, nil)
	m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry entities.ProcessedMutation, write *interfaces.WorkOrderWrite) error {
			if entry.Status != entities.MutationOutcomeApplied || entry.Action != entities.MutationActionCreate {
				t.Fatalf("unexpected ledger entry: %+v", entry)
			}
			if write == nil || write.Put == nil || !write.CreateOnly {
				t.Fatalf("create must commit a guarded put, got %+v", write)
			}
			wo := write.Put
			if wo.Status != entities.WorkOrderStatusScheduled || wo.UserID != "tech-1" || wo.ClientName != "Acme Facilities" {
				t.Fatalf("unexpected work order: %+v", wo)
			}
			if wo.TotalValue != 2*50.0-10.0 {
				t.Fatalf("item totals not computed: %v", wo.TotalValue)
			}
			return nil
		},
	)

	out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
		MutationID: "m-1",
		Action:     entities.MutationActionCreate,
		Record: rawRecord(t, map[string]any{
			"clientId": "cl-1",
			"title":    "Replace compressor",
			"items": []map[string]any{
				{"name": "Compressor", "quantity": 2, "unitPrice": 50.0, "discount": 10.0},
			},
		}),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := out.Results[0]
	if res.Status != entities.MutationOutcomeApplied || res.Record == nil {
		t.Fatalf("expected applied result with record, got %+v", res)
	}
}

func TestSyncPushUseCase_CreateRejectsForeignClient(t *testing.T) {
	uc, m, ctrl := newPushUseCase(t)
	defer ctrl.Finish()

	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
	// The client exists but belongs to another technician.
	m.clients.EXPECT().GetByID(gomock.Any(), "cl-9").Return(entities.Client{ID: "cl-9", UserID: "tech-2"}, nil)
	m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Nil()).DoAndReturn(
		func(_ context.Context, entry entities.ProcessedMutation, _ *interfaces.WorkOrderWrite) error {
			if entry.Status != entities.MutationOutcomeRejected {
				t.Fatalf("rejection must still be ledgered, got %+v", entry)
			}
			return nil
		},
	)

	out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
		MutationID: "m-1",
		Action:     entities.MutationActionCreate,
		Record:     rawRecord(t, map[string]any{"clientId": "cl-9", "title": "x"}),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := out.Results[0]
	if res.Status != entities.MutationOutcomeRejected {
		t.Fatalf("expected rejection, got %+v", res)
	}
	if !strings.Contains(res.Error, "not found or does not belong to you") {
		t.Fatalf("ownership failure must be indistinguishable from not-found, got %q", res.Error)
	}
}

func TestSyncPushUseCase_CreateValidation(t *testing.T) {
	cases := []struct {
		name    string
		record  map[string]any
		wantErr string
	}{
		{name: "missing client", record: map[string]any{"title": "x"}, wantErr: "clientId is required"},
		{name: "missing title", record: map[string]any{"clientId": "cl-1"}, wantErr: "title is required"},
		{name: "bad uuid", record: map[string]any{"clientId": "cl-1", "title": "x", "id": "not-a-uuid"}, wantErr: "valid UUID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m, ctrl := newPushUseCase(t)
			defer ctrl.Finish()

			m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
			if tc.name == "bad uuid" {
				m.clients.EXPECT().GetByID(gomock.Any(), "cl-1").Return(entities.Client{ID: "cl-1", UserID: "tech-1"}, nil)
			}
			m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil)

			out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
				MutationID: "m-1",
				Action:     entities.MutationActionCreate,
				Record:     rawRecord(t, tc.record),
			}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			res := out.Results[0]
			if res.Status != entities.MutationOutcomeRejected || !strings.Contains(res.Error, tc.wantErr) {
				t.Fatalf("expected rejection %q, got %+v", tc.wantErr, res)
			}
		})
	}
}

func TestSyncPushUseCase_UpdateLastWriteWins(t *testing.T) {
	uc, m, ctrl := newPushUseCase(t)
	defer ctrl.Finish()

	serverUpdated := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	server := entities.WorkOrder{
		ID:        "wo-1",
		UserID:    "tech-1",
		Title:     "server truth",
		Status:    entities.WorkOrderStatusScheduled,
		UpdatedAt: serverUpdated,
	}
	stale := serverUpdated.Add(-time.Minute)

	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
	m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-1").Return(server, nil)
	m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil)

	out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
		MutationID:      "m-1",
		Action:          entities.MutationActionUpdate,
		ClientUpdatedAt: &stale,
		Record:          rawRecord(t, map[string]any{"id": "wo-1", "title": "stale edit"}),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := out.Results[0]
	if res.Status != entities.MutationOutcomeRejected || !strings.Contains(res.Error, "server has newer version") {
		t.Fatalf("expected LWW rejection, got %+v", res)
	}
	if res.Record == nil || res.Record.Title != "server truth" {
		t.Fatalf("rejection must attach the current server record for re-merge, got %+v", res.Record)
	}
}

func TestSyncPushUseCase_UpdateIsSparse(t *testing.T) {
	uc, m, ctrl := newPushUseCase(t)
	defer ctrl.Finish()

	serverUpdated := time.Now().UTC().Add(-time.Hour)
	server := entities.WorkOrder{
		ID:          "wo-1",
		UserID:      "tech-1",
		Title:       "old title",
		Description: "keep me",
		Notes:       "keep me too",
		Status:      entities.WorkOrderStatusScheduled,
		UpdatedAt:   serverUpdated,
	}
	clientTS := time.Now().UTC()

	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
	m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-1").Return(server, nil)
	m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ entities.ProcessedMutation, write *interfaces.WorkOrderWrite) error {
			wo := write.Put
			if wo.Title != "new title" {
				t.Fatalf("title not applied: %q", wo.Title)
			}
			if wo.Description != "keep me" || wo.Notes != "keep me too" {
				t.Fatalf("absent fields must be left untouched: %+v", wo)
			}
			if !wo.UpdatedAt.After(serverUpdated) {
				t.Fatalf("updatedAt must strictly increase")
			}
			return nil
		},
	)

	out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
		MutationID:      "m-1",
		Action:          entities.MutationActionUpdate,
		ClientUpdatedAt: &clientTS,
		Record:          rawRecord(t, map[string]any{"id": "wo-1", "title": "new title"}),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Results[0].Status != entities.MutationOutcomeApplied {
		t.Fatalf("expected applied, got %+v", out.Results[0])
	}
}

func TestSyncPushUseCase_TerminalImmutability(t *testing.T) {
	for _, status := range []entities.WorkOrderStatus{entities.WorkOrderStatusDone, entities.WorkOrderStatusCanceled} {
		t.Run("update against "+string(status), func(t *testing.T) {
			uc, m, ctrl := newPushUseCase(t)
			defer ctrl.Finish()

			clientTS := time.Now().UTC()
			m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
			m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-1").Return(entities.WorkOrder{
				ID: "wo-1", UserID: "tech-1", Status: status, UpdatedAt: clientTS.Add(-time.Hour),
			}, nil)
			m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil)

			out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
				MutationID:      "m-1",
				Action:          entities.MutationActionUpdate,
				ClientUpdatedAt: &clientTS,
				Record:          rawRecord(t, map[string]any{"id": "wo-1", "title": "x"}),
			}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Results[0].Status != entities.MutationOutcomeRejected {
				t.Fatalf("terminal work order must be immutable, got %+v", out.Results[0])
			}
		})
	}

	t.Run("delete against DONE", func(t *testing.T) {
		uc, m, ctrl := newPushUseCase(t)
		defer ctrl.Finish()

		m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
		m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-1").Return(entities.WorkOrder{
			ID: "wo-1", UserID: "tech-1", Status: entities.WorkOrderStatusDone,
		}, nil)
		m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil)

		out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
			MutationID: "m-1",
			Action:     entities.MutationActionDelete,
			Record:     rawRecord(t, map[string]any{"id": "wo-1"}),
		}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Results[0].Status != entities.MutationOutcomeRejected {
			t.Fatalf("expected rejection, got %+v", out.Results[0])
		}
	})
}

func TestSyncPushUseCase_UpdateStatusTransitions(t *testing.T) {
	t.Run("skipping IN_PROGRESS is rejected", func(t *testing.T) {
		uc, m, ctrl := newPushUseCase(t)
		defer ctrl.Finish()

		m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
		m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-1").Return(entities.WorkOrder{
			ID: "wo-1", UserID: "tech-1", Status: entities.WorkOrderStatusScheduled,
		}, nil)
		m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil)

		out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
			MutationID: "m-1",
			Action:     entities.MutationActionUpdateStatus,
			Record:     rawRecord(t, map[string]any{"id": "wo-1", "status": "DONE"}),
		}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		res := out.Results[0]
		if res.Status != entities.MutationOutcomeRejected || !strings.Contains(res.Error, "invalid status transition from SCHEDULED to DONE") {
			t.Fatalf("expected explicit invalid-transition rejection, got %+v", res)
		}
	})

	t.Run("IN_PROGRESS stamps execution start", func(t *testing.T) {
		uc, m, ctrl := newPushUseCase(t)
		defer ctrl.Finish()

		m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
		m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-1").Return(entities.WorkOrder{
			ID: "wo-1", UserID: "tech-1", Status: entities.WorkOrderStatusScheduled, UpdatedAt: time.Now().UTC().Add(-time.Hour),
		}, nil)
		m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.ProcessedMutation, write *interfaces.WorkOrderWrite) error {
				if write.Put.Status != entities.WorkOrderStatusInProgress || write.Put.StartedAt == nil {
					t.Fatalf("expected IN_PROGRESS with started_at, got %+v", write.Put)
				}
				return nil
			},
		)

		out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
			MutationID: "m-1",
			Action:     entities.MutationActionUpdateStatus,
			Record:     rawRecord(t, map[string]any{"id": "wo-1", "status": "IN_PROGRESS"}),
		}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Results[0].Status != entities.MutationOutcomeApplied {
			t.Fatalf("expected applied, got %+v", out.Results[0])
		}
	})

	t.Run("DONE fires inventory deduction", func(t *testing.T) {
		uc, m, ctrl := newPushUseCase(t)
		defer ctrl.Finish()

		m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
		m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-1").Return(entities.WorkOrder{
			ID: "wo-1", UserID: "tech-1", Status: entities.WorkOrderStatusInProgress, UpdatedAt: time.Now().UTC().Add(-time.Hour),
		}, nil)
		m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		// The hook error is swallowed; the applied mutation stands.
		m.inventory.EXPECT().DeductForWorkOrder(gomock.Any(), gomock.Any()).Return(errors.New("inventory service down"))

		out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
			MutationID: "m-1",
			Action:     entities.MutationActionUpdateStatus,
			Record:     rawRecord(t, map[string]any{"id": "wo-1", "status": "DONE"}),
		}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Results[0].Status != entities.MutationOutcomeApplied {
			t.Fatalf("collaborator failure must not fail the mutation, got %+v", out.Results[0])
		}
	})
}

func TestSyncPushUseCase_DeleteScheduled(t *testing.T) {
	uc, m, ctrl := newPushUseCase(t)
	defer ctrl.Finish()

	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
	m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-1").Return(entities.WorkOrder{
		ID: "wo-1", UserID: "tech-1", Status: entities.WorkOrderStatusScheduled,
	}, nil)
	m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ entities.ProcessedMutation, write *interfaces.WorkOrderWrite) error {
			if write == nil || write.DeleteID != "wo-1" || write.Put != nil {
				t.Fatalf("expected delete write, got %+v", write)
			}
			return nil
		},
	)

	out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
		MutationID: "m-1",
		Action:     entities.MutationActionDelete,
		Record:     rawRecord(t, map[string]any{"id": "wo-1"}),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Results[0].Status != entities.MutationOutcomeApplied {
		t.Fatalf("expected applied, got %+v", out.Results[0])
	}
}

func TestSyncPushUseCase_UnknownAction(t *testing.T) {
	uc, m, ctrl := newPushUseCase(t)
	defer ctrl.Finish()

	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
	m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil)

	out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
		MutationID: "m-1",
		Action:     "upsert",
		Record:     rawRecord(t, map[string]any{"id": "wo-1"}),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := out.Results[0]
	if res.Status != entities.MutationOutcomeRejected || !strings.Contains(res.Error, `unknown action "upsert"`) {
		t.Fatalf("expected unknown-action rejection, got %+v", res)
	}
}

func TestSyncPushUseCase_FailureIsolationAndOrdering(t *testing.T) {
	uc, m, ctrl := newPushUseCase(t)
	defer ctrl.Finish()

	clientTS := time.Now().UTC()

	// First mutation hits a transient store failure; it must not be
	// ledgered, and the second mutation must still run.
	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
	m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-1").Return(entities.WorkOrder{}, errors.New("dynamodb unavailable"))

	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-2").Return(entities.ProcessedMutation{}, nil)
	m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-2").Return(entities.WorkOrder{
		ID: "wo-2", UserID: "tech-1", Status: entities.WorkOrderStatusScheduled, UpdatedAt: clientTS.Add(-time.Hour),
	}, nil)
	m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	out, err := uc.Push(context.Background(), "tech-1", []Mutation{
		{
			MutationID:      "m-1",
			Action:          entities.MutationActionUpdate,
			ClientUpdatedAt: &clientTS,
			Record:          rawRecord(t, map[string]any{"id": "wo-1", "title": "a"}),
		},
		{
			MutationID:      "m-2",
			Action:          entities.MutationActionUpdate,
			ClientUpdatedAt: &clientTS,
			Record:          rawRecord(t, map[string]any{"id": "wo-2", "title": "b"}),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Results) != 2 {
		t.Fatalf("expected exactly one result per mutation, got %d", len(out.Results))
	}
	if out.Results[0].MutationID != "m-1" || out.Results[1].MutationID != "m-2" {
		t.Fatalf("results out of order: %+v", out.Results)
	}
	if out.Results[0].Status != entities.MutationOutcomeRejected {
		t.Fatalf("transient failure must surface as rejection, got %+v", out.Results[0])
	}
	if out.Results[1].Status != entities.MutationOutcomeApplied {
		t.Fatalf("sibling mutation must not be affected, got %+v", out.Results[1])
	}
}

func TestSyncPushUseCase_CommitRaceReplaysStoredOutcome(t *testing.T) {
	uc, m, ctrl := newPushUseCase(t)
	defer ctrl.Finish()

	stored := entities.ProcessedMutation{
		MutationID: "m-1",
		UserID:     "tech-1",
		Status:     entities.MutationOutcomeApplied,
		Record:     &entities.WorkOrder{ID: "wo-1"},
	}
	clientTS := time.Now().UTC()

	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(entities.ProcessedMutation{}, nil)
	m.workOrders.EXPECT().GetByID(gomock.Any(), "tech-1", "wo-1").Return(entities.WorkOrder{
		ID: "wo-1", UserID: "tech-1", Status: entities.WorkOrderStatusScheduled, UpdatedAt: clientTS.Add(-time.Hour),
	}, nil)
	// A concurrent retry with the same mutation id committed first.
	m.ledger.EXPECT().Commit(gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.ErrMutationAlreadyProcessed)
	m.ledger.EXPECT().Get(gomock.Any(), "tech-1", "m-1").Return(stored, nil)

	out, err := uc.Push(context.Background(), "tech-1", []Mutation{{
		MutationID:      "m-1",
		Action:          entities.MutationActionUpdate,
		ClientUpdatedAt: &clientTS,
		Record:          rawRecord(t, map[string]any{"id": "wo-1", "title": "x"}),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := out.Results[0]
	if res.Status != entities.MutationOutcomeApplied || res.Record == nil || res.Record.ID != "wo-1" {
		t.Fatalf("expected the winner's stored outcome, got %+v", res)
	}
}
