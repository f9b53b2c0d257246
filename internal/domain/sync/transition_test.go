package sync

import (
	"strings"
	"testing"
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
)

func TestValidateTransition_SyncTable(t *testing.T) {
	all := []entities.WorkOrderStatus{
		entities.WorkOrderStatusScheduled,
		entities.WorkOrderStatusInProgress,
		entities.WorkOrderStatusDone,
		entities.WorkOrderStatusCanceled,
	}
	allowed := map[entities.WorkOrderStatus][]entities.WorkOrderStatus{
		entities.WorkOrderStatusScheduled:  {entities.WorkOrderStatusInProgress, entities.WorkOrderStatusCanceled},
		entities.WorkOrderStatusInProgress: {entities.WorkOrderStatusDone, entities.WorkOrderStatusCanceled},
	}

	for _, from := range all {
		for _, to := range all {
			ok := from == to
			for _, next := range allowed[from] {
				if next == to {
					ok = true
				}
			}
			err := ValidateTransition(RoleSync, from, to)
			if ok && err != nil {
				t.Fatalf("sync %s -> %s should be allowed, got %v", from, to, err)
			}
			if !ok && err == nil {
				t.Fatalf("sync %s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestValidateTransition_ErrorNamesPair(t *testing.T) {
	err := ValidateTransition(RoleSync, entities.WorkOrderStatusScheduled, entities.WorkOrderStatusDone)
	if err == nil {
		t.Fatalf("expected rejection for SCHEDULED -> DONE")
	}
	if !strings.Contains(err.Error(), "SCHEDULED") || !strings.Contains(err.Error(), "DONE") {
		t.Fatalf("error must name the attempted pair, got %q", err.Error())
	}
}

func TestValidateTransition_InteractiveReopen(t *testing.T) {
	if err := ValidateTransition(RoleInteractive, entities.WorkOrderStatusDone, entities.WorkOrderStatusInProgress); err != nil {
		t.Fatalf("interactive reopen must be allowed, got %v", err)
	}
	if err := ValidateTransition(RoleSync, entities.WorkOrderStatusDone, entities.WorkOrderStatusInProgress); err == nil {
		t.Fatalf("sync path must not expose the reopen escape hatch")
	}
}

func TestValidateTransition_UnknownStatus(t *testing.T) {
	if err := ValidateTransition(RoleSync, entities.WorkOrderStatusScheduled, "PAUSED"); err == nil {
		t.Fatalf("expected rejection for unknown status")
	}
}

func TestApplyTransition_TimestampsSetOnce(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	wo := &entities.WorkOrder{Status: entities.WorkOrderStatusScheduled}

	if err := ApplyTransition(RoleSync, wo, entities.WorkOrderStatusInProgress, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wo.StartedAt == nil || !wo.StartedAt.Equal(now) {
		t.Fatalf("expected started_at stamped at %v, got %v", now, wo.StartedAt)
	}

	// Retrying the same transition must not move the stamp.
	later := now.Add(time.Minute)
	if err := ApplyTransition(RoleSync, wo, entities.WorkOrderStatusInProgress, later); err != nil {
		t.Fatalf("retry into current state must be a no-op, got %v", err)
	}
	if !wo.StartedAt.Equal(now) {
		t.Fatalf("started_at moved on retry: %v", wo.StartedAt)
	}

	if err := ApplyTransition(RoleSync, wo, entities.WorkOrderStatusDone, later); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wo.FinishedAt == nil || !wo.FinishedAt.Equal(later) {
		t.Fatalf("expected finished_at stamped at %v, got %v", later, wo.FinishedAt)
	}

	if err := ApplyTransition(RoleSync, wo, entities.WorkOrderStatusScheduled, later); err == nil {
		t.Fatalf("status must remain frozen after rejection")
	}
	if wo.Status != entities.WorkOrderStatusDone {
		t.Fatalf("rejected transition must not change status, got %s", wo.Status)
	}
}
