package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/sync"
	mock_interfaces "github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestSyncPullUseCase_Validation(t *testing.T) {
	t.Run("invalid user id", func(t *testing.T) {
		uc := NewSyncPullUseCase(nil)
		_, err := uc.Pull(context.Background(), "   ", PullInput{})
		if !errors.Is(err, ErrInvalidUserID) {
			t.Fatalf("expected ErrInvalidUserID, got %v", err)
		}
	})

	t.Run("invalid scope", func(t *testing.T) {
		uc := NewSyncPullUseCase(nil)
		_, err := uc.Pull(context.Background(), "tech-1", PullInput{Scope: "everything"})
		if !errors.Is(err, ErrInvalidSyncScope) {
			t.Fatalf("expected ErrInvalidSyncScope, got %v", err)
		}
	})
}

func TestSyncPullUseCase_LimitDefaultsAndCap(t *testing.T) {
	cases := []struct {
		name      string
		limit     int
		wantFetch int
	}{
		{name: "zero uses default", limit: 0, wantFetch: DefaultPullLimit + 1},
		{name: "negative uses default", limit: -3, wantFetch: DefaultPullLimit + 1},
		{name: "over cap is clamped", limit: 9999, wantFetch: MaxPullLimit + 1},
		{name: "explicit kept", limit: 25, wantFetch: 26},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
			uc := NewSyncPullUseCase(repo)

			repo.EXPECT().QueryChangedAfter(gomock.Any(), "tech-1", "", gomock.Any(), tc.wantFetch).Return(nil, nil)
			repo.EXPECT().CountByUser(gomock.Any(), "tech-1").Return(0, nil)

			out, err := uc.Pull(context.Background(), "tech-1", PullInput{Limit: tc.limit, Scope: sync.ScopeAll})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.HasMore || out.NextCursor != "" {
				t.Fatalf("empty page must not advertise more data")
			}
			if out.ServerTime.IsZero() {
				t.Fatalf("expected serverTime to be set")
			}
		})
	}
}

func TestSyncPullUseCase_MalformedCursorDegradesToStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
	uc := NewSyncPullUseCase(repo)

	// The bound must fall back to "start from beginning", not error out.
	repo.EXPECT().QueryChangedAfter(gomock.Any(), "tech-1", "", gomock.Any(), DefaultPullLimit+1).Return(nil, nil)
	repo.EXPECT().CountByUser(gomock.Any(), "tech-1").Return(0, nil)

	_, err := uc.Pull(context.Background(), "tech-1", PullInput{Scope: sync.ScopeAll, Cursor: "!!corrupted!!"})
	if err != nil {
		t.Fatalf("malformed cursor must not fail the pull, got %v", err)
	}
}

func TestSyncPullUseCase_CursorAndSinceCompose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
	uc := NewSyncPullUseCase(repo)

	since := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	cursorTS := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	cursor := sync.EncodeCursor(cursorTS, "wo-7")

	// The cursor position is later than the since bound, so it wins.
	repo.EXPECT().QueryChangedAfter(gomock.Any(), "tech-1", sync.SortKey(cursorTS, "wo-7"), gomock.Any(), DefaultPullLimit+1).Return(nil, nil)
	repo.EXPECT().CountByUser(gomock.Any(), "tech-1").Return(0, nil)

	_, err := uc.Pull(context.Background(), "tech-1", PullInput{Scope: sync.ScopeAll, Since: &since, Cursor: cursor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSyncPullUseCase_CursorWalkIsExhaustiveAndOrdered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
	uc := NewSyncPullUseCase(repo)

	base := time.Now().UTC().Add(-time.Hour)
	dataset := make([]entities.WorkOrder, 5)
	for i := range dataset {
		dataset[i] = entities.WorkOrder{
			ID:            []string{"a", "b", "c", "d", "e"}[i],
			UserID:        "tech-1",
			ScheduledDate: tsPtrU(time.Now().UTC().Add(24 * time.Hour)),
			UpdatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
	}

	repo.EXPECT().QueryChangedAfter(gomock.Any(), "tech-1", gomock.Any(), gomock.Any(), 3).DoAndReturn(
		func(_ context.Context, _ string, after string, f sync.Filter, limit int) ([]entities.WorkOrder, error) {
			var out []entities.WorkOrder
			for i := range dataset {
				if sync.SortKey(dataset[i].UpdatedAt, dataset[i].ID) <= after {
					continue
				}
				if !f.Matches(&dataset[i]) {
					continue
				}
				out = append(out, dataset[i])
				if len(out) == limit {
					break
				}
			}
			return out, nil
		},
	).Times(3)
	repo.EXPECT().CountByUser(gomock.Any(), "tech-1").Return(5, nil).Times(3)

	var seen []string
	cursor := ""
	pages := 0
	for {
		out, err := uc.Pull(context.Background(), "tech-1", PullInput{Limit: 2, Cursor: cursor})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pages++
		for _, wo := range out.Items {
			seen = append(seen, wo.ID)
		}
		switch pages {
		case 1, 2:
			if len(out.Items) != 2 || !out.HasMore || out.NextCursor == "" {
				t.Fatalf("page %d: expected full page with cursor, got %d items hasMore=%v", pages, len(out.Items), out.HasMore)
			}
		case 3:
			if len(out.Items) != 1 || out.HasMore || out.NextCursor != "" {
				t.Fatalf("final page: expected 1 item and no cursor, got %d items hasMore=%v", len(out.Items), out.HasMore)
			}
		}
		if !out.HasMore {
			break
		}
		cursor = out.NextCursor
	}

	want := []string{"a", "b", "c", "d", "e"}
	if len(seen) != len(want) {
		t.Fatalf("expected %d records across pages, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("records out of order or duplicated: %v", seen)
		}
	}
}

func TestSyncPullUseCase_TotalCountsAllOwned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIWorkOrderRepository(ctrl)
	uc := NewSyncPullUseCase(repo)

	repo.EXPECT().QueryChangedAfter(gomock.Any(), "tech-1", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	// Total is deliberately not scoped by the active filter.
	repo.EXPECT().CountByUser(gomock.Any(), "tech-1").Return(42, nil)

	out, err := uc.Pull(context.Background(), "tech-1", PullInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Total != 42 {
		t.Fatalf("expected total 42, got %d", out.Total)
	}
}

func tsPtrU(t time.Time) *time.Time { return &t }
