package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/sync"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces"
)

var (
	ErrInvalidUserID    = errors.New("invalid user id")
	ErrInvalidSyncScope = errors.New("invalid sync scope")
)

const (
	DefaultPullLimit = 100
	MaxPullLimit     = 500
)

// PullInput carries the client's delta-fetch parameters. Cursor is the
// opaque continuation token from a previous page; Since is the serverTime
// echoed by the previous completed sync.
type PullInput struct {
	Since     *time.Time
	Cursor    string
	Limit     int
	Scope     sync.Scope
	StartDate *time.Time
	EndDate   *time.Time
}

type PullOutput struct {
	Items      []entities.WorkOrder
	NextCursor string
	ServerTime time.Time
	HasMore    bool
	Total      int
}

// ISyncPullUseCase produces pages of changed work orders for a client.

type ISyncPullUseCase interface {
	Pull(ctx context.Context, userID string, in PullInput) (PullOutput, error)
}

type SyncPullUseCase struct {
	repo interfaces.IWorkOrderRepository
}

var _ ISyncPullUseCase = (*SyncPullUseCase)(nil)

func NewSyncPullUseCase(repo interfaces.IWorkOrderRepository) *SyncPullUseCase {
	return &SyncPullUseCase{repo: repo}
}

// Pull composes ownership + scope + since + cursor continuation, orders by
// (UpdatedAt, ID), and fetches limit+1 rows to detect hasMore without a
// second query. ServerTime is echoed so the client can use it as the since
// value of its next delta call regardless of clock skew.
func (u *SyncPullUseCase) Pull(ctx context.Context, userID string, in PullInput) (PullOutput, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return PullOutput{}, ErrInvalidUserID
	}

	scope := in.Scope
	if scope == "" {
		scope = sync.ScopeDateRange
	}
	switch scope {
	case sync.ScopeAll, sync.ScopeAssigned, sync.ScopeDateRange:
	default:
		return PullOutput{}, ErrInvalidSyncScope
	}

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultPullLimit
	}
	if limit > MaxPullLimit {
		limit = MaxPullLimit
	}

	now := time.Now().UTC()
	filter := sync.BuildFilter(scope, in.Since, in.StartDate, in.EndDate, now)

	after := ""
	if in.Since != nil {
		after = sync.SortKeyLowerBound(*in.Since)
	}
	if token := strings.TrimSpace(in.Cursor); token != "" {
		ts, id, err := sync.DecodeCursor(token)
		if err != nil {
			// A corrupted client-stored cursor must never block a resync
			// from scratch.
			log.Printf("[sync][pull] malformed cursor ignored user_id=%s err=%v", userID, err)
		} else if key := sync.SortKey(ts, id); key > after {
			after = key
		}
	}

	items, err := u.repo.QueryChangedAfter(ctx, userID, after, filter, limit+1)
	if err != nil {
		return PullOutput{}, err
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	nextCursor := ""
	if hasMore {
		last := items[len(items)-1]
		nextCursor = sync.EncodeCursor(last.UpdatedAt, last.ID)
	}

	// Total counts everything the caller owns, not the records matching the
	// active filter: a gross progress figure, kept as documented behavior.
	total, err := u.repo.CountByUser(ctx, userID)
	if err != nil {
		return PullOutput{}, err
	}

	return PullOutput{
		Items:      items,
		NextCursor: nextCursor,
		ServerTime: now,
		HasMore:    hasMore,
		Total:      total,
	}, nil
}
