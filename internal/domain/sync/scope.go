package sync

import (
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
)

// Scope selects which slice of the caller's work orders a pull covers.
//
// Every scope is already restricted to the authenticated technician at the
// query layer. ScopeAssigned is therefore currently equivalent to ScopeAll:
// in this product ownership *is* assignment. That is a known simplification
// kept on purpose, not a bug to silently fix here.

type Scope string

const (
	ScopeAll       Scope = "all"
	ScopeAssigned  Scope = "assigned"
	ScopeDateRange Scope = "date_range"
)

const (
	defaultRangePast   = 30 * 24 * time.Hour
	defaultRangeFuture = 60 * 24 * time.Hour
	recentChangeWindow = 7 * 24 * time.Hour
)

// Filter is the composed pull predicate: ownership (applied structurally at
// the repository), scope window, and the optional "changed since" bound.
// All parts compose conjunctively.
type Filter struct {
	Since *time.Time

	// Set only for ScopeDateRange.
	RangeStart *time.Time
	RangeEnd   *time.Time

	// Records updated after this instant match regardless of their
	// scheduled date, so a just-canceled old job is never dropped from the
	// client's window. Set only for ScopeDateRange.
	UpdatedAfter *time.Time
}

// BuildFilter translates a scope plus optional since/explicit range into a
// Filter. The date_range window defaults to [now-30d, now+60d].
func BuildFilter(scope Scope, since *time.Time, startDate, endDate *time.Time, now time.Time) Filter {
	f := Filter{Since: since}
	if scope != ScopeDateRange {
		return f
	}

	start := now.Add(-defaultRangePast)
	end := now.Add(defaultRangeFuture)
	if startDate != nil {
		start = *startDate
	}
	if endDate != nil {
		end = *endDate
	}
	recent := now.Add(-recentChangeWindow)

	f.RangeStart = &start
	f.RangeEnd = &end
	f.UpdatedAfter = &recent
	return f
}

// Matches reports whether a work order belongs in the filtered stream.
func (f Filter) Matches(wo *entities.WorkOrder) bool {
	if f.Since != nil && wo.UpdatedAt.Before(*f.Since) {
		return false
	}
	if f.RangeStart == nil {
		return true
	}
	if inWindow(wo.ScheduledDate, *f.RangeStart, *f.RangeEnd) ||
		inWindow(wo.ScheduledStart, *f.RangeStart, *f.RangeEnd) {
		return true
	}
	return f.UpdatedAfter != nil && !wo.UpdatedAt.Before(*f.UpdatedAfter)
}

func inWindow(ts *time.Time, start, end time.Time) bool {
	if ts == nil {
		return false
	}
	return !ts.Before(start) && !ts.After(end)
}
