package request

import (
	"encoding/json"
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/sync"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase"
)

// PullRequest is the delta-fetch envelope posted by mobile clients. All
// fields are optional; an empty body means "first full sync, default scope".
type PullRequest struct {
	Since     *time.Time `json:"since"`
	Cursor    string     `json:"cursor"`
	Limit     int        `json:"limit" binding:"omitempty,min=1"`
	Scope     string     `json:"scope" binding:"omitempty,oneof=all assigned date_range"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

func (r PullRequest) ToInput() usecase.PullInput {
	return usecase.PullInput{
		Since:     r.Since,
		Cursor:    r.Cursor,
		Limit:     r.Limit,
		Scope:     sync.Scope(r.Scope),
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// MutationRequest is one queued offline change. Record stays raw here: each
// action has its own payload shape and the applier validates it per action
// so one malformed mutation cannot reject the whole batch.
type MutationRequest struct {
	MutationID      string          `json:"mutationId"`
	Action          string          `json:"action"`
	ClientUpdatedAt *time.Time      `json:"clientUpdatedAt"`
	Record          json.RawMessage `json:"record"`
}

type PushRequest struct {
	Mutations []MutationRequest `json:"mutations" binding:"required"`
}

func (r PushRequest) ToMutations() []usecase.Mutation {
	out := make([]usecase.Mutation, 0, len(r.Mutations))
	for _, m := range r.Mutations {
		out = append(out, usecase.Mutation{
			MutationID:      m.MutationID,
			Action:          entities.MutationAction(m.Action),
			ClientUpdatedAt: m.ClientUpdatedAt,
			Record:          m.Record,
		})
	}
	return out
}
