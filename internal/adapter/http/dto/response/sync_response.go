package response

import (
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase"
)

// PullResponse pages changed records back to the client. NextCursor is nil
// on the final page; the client persists ServerTime as the since value of
// its next delta call.
type PullResponse struct {
	Items      []WorkOrderRecord `json:"items"`
	NextCursor *string           `json:"nextCursor"`
	ServerTime time.Time         `json:"serverTime"`
	HasMore    bool              `json:"hasMore"`
	Total      int               `json:"total"`
}

func FromPullOutput(out usecase.PullOutput) PullResponse {
	resp := PullResponse{
		Items:      FromWorkOrders(out.Items),
		ServerTime: out.ServerTime,
		HasMore:    out.HasMore,
		Total:      out.Total,
	}
	if out.NextCursor != "" {
		cursor := out.NextCursor
		resp.NextCursor = &cursor
	}
	return resp
}

type MutationResultResponse struct {
	MutationID string           `json:"mutationId"`
	Status     string           `json:"status"`
	Record     *WorkOrderRecord `json:"record,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type PushResponse struct {
	Results    []MutationResultResponse `json:"results"`
	ServerTime time.Time                `json:"serverTime"`
}

func FromPushOutput(out usecase.PushOutput) PushResponse {
	results := make([]MutationResultResponse, 0, len(out.Results))
	for _, r := range out.Results {
		res := MutationResultResponse{
			MutationID: r.MutationID,
			Status:     string(r.Status),
			Error:      r.Error,
		}
		if r.Record != nil {
			rec := FromWorkOrder(*r.Record)
			res.Record = &rec
		}
		results = append(results, res)
	}
	return PushResponse{Results: results, ServerTime: out.ServerTime}
}
