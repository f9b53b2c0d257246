package collaborators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces"
)

var ErrMissingNotifierServiceURL = errors.New("missing NOTIFIER_SERVICE_URL")

type statusChangeRequest struct {
	WorkOrderID    string `json:"workOrderId"`
	UserID         string `json:"userId"`
	Title          string `json:"title"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
}

// StatusNotifierHTTPService pushes work order status changes to the
// notification service so the customer-facing app can surface them.

type StatusNotifierHTTPService struct {
	baseURL string
	client  *http.Client
}

var _ interfaces.IStatusNotifier = (*StatusNotifierHTTPService)(nil)

func NewStatusNotifierHTTPService(baseURL string) (*StatusNotifierHTTPService, error) {
	if baseURL == "" {
		return nil, ErrMissingNotifierServiceURL
	}
	return &StatusNotifierHTTPService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}, nil
}

func (s *StatusNotifierHTTPService) NotifyStatusChange(ctx context.Context, wo entities.WorkOrder, previous entities.WorkOrderStatus) error {
	body, err := json.Marshal(statusChangeRequest{
		WorkOrderID:    wo.ID,
		UserID:         wo.UserID,
		Title:          wo.Title,
		PreviousStatus: string(previous),
		NewStatus:      string(wo.Status),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/notifications/work-order-status", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notifier service returned status %d", resp.StatusCode)
	}
	return nil
}
