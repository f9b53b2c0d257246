package collaborators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces"
)

var ErrMissingInventoryServiceURL = errors.New("missing INVENTORY_SERVICE_URL")

type deductionItem struct {
	ItemID   string  `json:"itemId,omitempty"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

type deductionRequest struct {
	WorkOrderID string          `json:"workOrderId"`
	UserID      string          `json:"userId"`
	Items       []deductionItem `json:"items"`
}

// InventoryHTTPService calls the in-house inventory service to deduct stock
// for a completed work order. It is a fire-and-forget collaborator: callers
// log its errors and move on, the status change is already committed.

type InventoryHTTPService struct {
	baseURL string
	client  *http.Client
}

var _ interfaces.IInventoryService = (*InventoryHTTPService)(nil)

func NewInventoryHTTPService(baseURL string) (*InventoryHTTPService, error) {
	if baseURL == "" {
		return nil, ErrMissingInventoryServiceURL
	}
	return &InventoryHTTPService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}, nil
}

func (s *InventoryHTTPService) DeductForWorkOrder(ctx context.Context, wo entities.WorkOrder) error {
	items := make([]deductionItem, 0, len(wo.Items))
	for _, it := range wo.Items {
		items = append(items, deductionItem{ItemID: it.ID, Name: it.Name, Quantity: it.Quantity})
	}
	body, err := json.Marshal(deductionRequest{
		WorkOrderID: wo.ID,
		UserID:      wo.UserID,
		Items:       items,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/inventory/deductions", bytes.NewReader(body))
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
		return fmt.Errorf("inventory service returned status %d", resp.StatusCode)
	}
	log.Printf("[inventory][collaborator] deduction accepted work_order_id=%s items=%d", wo.ID, len(items))
	return nil
}
