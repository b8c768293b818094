// services/slots.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Slot is one bookable time window returned by the external scheduling
// service. Availability is never computed locally; the scheduling
// service is the sole authority on slots and conflicts.
type Slot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Stylists int       `json:"stylists"`
}

type SlotClient struct {
	baseURL string
	client  *http.Client
}

func NewSlotClient() *SlotClient {
	return &SlotClient{
		baseURL: os.Getenv("SLOT_SERVICE_URL"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// AvailableSlots fetches the open slots for a date and total duration.
// Any failure is a transport error: retryable, never partially applied.
func (s *SlotClient) AvailableSlots(ctx context.Context, date string, durationMinutes int) ([]Slot, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("slot service not configured")
	}

	q := url.Values{}
	q.Set("date", date)
	q.Set("duration", fmt.Sprintf("%d", durationMinutes))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/available-slots?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slot service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("slot service returned %d", resp.StatusCode)
	}

	var slots []Slot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return nil, fmt.Errorf("slot service response invalid: %w", err)
	}
	return slots, nil
}
