package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotClient_AvailableSlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/available-slots", r.URL.Path)
		assert.Equal(t, "2026-09-15", r.URL.Query().Get("date"))
		assert.Equal(t, "120", r.URL.Query().Get("duration"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"start":"2026-09-15T09:00:00Z","end":"2026-09-15T11:00:00Z","stylists":2}]`))
	}))
	defer srv.Close()

	c := &SlotClient{baseURL: srv.URL, client: srv.Client()}
	slots, err := c.AvailableSlots(context.Background(), "2026-09-15", 120)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 2, slots[0].Stylists)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC), slots[0].Start)
}

func TestSlotClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &SlotClient{baseURL: srv.URL, client: srv.Client()}
	_, err := c.AvailableSlots(context.Background(), "2026-09-15", 60)
	assert.Error(t, err)
}

func TestSlotClient_NotConfigured(t *testing.T) {
	c := &SlotClient{client: http.DefaultClient}
	_, err := c.AvailableSlots(context.Background(), "2026-09-15", 60)
	assert.Error(t, err)
}
