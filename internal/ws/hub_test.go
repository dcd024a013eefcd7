package ws

import (
	"encoding/json"
	"testing"

	"ledger_service/internal/domain"

	"github.com/shopspring/decimal"
)

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	c := NewClient(hub, nil)

	hub.Register(c)
	if hub.ClientCount() != 1 {
		t.Fatalf("client count = %d, want 1", hub.ClientCount())
	}

	hub.Unregister(c)
	if hub.ClientCount() != 0 {
		t.Fatalf("client count = %d, want 0", hub.ClientCount())
	}

	// double unregister must not panic or close twice
	hub.Unregister(c)
}

func TestHubBroadcastDelivers(t *testing.T) {
	hub := NewHub()
	c := NewClient(hub, nil)
	hub.Register(c)

	event := Event{
		Type: EventTransactionApplied,
		Transaction: &domain.Transaction{
			ID:       7,
			UserID:   1,
			Currency: domain.CurrencyUSD,
			Amount:   decimal.RequireFromString("100"),
			Status:   domain.TransactionProcessed,
		},
	}
	hub.Broadcast(event)

	select {
	case payload := <-c.send:
		var got Event
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if got.Type != EventTransactionApplied || got.Transaction.ID != 7 {
			t.Errorf("got event %+v", got)
		}
	default:
		t.Fatal("expected event on client channel")
	}
}

func TestHubBroadcastDropsWhenFull(t *testing.T) {
	hub := NewHub()
	c := NewClient(hub, nil)
	hub.Register(c)

	event := Event{Type: EventTransactionApplied, Transaction: &domain.Transaction{ID: 1}}
	for i := 0; i < sendBuffer+10; i++ {
		hub.Broadcast(event)
	}

	if len(c.send) != sendBuffer {
		t.Errorf("buffered = %d, want %d (excess dropped)", len(c.send), sendBuffer)
	}
}
