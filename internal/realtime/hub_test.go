package realtime

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/triagehq/paymentops/internal/payments"
)

func testHub() *Hub {
	return NewHub(slog.Default())
}

// ---------------------------------------------------------------------------
// shouldSend tests
// ---------------------------------------------------------------------------

func TestShouldSend_AllEvents(t *testing.T) {
	h := testHub()
	client := &Client{sub: Subscription{AllEvents: true}}

	event := &Event{Type: EventRetry, Timestamp: time.Now()}
	if !h.shouldSend(client, event) {
		t.Error("AllEvents client should receive all events")
	}
}

func TestShouldSend_EventTypeFilter(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		EventTypes: []EventType{EventRetry, EventEscalate},
	}}

	retryEvent := &Event{Type: EventRetry}
	escalateEvent := &Event{Type: EventEscalate}
	notifyEvent := &Event{Type: EventNotify}

	if !h.shouldSend(client, retryEvent) {
		t.Error("Should receive retry events")
	}
	if !h.shouldSend(client, escalateEvent) {
		t.Error("Should receive escalate events")
	}
	if h.shouldSend(client, notifyEvent) {
		t.Error("Should NOT receive notify events")
	}
}

func TestShouldSend_PaymentFilter(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		PaymentIDs: []string{"PAY-13002"},
	}}

	matching := &Event{
		Type: EventRetry,
		Data: payments.ActionEntry{Action: payments.ActionRetry, PaymentID: "PAY-13002"},
	}
	notMatching := &Event{
		Type: EventRetry,
		Data: payments.ActionEntry{Action: payments.ActionRetry, PaymentID: "PAY-12345"},
	}
	noEntry := &Event{Type: EventReset}

	if !h.shouldSend(client, matching) {
		t.Error("Should receive events for watched payment")
	}
	if h.shouldSend(client, notMatching) {
		t.Error("Should NOT receive events for other payments")
	}
	if h.shouldSend(client, noEntry) {
		t.Error("Payment filter should drop events without an action entry")
	}
}

func TestShouldSend_CombinedFilters(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		EventTypes: []EventType{EventEscalate},
		PaymentIDs: []string{"PAY-13002"},
	}}

	rightBoth := &Event{
		Type: EventEscalate,
		Data: payments.ActionEntry{Action: payments.ActionEscalate, PaymentID: "PAY-13002"},
	}
	rightTypeWrongPayment := &Event{
		Type: EventEscalate,
		Data: payments.ActionEntry{Action: payments.ActionEscalate, PaymentID: "PAY-12345"},
	}
	wrongTypeRightPayment := &Event{
		Type: EventRetry,
		Data: payments.ActionEntry{Action: payments.ActionRetry, PaymentID: "PAY-13002"},
	}

	if !h.shouldSend(client, rightBoth) {
		t.Error("Should receive matching type and payment")
	}
	if h.shouldSend(client, rightTypeWrongPayment) {
		t.Error("Should NOT receive wrong payment")
	}
	if h.shouldSend(client, wrongTypeRightPayment) {
		t.Error("Should NOT receive wrong event type")
	}
}

// ---------------------------------------------------------------------------
// Broadcast tests
// ---------------------------------------------------------------------------

func TestBroadcastAction_EventTypes(t *testing.T) {
	tests := []struct {
		action payments.Action
		want   EventType
	}{
		{payments.ActionRetry, EventRetry},
		{payments.ActionEscalate, EventEscalate},
		{payments.ActionNotify, EventNotify},
	}

	for _, tt := range tests {
		if got := eventTypeFor(tt.action); got != tt.want {
			t.Errorf("eventTypeFor(%s) = %s, want %s", tt.action, got, tt.want)
		}
	}
}

func TestHub_BroadcastCountsEvents(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	h.BroadcastAction(payments.ActionEntry{Action: payments.ActionRetry, PaymentID: "PAY-12345"})
	h.BroadcastReset()

	deadline := time.After(2 * time.Second)
	for {
		if h.Stats()["totalEvents"].(int64) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("totalEvents = %v, want 2", h.Stats()["totalEvents"])
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
}

func TestHub_Stats(t *testing.T) {
	h := testHub()

	stats := h.Stats()
	if stats["connectedClients"].(int) != 0 {
		t.Errorf("connectedClients = %v, want 0", stats["connectedClients"])
	}
	if stats["totalEvents"].(int64) != 0 {
		t.Errorf("totalEvents = %v, want 0", stats["totalEvents"])
	}
}
