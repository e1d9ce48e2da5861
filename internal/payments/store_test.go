package payments

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewStore_Seed(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if got := s.CountPending(ctx); got != 20 {
		t.Errorf("CountPending = %d, want 20", got)
	}

	p, err := s.Get(ctx, "PAY-12350")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Status != StatusPending {
		t.Errorf("PAY-12350 status = %s, want PENDING", p.Status)
	}
	if p.ErrorCode != "" {
		t.Errorf("PAY-12350 error code = %s, want empty", p.ErrorCode)
	}
}

func TestListPending(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	pending := s.ListPending(ctx, 0)
	if len(pending) != DefaultPendingLimit {
		t.Fatalf("default limit: got %d, want %d", len(pending), DefaultPendingLimit)
	}
	if pending[0].PaymentID != "PAY-12345" {
		t.Errorf("first pending = %s, want PAY-12345 (seed order)", pending[0].PaymentID)
	}
	for _, p := range pending {
		if p.Status != StatusFailed {
			t.Errorf("%s status = %s, want FAILED", p.PaymentID, p.Status)
		}
		if p.PaymentID == "PAY-12350" {
			t.Error("PENDING payment leaked into pending list")
		}
	}

	all := s.ListPending(ctx, 100)
	if len(all) != 20 {
		t.Errorf("limit 100: got %d, want 20", len(all))
	}

	three := s.ListPending(ctx, 3)
	if len(three) != 3 {
		t.Errorf("limit 3: got %d, want 3", len(three))
	}
}

func TestGet_NotFound(t *testing.T) {
	s := NewStore()

	_, err := s.Get(context.Background(), "PAY-00000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	p, err := s.Get(ctx, "PAY-12345")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	p.Amount = 9999999

	p2, _ := s.Get(ctx, "PAY-12345")
	if p2.Amount != 1500.00 {
		t.Errorf("store state mutated through returned copy: amount = %v", p2.Amount)
	}
}

func TestRetry_Success(t *testing.T) {
	fixed := time.Date(2025, 6, 29, 12, 0, 0, 0, time.UTC)
	s := NewStore(WithRetryOutcome(Always), WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	res, err := s.Retry(ctx, "PAY-13005", "Customer confirmed funds available")
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if res.Result != "SUCCESS" {
		t.Errorf("result = %s, want SUCCESS", res.Result)
	}
	if res.RetryCount != 1 {
		t.Errorf("retry count = %d, want 1", res.RetryCount)
	}

	p, _ := s.Get(ctx, "PAY-13005")
	if p.Status != StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", p.Status)
	}
	if !p.LastAttempt.Equal(fixed) {
		t.Errorf("last attempt = %v, want %v", p.LastAttempt, fixed)
	}

	log := s.ActionLog(ctx, 0)
	if len(log) != 1 {
		t.Fatalf("log entries = %d, want 1", len(log))
	}
	e := log[0]
	if e.Action != ActionRetry || e.PaymentID != "PAY-13005" || e.Result != "SUCCESS" {
		t.Errorf("unexpected log entry: %+v", e)
	}
	if e.RetryCount != 1 {
		t.Errorf("log retry count = %d, want 1", e.RetryCount)
	}
}

func TestRetry_Failure(t *testing.T) {
	s := NewStore(WithRetryOutcome(Never))
	ctx := context.Background()

	res, err := s.Retry(ctx, "PAY-12348", "Requested by support")
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if res.Result != "FAILED" {
		t.Errorf("result = %s, want FAILED", res.Result)
	}
	if res.RetryCount != 3 {
		t.Errorf("retry count = %d, want 3 (seed had 2)", res.RetryCount)
	}

	p, _ := s.Get(ctx, "PAY-12348")
	if p.Status != StatusFailed {
		t.Errorf("status = %s, want FAILED (still retryable)", p.Status)
	}

	// Failed retries log too.
	if got := s.ActionCount(ctx); got != 1 {
		t.Errorf("action count = %d, want 1", got)
	}
}

func TestRetry_NotFound(t *testing.T) {
	s := NewStore()

	_, err := s.Retry(context.Background(), "PAY-00000", "whatever")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRetry_InvalidState(t *testing.T) {
	s := NewStore(WithRetryOutcome(Always))
	ctx := context.Background()

	// PENDING payment cannot be retried.
	_, err := s.Retry(ctx, "PAY-12350", "nudge it along")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("retry PENDING: err = %v, want ErrInvalidState", err)
	}

	// Neither can one that already completed.
	if _, err := s.Retry(ctx, "PAY-13005", "first"); err != nil {
		t.Fatalf("first retry: %v", err)
	}
	_, err = s.Retry(ctx, "PAY-13005", "second")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("retry COMPLETED: err = %v, want ErrInvalidState", err)
	}

	// Rejected attempts leave no log entries behind.
	if got := s.ActionCount(ctx); got != 1 {
		t.Errorf("action count = %d, want 1", got)
	}
}

func TestEscalate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	esc, err := s.Escalate(ctx, "PAY-12345", "compliance_review", "Flagged by risk assessment")
	if err != nil {
		t.Fatalf("Escalate: %v", err)
	}
	if esc.EscalationID != "ESC-12345" {
		t.Errorf("escalation id = %s, want ESC-12345", esc.EscalationID)
	}
	if esc.Status != StatusEscalated {
		t.Errorf("status = %s, want ESCALATED", esc.Status)
	}

	p, _ := s.Get(ctx, "PAY-12345")
	if p.Status != StatusEscalated {
		t.Errorf("store status = %s, want ESCALATED", p.Status)
	}

	log := s.ActionLog(ctx, 0)
	if len(log) != 1 {
		t.Fatalf("log entries = %d, want 1", len(log))
	}
	if log[0].Amount != 1500.00 {
		t.Errorf("log amount = %v, want 1500.00", log[0].Amount)
	}
	if log[0].IssueType != "compliance_review" {
		t.Errorf("log issue type = %q", log[0].IssueType)
	}
}

func TestEscalate_Repeat(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if _, err := s.Escalate(ctx, "PAY-13002", "compliance_review", "first"); err != nil {
		t.Fatalf("first escalate: %v", err)
	}
	esc, err := s.Escalate(ctx, "PAY-13002", "fraud_suspected", "second look")
	if err != nil {
		t.Fatalf("second escalate: %v", err)
	}
	if esc.Status != StatusEscalated {
		t.Errorf("status = %s, want ESCALATED", esc.Status)
	}
	if got := s.ActionCount(ctx); got != 2 {
		t.Errorf("action count = %d, want 2 (each escalation logs)", got)
	}
}

func TestEscalate_NotFound(t *testing.T) {
	s := NewStore()

	_, err := s.Escalate(context.Background(), "PAY-00000", "compliance_review", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNotify(t *testing.T) {
	fixed := time.Date(2025, 6, 29, 14, 30, 5, 0, time.UTC)
	s := NewStore(WithNotifyOutcome(Always), WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	n := s.Notify(ctx, "CUST-789", "Your payment failed, please update your card", "PAY-12345", "")
	if n.NotificationID != "NOTIF-20250629143005-789" {
		t.Errorf("notification id = %s", n.NotificationID)
	}
	if n.Channel != "email" {
		t.Errorf("channel = %s, want email default", n.Channel)
	}
	if n.Status != "SENT" {
		t.Errorf("status = %s, want SENT", n.Status)
	}
}

func TestNotify_UnknownCustomerStillLogs(t *testing.T) {
	s := NewStore(WithNotifyOutcome(Never))
	ctx := context.Background()

	// Customer and payment don't exist in the store; notify is
	// customer-addressed and never rejects.
	n := s.Notify(ctx, "CUST-NOPE-42", "hello", "", "sms")
	if n.Status != "FAILED" {
		t.Errorf("status = %s, want FAILED", n.Status)
	}
	if n.Channel != "sms" {
		t.Errorf("channel = %s, want sms", n.Channel)
	}

	log := s.ActionLog(ctx, 0)
	if len(log) != 1 {
		t.Fatalf("log entries = %d, want 1", len(log))
	}
	if log[0].Action != ActionNotify || log[0].CustomerID != "CUST-NOPE-42" {
		t.Errorf("unexpected log entry: %+v", log[0])
	}
}

func TestActionLog_OrderAndLimit(t *testing.T) {
	s := NewStore(WithRetryOutcome(Never), WithNotifyOutcome(Always))
	ctx := context.Background()

	ids := []string{"PAY-12345", "PAY-12346", "PAY-12349"}
	for _, id := range ids {
		if _, err := s.Retry(ctx, id, "sweep"); err != nil {
			t.Fatalf("retry %s: %v", id, err)
		}
	}
	s.Notify(ctx, "CUST-789", "update", "", "")

	log := s.ActionLog(ctx, 0)
	if len(log) != 4 {
		t.Fatalf("log entries = %d, want 4", len(log))
	}
	// Chronological order, oldest first.
	for i, id := range ids {
		if log[i].PaymentID != id {
			t.Errorf("log[%d].PaymentID = %s, want %s", i, log[i].PaymentID, id)
		}
	}
	if log[3].Action != ActionNotify {
		t.Errorf("log[3].Action = %s, want NOTIFY_CUSTOMER", log[3].Action)
	}

	// Limit keeps the most recent entries.
	tail := s.ActionLog(ctx, 2)
	if len(tail) != 2 {
		t.Fatalf("tail entries = %d, want 2", len(tail))
	}
	if tail[0].PaymentID != "PAY-12349" || tail[1].Action != ActionNotify {
		t.Errorf("unexpected tail: %+v", tail)
	}
}

func TestReset(t *testing.T) {
	s := NewStore(WithRetryOutcome(Always))
	ctx := context.Background()

	if _, err := s.Retry(ctx, "PAY-13005", "pre-reset"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if _, err := s.Escalate(ctx, "PAY-13002", "compliance_review", ""); err != nil {
		t.Fatalf("escalate: %v", err)
	}

	s.Reset(ctx)

	if got := s.CountPending(ctx); got != 20 {
		t.Errorf("CountPending after reset = %d, want 20", got)
	}
	p, _ := s.Get(ctx, "PAY-13005")
	if p.Status != StatusFailed || p.RetryCount != 0 {
		t.Errorf("PAY-13005 not restored: %+v", p)
	}
	if got := s.ActionCount(ctx); got != 0 {
		t.Errorf("action count after reset = %d, want 0", got)
	}
}

func TestWithSink(t *testing.T) {
	var seen []ActionEntry
	s := NewStore(
		WithRetryOutcome(Always),
		WithSink(func(e ActionEntry) { seen = append(seen, e) }),
	)
	ctx := context.Background()

	if _, err := s.Retry(ctx, "PAY-13005", "sink check"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if _, err := s.Escalate(ctx, "PAY-13002", "compliance_review", ""); err != nil {
		t.Fatalf("escalate: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("sink saw %d entries, want 2", len(seen))
	}
	if seen[0].Action != ActionRetry || seen[1].Action != ActionEscalate {
		t.Errorf("unexpected sink entries: %+v", seen)
	}
}

func TestProbabilityOutcome_Bounds(t *testing.T) {
	always := ProbabilityOutcome(1.0)
	never := ProbabilityOutcome(0.0)

	for i := 0; i < 100; i++ {
		if !always() {
			t.Fatal("rate 1.0 returned false")
		}
		if never() {
			t.Fatal("rate 0.0 returned true")
		}
	}
}
