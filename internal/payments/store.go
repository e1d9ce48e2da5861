package payments

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultPendingLimit caps ListPending when the caller passes no limit.
	DefaultPendingLimit = 10
	// DefaultLogLimit caps ActionLog when the caller passes no limit.
	DefaultLogLimit = 20

	// DefaultRetrySuccessRate is the simulated probability that a retry
	// completes the payment.
	DefaultRetrySuccessRate = 0.70
	// DefaultNotifySuccessRate is the simulated probability that a
	// notification is delivered.
	DefaultNotifySuccessRate = 0.95
)

// Archive mirrors appended action log entries to durable storage.
// The in-memory log stays canonical; archiving is best-effort.
type Archive interface {
	Record(ctx context.Context, entry *ActionEntry) error
	List(ctx context.Context, limit int) ([]*ActionEntry, error)
}

// Store is the sole writer of payment state. A single mutex serializes
// mutations; reads return copies so callers never see concurrent updates.
type Store struct {
	mu       sync.RWMutex
	payments []Payment
	log      []ActionEntry

	retryOutcome  func() bool
	notifyOutcome func() bool
	now           func() time.Time
	archive       Archive
	sink          func(ActionEntry)
}

// Option configures a Store.
type Option func(*Store)

// WithRetryOutcome overrides the simulated retry outcome source.
func WithRetryOutcome(f func() bool) Option {
	return func(s *Store) { s.retryOutcome = f }
}

// WithNotifyOutcome overrides the simulated notification outcome source.
func WithNotifyOutcome(f func() bool) Option {
	return func(s *Store) { s.notifyOutcome = f }
}

// WithClock overrides the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithArchive mirrors action log appends to a durable archive.
func WithArchive(a Archive) Option {
	return func(s *Store) { s.archive = a }
}

// WithSink registers a callback invoked synchronously for every appended
// action log entry (used for realtime streaming).
func WithSink(fn func(ActionEntry)) Option {
	return func(s *Store) { s.sink = fn }
}

// NewStore creates a store populated with the seed dataset.
func NewStore(opts ...Option) *Store {
	s := &Store{
		payments:      seedPayments(),
		retryOutcome:  ProbabilityOutcome(DefaultRetrySuccessRate),
		notifyOutcome: ProbabilityOutcome(DefaultNotifySuccessRate),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPending returns up to limit payments in FAILED status, in seed order.
// An empty result is not an error.
func (s *Store) ListPending(ctx context.Context, limit int) []Payment {
	if limit <= 0 {
		limit = DefaultPendingLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Payment, 0, limit)
	for _, p := range s.payments {
		if p.Status != StatusFailed {
			continue
		}
		result = append(result, p)
		if len(result) == limit {
			break
		}
	}
	return result
}

// CountPending returns the total number of FAILED payments.
func (s *Store) CountPending(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, p := range s.payments {
		if p.Status == StatusFailed {
			n++
		}
	}
	return n
}

// Get returns the payment with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, paymentID string) (*Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.payments {
		if s.payments[i].PaymentID == paymentID {
			cp := s.payments[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Retry attempts a failed payment again. The outcome is simulated by the
// injected outcome source. Exactly one RETRY entry is appended regardless of
// the result. Returns ErrInvalidState if the payment is not FAILED.
func (s *Store) Retry(ctx context.Context, paymentID, reason string) (*RetryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(paymentID)
	if p == nil {
		return nil, ErrNotFound
	}
	if p.Status != StatusFailed {
		return nil, ErrInvalidState
	}

	p.RetryCount++
	p.LastAttempt = s.now().UTC()

	result := "FAILED"
	if s.retryOutcome() {
		p.Status = StatusCompleted
		result = "SUCCESS"
	}

	s.append(ActionEntry{
		Timestamp:  s.now().UTC(),
		Action:     ActionRetry,
		PaymentID:  paymentID,
		Reason:     reason,
		Result:     result,
		RetryCount: p.RetryCount,
	})

	return &RetryResult{
		PaymentID:  paymentID,
		Result:     result,
		RetryCount: p.RetryCount,
		Reason:     reason,
	}, nil
}

// Escalate hands a payment to human review. Idempotent in status effect:
// escalating twice re-marks and re-logs. Returns ErrNotFound if missing.
func (s *Store) Escalate(ctx context.Context, paymentID, issueType, notes string) (*Escalation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(paymentID)
	if p == nil {
		return nil, ErrNotFound
	}

	s.append(ActionEntry{
		Timestamp: s.now().UTC(),
		Action:    ActionEscalate,
		PaymentID: paymentID,
		IssueType: issueType,
		Notes:     notes,
		Amount:    p.Amount,
	})

	p.Status = StatusEscalated

	return &Escalation{
		PaymentID:    paymentID,
		EscalationID: "ESC-" + idSuffix(paymentID),
		IssueType:    issueType,
		Notes:        notes,
		Status:       StatusEscalated,
	}, nil
}

// Notify sends a customer notification. Notifications are customer-addressed:
// neither the customer nor the optional payment id has to exist in the store,
// so this never returns ErrNotFound. Delivery is simulated by the injected
// outcome source.
func (s *Store) Notify(ctx context.Context, customerID, message, paymentID, channel string) *Notification {
	if channel == "" {
		channel = "email"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	notificationID := "NOTIF-" + now.Format("20060102150405") + "-" + idSuffix(customerID)

	status := "FAILED"
	if s.notifyOutcome() {
		status = "SENT"
	}

	s.append(ActionEntry{
		Timestamp:      now,
		Action:         ActionNotify,
		PaymentID:      paymentID,
		CustomerID:     customerID,
		Channel:        channel,
		Status:         status,
		NotificationID: notificationID,
	})

	return &Notification{
		NotificationID: notificationID,
		CustomerID:     customerID,
		PaymentID:      paymentID,
		Message:        message,
		Channel:        channel,
		Status:         status,
	}
}

// ActionLog returns the most recent limit entries in chronological order.
func (s *Store) ActionLog(ctx context.Context, limit int) []ActionEntry {
	if limit <= 0 {
		limit = DefaultLogLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.log) - limit
	if start < 0 {
		start = 0
	}
	result := make([]ActionEntry, len(s.log)-start)
	copy(result, s.log[start:])
	return result
}

// ActionCount returns the total number of logged actions.
func (s *Store) ActionCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}

// Reset restores the seed dataset and clears the action log.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payments = seedPayments()
	s.log = nil
}

// find returns a pointer into the payments slice (caller holds the lock).
func (s *Store) find(paymentID string) *Payment {
	for i := range s.payments {
		if s.payments[i].PaymentID == paymentID {
			return &s.payments[i]
		}
	}
	return nil
}

// append adds an entry to the log and fans it out (caller holds the lock).
func (s *Store) append(e ActionEntry) {
	s.log = append(s.log, e)

	if s.sink != nil {
		s.sink(e)
	}
	if s.archive != nil {
		cp := e
		go func() {
			_ = s.archive.Record(context.Background(), &cp)
		}()
	}
}

// idSuffix extracts the trailing segment of a dashed identifier:
// "PAY-13002" -> "13002", "CUST-VIP-001" -> "001".
func idSuffix(id string) string {
	if i := strings.LastIndex(id, "-"); i >= 0 {
		return id[i+1:]
	}
	return id
}
