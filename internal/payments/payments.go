// Package payments owns the canonical in-memory payment registry and its
// append-only action log.
//
// Flow:
//  1. Store starts from a fixed seed set of failed payments
//  2. Callers (HTTP API, MCP tools) list pending payments and act on them
//  3. Retry / escalate / notify mutate state and append to the action log
//  4. Reset restores the seed set for independent runs
package payments

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("payment not found")
	ErrInvalidState = errors.New("payment not in FAILED status")
)

// Status is the lifecycle state of a payment attempt.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusFailed    Status = "FAILED"
	StatusCompleted Status = "COMPLETED"
	StatusEscalated Status = "ESCALATED"
)

// ErrorCode classifies why a payment attempt failed.
type ErrorCode string

const (
	ErrInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrTechnicalFailure  ErrorCode = "TECHNICAL_FAILURE"
	ErrComplianceHold    ErrorCode = "COMPLIANCE_HOLD"
	ErrCardDeclined      ErrorCode = "CARD_DECLINED"
	ErrUnknownError      ErrorCode = "UNKNOWN_ERROR"
)

// Tier is the customer's service tier.
type Tier string

const (
	TierStandard Tier = "standard"
	TierVIP      Tier = "vip"
	TierBusiness Tier = "business"
)

// Payment represents one payment attempt requiring attention.
type Payment struct {
	PaymentID       string    `json:"payment_id"`
	Amount          float64   `json:"amount"`
	Status          Status    `json:"status"`
	ErrorCode       ErrorCode `json:"error_code,omitempty"`
	RetryCount      int       `json:"retry_count"`
	LastAttempt     time.Time `json:"last_attempt"`
	CustomerID      string    `json:"customer_id"`
	CustomerTier    Tier      `json:"customer_tier"`
	Description     string    `json:"description"`
	ComplianceNotes string    `json:"compliance_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Action is the kind of store mutation recorded in the action log.
type Action string

const (
	ActionRetry    Action = "RETRY"
	ActionEscalate Action = "ESCALATE"
	ActionNotify   Action = "NOTIFY_CUSTOMER"
)

// ActionEntry is an append-only audit record of a store mutation.
// Fields beyond timestamp/action/payment_id are action-specific.
type ActionEntry struct {
	Timestamp      time.Time `json:"timestamp"`
	Action         Action    `json:"action"`
	PaymentID      string    `json:"payment_id,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Result         string    `json:"result,omitempty"`
	RetryCount     int       `json:"retry_count,omitempty"`
	IssueType      string    `json:"issue_type,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Amount         float64   `json:"amount,omitempty"`
	CustomerID     string    `json:"customer_id,omitempty"`
	Channel        string    `json:"channel,omitempty"`
	Status         string    `json:"status,omitempty"`
	NotificationID string    `json:"notification_id,omitempty"`
}

// RetryResult reports the outcome of a retry attempt.
type RetryResult struct {
	PaymentID  string `json:"payment_id"`
	Result     string `json:"result"` // SUCCESS or FAILED
	RetryCount int    `json:"retry_count"`
	Reason     string `json:"reason"`
}

// Escalation reports a payment handed to human review.
type Escalation struct {
	PaymentID    string `json:"payment_id"`
	EscalationID string `json:"escalation_id"`
	IssueType    string `json:"issue_type"`
	Notes        string `json:"notes"`
	Status       Status `json:"status"`
}

// Notification reports a customer notification attempt.
type Notification struct {
	NotificationID string `json:"notification_id"`
	CustomerID     string `json:"customer_id"`
	PaymentID      string `json:"payment_id,omitempty"`
	Message        string `json:"message"`
	Channel        string `json:"channel"`
	Status         string `json:"status"` // SENT or FAILED
}
