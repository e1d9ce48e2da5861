package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/triagehq/paymentops/internal/metrics"
	"github.com/triagehq/paymentops/internal/payments"
	"github.com/triagehq/paymentops/internal/risk"
)

// Handlers holds the handler functions for each MCP tool. The store is owned
// in-process; tool calls never leave the process.
type Handlers struct {
	store *payments.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *payments.Store) *Handlers {
	return &Handlers{store: store}
}

// HandleGetPendingPayments lists failed payments needing attention.
func (h *Handlers) HandleGetPendingPayments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", payments.DefaultPendingLimit)

	pending := h.store.ListPending(ctx, limit)
	total := h.store.CountPending(ctx)

	return jsonResult(map[string]any{
		"payments":    pending,
		"total_count": total,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleGetPaymentDetails returns one payment record.
func (h *Handlers) HandleGetPaymentDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paymentID := req.GetString("payment_id", "")
	if paymentID == "" {
		return mcp.NewToolResultError("payment_id is required"), nil
	}

	p, err := h.store.Get(ctx, paymentID)
	if errors.Is(err, payments.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("Payment %s not found", paymentID)), nil
	}

	return jsonResult(map[string]any{"payment": p})
}

// HandleRetryPayment retries a failed payment.
func (h *Handlers) HandleRetryPayment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paymentID := req.GetString("payment_id", "")
	if paymentID == "" {
		return mcp.NewToolResultError("payment_id is required"), nil
	}
	reason := req.GetString("reason", "")
	if reason == "" {
		return mcp.NewToolResultError("reason is required"), nil
	}

	result, err := h.store.Retry(ctx, paymentID, reason)
	switch {
	case errors.Is(err, payments.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("Payment %s not found", paymentID)), nil
	case errors.Is(err, payments.ErrInvalidState):
		return mcp.NewToolResultError(fmt.Sprintf("Payment %s is not in FAILED status", paymentID)), nil
	}

	metrics.ActionsTotal.WithLabelValues(string(payments.ActionRetry), result.Result).Inc()

	return jsonResult(map[string]any{
		"action": payments.ActionRetry,
		"retry":  result,
	})
}

// HandleEscalatePayment hands a payment to human review.
func (h *Handlers) HandleEscalatePayment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paymentID := req.GetString("payment_id", "")
	if paymentID == "" {
		return mcp.NewToolResultError("payment_id is required"), nil
	}
	issueType := req.GetString("issue_type", "")
	if issueType == "" {
		return mcp.NewToolResultError("issue_type is required"), nil
	}
	notes := req.GetString("notes", "")

	escalation, err := h.store.Escalate(ctx, paymentID, issueType, notes)
	if errors.Is(err, payments.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("Payment %s not found", paymentID)), nil
	}

	metrics.ActionsTotal.WithLabelValues(string(payments.ActionEscalate), "escalated").Inc()

	return jsonResult(map[string]any{
		"action":     payments.ActionEscalate,
		"escalation": escalation,
	})
}

// HandleAssessPaymentRisk scores a payment. An unknown id returns the
// UNKNOWN sentinel assessment rather than a tool error, so the model can
// reason about it.
func (h *Handlers) HandleAssessPaymentRisk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paymentID := req.GetString("payment_id", "")
	if paymentID == "" {
		return mcp.NewToolResultError("payment_id is required"), nil
	}

	p, err := h.store.Get(ctx, paymentID)
	if errors.Is(err, payments.ErrNotFound) {
		return jsonResult(map[string]any{"assessment": risk.AssessUnknown(paymentID)})
	}

	assessment := risk.Assess(p)
	metrics.RiskAssessmentsTotal.WithLabelValues(string(assessment.Level)).Inc()

	return jsonResult(map[string]any{"assessment": assessment})
}

// HandleNotifyCustomer sends a customer notification.
func (h *Handlers) HandleNotifyCustomer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	customerID := req.GetString("customer_id", "")
	if customerID == "" {
		return mcp.NewToolResultError("customer_id is required"), nil
	}
	message := req.GetString("message", "")
	if message == "" {
		return mcp.NewToolResultError("message is required"), nil
	}
	paymentID := req.GetString("payment_id", "")
	channel := req.GetString("channel", "email")

	n := h.store.Notify(ctx, customerID, message, paymentID, channel)
	metrics.ActionsTotal.WithLabelValues(string(payments.ActionNotify), n.Status).Inc()

	return jsonResult(map[string]any{"notification": n})
}

// HandleGetActionLog returns recent store actions for audit.
func (h *Handlers) HandleGetActionLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", payments.DefaultLogLimit)

	actions := h.store.ActionLog(ctx, limit)
	total := h.store.ActionCount(ctx)

	return jsonResult(map[string]any{
		"actions":       actions,
		"total_actions": total,
		"limit":         limit,
		"last_updated":  time.Now().UTC().Format(time.RFC3339),
	})
}

// jsonResult renders a payload as indented JSON text content.
func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
