package payments

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/triagehq/paymentops/internal/metrics"
	"github.com/triagehq/paymentops/internal/traces"
)

// Handler provides HTTP endpoints for payment store operations
type Handler struct {
	store   *Store
	logger  *slog.Logger
	onReset func()
}

// NewHandler creates a new payments handler
func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// OnReset registers a callback invoked after the store is reset
// (used to announce the reset to stream subscribers).
func (h *Handler) OnReset(fn func()) {
	h.onReset = fn
}

// RegisterRoutes sets up payment routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/payments/pending", h.ListPending)
	r.GET("/payments/:id", h.GetPayment)
	r.POST("/payments/:id/retry", h.RetryPayment)
	r.POST("/payments/:id/escalate", h.EscalatePayment)
	r.POST("/notifications", h.NotifyCustomer)
	r.GET("/actions", h.GetActionLog)
}

// RegisterAdminRoutes sets up admin-only payment routes.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/admin/reset", h.Reset)
}

// ListPending handles GET /payments/pending
func (h *Handler) ListPending(c *gin.Context) {
	limit := queryInt(c, "limit", DefaultPendingLimit)

	pending := h.store.ListPending(c.Request.Context(), limit)
	total := h.store.CountPending(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"payments":    pending,
		"total_count": total,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// GetPayment handles GET /payments/:id
func (h *Handler) GetPayment(c *gin.Context) {
	payment, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		notFound(c, c.Param("id"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// RetryRequest carries the caller's justification for a retry.
type RetryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RetryPayment handles POST /payments/:id/retry
func (h *Handler) RetryPayment(c *gin.Context) {
	var req RetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "reason is required")
		return
	}

	paymentID := c.Param("id")
	ctx, span := traces.StartSpan(c.Request.Context(), "payments.retry", traces.PaymentID(paymentID))
	defer span.End()

	result, err := h.store.Retry(ctx, paymentID, req.Reason)
	switch {
	case errors.Is(err, ErrNotFound):
		notFound(c, paymentID)
		return
	case errors.Is(err, ErrInvalidState):
		metrics.ActionsTotal.WithLabelValues(string(ActionRetry), "invalid_state").Inc()
		c.JSON(http.StatusConflict, gin.H{
			"error":   "invalid_state",
			"message": "Payment " + paymentID + " is not in FAILED status",
		})
		return
	}

	span.SetAttributes(traces.ActionResult(result.Result))
	metrics.ActionsTotal.WithLabelValues(string(ActionRetry), result.Result).Inc()
	h.logger.Info("payment retried",
		"payment_id", paymentID,
		"result", result.Result,
		"retry_count", result.RetryCount,
	)

	c.JSON(http.StatusOK, gin.H{"retry": result})
}

// EscalateRequest describes why a payment needs human review.
type EscalateRequest struct {
	IssueType string `json:"issue_type" binding:"required"`
	Notes     string `json:"notes"`
}

// EscalatePayment handles POST /payments/:id/escalate
func (h *Handler) EscalatePayment(c *gin.Context) {
	var req EscalateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "issue_type is required")
		return
	}

	paymentID := c.Param("id")
	ctx, span := traces.StartSpan(c.Request.Context(), "payments.escalate", traces.PaymentID(paymentID))
	defer span.End()

	escalation, err := h.store.Escalate(ctx, paymentID, req.IssueType, req.Notes)
	if err != nil {
		notFound(c, paymentID)
		return
	}

	metrics.ActionsTotal.WithLabelValues(string(ActionEscalate), "escalated").Inc()
	h.logger.Info("payment escalated",
		"payment_id", paymentID,
		"escalation_id", escalation.EscalationID,
		"issue_type", req.IssueType,
	)

	c.JSON(http.StatusOK, gin.H{"escalation": escalation})
}

// NotifyRequest addresses a message to a customer, optionally tied to a payment.
type NotifyRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PaymentID  string `json:"payment_id"`
	Channel    string `json:"channel"`
}

// NotifyCustomer handles POST /notifications
func (h *Handler) NotifyCustomer(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "customer_id and message are required")
		return
	}
	if req.Channel != "" && req.Channel != "email" && req.Channel != "sms" && req.Channel != "push" {
		badRequest(c, "channel must be one of email, sms, push")
		return
	}

	ctx, span := traces.StartSpan(c.Request.Context(), "payments.notify", traces.CustomerID(req.CustomerID))
	defer span.End()

	n := h.store.Notify(ctx, req.CustomerID, req.Message, req.PaymentID, req.Channel)

	span.SetAttributes(traces.ActionResult(n.Status))
	metrics.ActionsTotal.WithLabelValues(string(ActionNotify), n.Status).Inc()
	h.logger.Info("customer notified",
		"customer_id", req.CustomerID,
		"notification_id", n.NotificationID,
		"channel", n.Channel,
		"status", n.Status,
	)

	c.JSON(http.StatusOK, gin.H{"notification": n})
}

// GetActionLog handles GET /actions
func (h *Handler) GetActionLog(c *gin.Context) {
	limit := queryInt(c, "limit", DefaultLogLimit)

	actions := h.store.ActionLog(c.Request.Context(), limit)
	total := h.store.ActionCount(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"actions":       actions,
		"total_actions": total,
		"limit":         limit,
	})
}

// Reset handles POST /admin/reset
func (h *Handler) Reset(c *gin.Context) {
	h.store.Reset(c.Request.Context())
	h.logger.Info("payment store reset to seed data")
	if h.onReset != nil {
		h.onReset()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "reset",
		"pending_count": h.store.CountPending(c.Request.Context()),
	})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func notFound(c *gin.Context, paymentID string) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   "not_found",
		"message": "Payment " + paymentID + " not found",
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_request",
		"message": msg,
	})
}
