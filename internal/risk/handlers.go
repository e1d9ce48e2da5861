package risk

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/triagehq/paymentops/internal/metrics"
	"github.com/triagehq/paymentops/internal/payments"
)

// PaymentGetter resolves payment ids for assessment endpoints.
type PaymentGetter interface {
	Get(ctx context.Context, paymentID string) (*payments.Payment, error)
}

// Handler provides HTTP endpoints for risk assessment and routing
type Handler struct {
	store  PaymentGetter
	logger *slog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(store PaymentGetter, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes sets up risk routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/payments/:id/risk", h.AssessPayment)
	r.GET("/payments/:id/route", h.RoutePayment)
}

// AssessPayment handles GET /payments/:id/risk. An unknown id yields the
// UNKNOWN sentinel assessment with HTTP 200, not an error: agent callers
// branch on the payload.
func (h *Handler) AssessPayment(c *gin.Context) {
	paymentID := c.Param("id")

	p, err := h.store.Get(c.Request.Context(), paymentID)
	if errors.Is(err, payments.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"assessment": AssessUnknown(paymentID)})
		return
	}

	assessment := Assess(p)
	metrics.RiskAssessmentsTotal.WithLabelValues(string(assessment.Level)).Inc()
	h.logger.Info("payment assessed",
		"payment_id", paymentID,
		"risk_level", assessment.Level,
		"factors", len(assessment.Factors),
	)

	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}

// RoutePayment handles GET /payments/:id/route
func (h *Handler) RoutePayment(c *gin.Context) {
	paymentID := c.Param("id")

	p, err := h.store.Get(c.Request.Context(), paymentID)
	if errors.Is(err, payments.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Payment " + paymentID + " not found",
		})
		return
	}

	decision := Route(p)
	metrics.RoutingDecisionsTotal.WithLabelValues(string(decision)).Inc()

	c.JSON(http.StatusOK, gin.H{
		"payment_id": paymentID,
		"route":      decision,
	})
}
