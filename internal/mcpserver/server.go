package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/triagehq/paymentops/internal/payments"
)

// NewMCPServer creates a configured MCP server with all payment-ops tools
// registered against the given store.
func NewMCPServer(store *payments.Store) *server.MCPServer {
	s := server.NewMCPServer("payment-ops", "1.0.0")
	h := NewHandlers(store)

	s.AddTool(ToolGetPendingPayments, h.HandleGetPendingPayments)
	s.AddTool(ToolGetPaymentDetails, h.HandleGetPaymentDetails)
	s.AddTool(ToolRetryPayment, h.HandleRetryPayment)
	s.AddTool(ToolEscalatePayment, h.HandleEscalatePayment)
	s.AddTool(ToolAssessPaymentRisk, h.HandleAssessPaymentRisk)
	s.AddTool(ToolNotifyCustomer, h.HandleNotifyCustomer)
	s.AddTool(ToolGetActionLog, h.HandleGetActionLog)

	return s
}
