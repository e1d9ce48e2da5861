package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the payment-ops MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var ToolGetPendingPayments = mcp.NewTool("get_pending_payments",
	mcp.WithDescription(
		"Get failed payments that require attention. "+
			"Returns payment records with amount, error code, customer tier, and retry count. "+
			"Use this first to see what needs handling."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of payments to return (default 10)")),
)

var ToolGetPaymentDetails = mcp.NewTool("get_payment_details",
	mcp.WithDescription(
		"Get detailed information for a specific payment, including compliance notes "+
			"and attempt timestamps."),
	mcp.WithString("payment_id",
		mcp.Required(),
		mcp.Description("The payment ID to look up (e.g. 'PAY-12345')")),
)

var ToolRetryPayment = mcp.NewTool("retry_payment",
	mcp.WithDescription(
		"Retry a failed payment. Only valid for payments in FAILED status. "+
			"Returns SUCCESS or FAILED plus the updated retry count; the attempt is "+
			"recorded in the action log either way."),
	mcp.WithString("payment_id",
		mcp.Required(),
		mcp.Description("The payment ID to retry")),
	mcp.WithString("reason",
		mcp.Required(),
		mcp.Description("Reason for the retry attempt")),
)

var ToolEscalatePayment = mcp.NewTool("escalate_payment",
	mcp.WithDescription(
		"Escalate a payment to human review. Marks the payment ESCALATED and returns "+
			"an escalation ID. Use for compliance holds, high amounts, or anything "+
			"a retry cannot fix."),
	mcp.WithString("payment_id",
		mcp.Required(),
		mcp.Description("The payment ID to escalate")),
	mcp.WithString("issue_type",
		mcp.Required(),
		mcp.Description("Type of issue (e.g. 'compliance', 'technical', 'customer')")),
	mcp.WithString("notes",
		mcp.Description("Detailed notes about the issue")),
)

var ToolAssessPaymentRisk = mcp.NewTool("assess_payment_risk",
	mcp.WithDescription(
		"Assess the risk level of a payment for compliance review. "+
			"Returns LOW, MEDIUM, or HIGH with the contributing risk factors and a "+
			"recommendation. Deterministic: same payment, same answer."),
	mcp.WithString("payment_id",
		mcp.Required(),
		mcp.Description("The payment ID to assess")),
)

var ToolNotifyCustomer = mcp.NewTool("notify_customer",
	mcp.WithDescription(
		"Send a notification to a customer about their payment. "+
			"Returns a notification ID and SENT or FAILED delivery status."),
	mcp.WithString("customer_id",
		mcp.Required(),
		mcp.Description("The customer ID to notify (e.g. 'CUST-789')")),
	mcp.WithString("message",
		mcp.Required(),
		mcp.Description("The notification message")),
	mcp.WithString("payment_id",
		mcp.Description("Optional payment ID for context")),
	mcp.WithString("channel",
		mcp.Description("Communication channel (default 'email')"),
		mcp.Enum("email", "sms", "push")),
)

var ToolGetActionLog = mcp.NewTool("get_action_log",
	mcp.WithDescription(
		"Get recent actions performed against the payment store, for audit and "+
			"debugging. Entries are in chronological order."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of log entries to return (default 20)")),
)
