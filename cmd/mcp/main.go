// Payment-ops MCP server - exposes the payment store as MCP tools for LLMs
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/triagehq/paymentops/internal/config"
	"github.com/triagehq/paymentops/internal/mcpserver"
	"github.com/triagehq/paymentops/internal/payments"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	store := payments.NewStore(
		payments.WithRetryOutcome(payments.ProbabilityOutcome(cfg.RetrySuccessRate)),
		payments.WithNotifyOutcome(payments.ProbabilityOutcome(cfg.NotifySuccessRate)),
	)

	s := mcpserver.NewMCPServer(store)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
		os.Exit(1)
	}
}
