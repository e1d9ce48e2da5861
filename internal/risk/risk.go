// Package risk implements deterministic risk scoring and routing for failed
// payments.
//
// Every payment is evaluated against a fixed rule table: transaction amount,
// customer tier, error code, and compliance notes. The result is an ordinal
// risk level (LOW < MEDIUM < HIGH) with the contributing factors spelled out,
// plus an independent routing decision that says which specialist should own
// the payment. Both functions are pure — same input, same output.
package risk

// Level is the ordinal risk classification driving escalation policy.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"

	// LevelUnknown is the sentinel for assessments of missing payments.
	// It is a result, not an error, so agent callers can react to it.
	LevelUnknown Level = "UNKNOWN"
)

// severity orders levels for max() comparisons. Unknown never participates.
var severity = map[Level]int{
	LevelLow:    0,
	LevelMedium: 1,
	LevelHigh:   2,
}

// Assessment is the result of scoring a single payment.
type Assessment struct {
	PaymentID      string   `json:"payment_id"`
	Level          Level    `json:"risk_level"`
	Factors        []string `json:"risk_factors"`
	Recommendation string   `json:"recommendation"`
}

// Decision says which workflow should own a failed payment.
type Decision string

const (
	// RouteCompliance hands the payment to the compliance specialist.
	RouteCompliance Decision = "compliance"
	// RouteCustomerService hands the payment to the customer-service specialist.
	RouteCustomerService Decision = "customer_service"
	// RouteDirect keeps the payment with the orchestrator (retry / low-touch).
	RouteDirect Decision = "direct"
)

// Thresholds. Scoring and routing deliberately carry separate threshold
// sets; each set is owned by exactly one function.
const (
	HighAmountThreshold     = 10000.0 // scoring: HIGH
	ElevatedAmountThreshold = 3000.0  // scoring: MEDIUM

	ComplianceAmountThreshold = 3000.0 // routing: compliance
	TierAmountThreshold       = 2000.0 // routing: compliance for vip/business
)

// Recommendation texts per level.
const (
	recommendHigh    = "Escalate to compliance team for manual review"
	recommendMedium  = "Review transaction details before processing"
	recommendLow     = "Standard processing acceptable"
	recommendUnknown = "Payment ID invalid"
)
