package payments

import "time"

// seedPayments returns a fresh copy of the fixed demo dataset. The mix covers
// every error code, all three customer tiers, and the borderline amounts the
// risk and routing thresholds care about.
func seedPayments() []Payment {
	return []Payment{
		{
			PaymentID:    "PAY-12345",
			Amount:       1500.00,
			Status:       StatusFailed,
			ErrorCode:    ErrInsufficientFunds,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-15T10:30:00Z"),
			CustomerID:   "CUST-789",
			CustomerTier: TierStandard,
			Description:  "Monthly subscription payment",
			CreatedAt:    ts("2025-06-15T10:29:45Z"),
		},
		{
			PaymentID:    "PAY-12346",
			Amount:       250.00,
			Status:       StatusFailed,
			ErrorCode:    ErrTechnicalFailure,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-27T14:15:00Z"),
			CustomerID:   "CUST-790",
			CustomerTier: TierStandard,
			Description:  "One-time purchase",
			CreatedAt:    ts("2025-06-27T14:14:30Z"),
		},
		{
			PaymentID:    "PAY-12347",
			Amount:       3200.00,
			Status:       StatusFailed,
			ErrorCode:    ErrComplianceHold,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-26T09:45:00Z"),
			CustomerID:   "CUST-791",
			CustomerTier: TierStandard,
			Description:  "High-value transaction",
			CreatedAt:    ts("2025-06-26T09:44:15Z"),
		},
		{
			PaymentID:    "PAY-12348",
			Amount:       75.00,
			Status:       StatusFailed,
			ErrorCode:    ErrCardDeclined,
			RetryCount:   2,
			LastAttempt:  ts("2025-06-25T16:20:00Z"),
			CustomerID:   "CUST-792",
			CustomerTier: TierStandard,
			Description:  "Small purchase",
			CreatedAt:    ts("2025-06-25T16:18:00Z"),
		},
		{
			PaymentID:    "PAY-12349",
			Amount:       890.00,
			Status:       StatusFailed,
			ErrorCode:    ErrTechnicalFailure,
			RetryCount:   1,
			LastAttempt:  ts("2025-06-20T11:30:00Z"),
			CustomerID:   "CUST-793",
			CustomerTier: TierStandard,
			Description:  "Service payment",
			CreatedAt:    ts("2025-06-20T11:29:00Z"),
		},
		{
			PaymentID:    "PAY-12350",
			Amount:       120.00,
			Status:       StatusPending,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-28T08:00:00Z"),
			CustomerID:   "CUST-794",
			CustomerTier: TierStandard,
			Description:  "Processing payment",
			CreatedAt:    ts("2025-06-28T07:59:30Z"),
		},
		{
			PaymentID:    "PAY-13001",
			Amount:       4500.00,
			Status:       StatusFailed,
			ErrorCode:    ErrInsufficientFunds,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-28T15:30:00Z"),
			CustomerID:   "CUST-VIP-001",
			CustomerTier: TierVIP,
			Description:  "VIP premium service payment",
			CreatedAt:    ts("2025-06-28T15:29:00Z"),
		},
		{
			PaymentID:    "PAY-13002",
			Amount:       12500.00,
			Status:       StatusFailed,
			ErrorCode:    ErrComplianceHold,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-28T16:00:00Z"),
			CustomerID:   "CUST-VIP-002",
			CustomerTier: TierVIP,
			Description:  "VIP large transaction",
			CreatedAt:    ts("2025-06-28T15:58:00Z"),
		},
		{
			PaymentID:       "PAY-13003",
			Amount:          2999.00,
			Status:          StatusFailed,
			ErrorCode:       ErrComplianceHold,
			RetryCount:      0,
			LastAttempt:     ts("2025-06-28T12:00:00Z"),
			CustomerID:      "CUST-850",
			CustomerTier:    TierStandard,
			Description:     "Borderline high-value purchase",
			ComplianceNotes: "Just under $3000 threshold, review recommended",
			CreatedAt:       ts("2025-06-28T11:58:00Z"),
		},
		{
			PaymentID:       "PAY-13004",
			Amount:          5000.00,
			Status:          StatusFailed,
			ErrorCode:       ErrUnknownError,
			RetryCount:      0,
			LastAttempt:     ts("2025-06-28T13:15:00Z"),
			CustomerID:      "CUST-851",
			CustomerTier:    TierStandard,
			Description:     "Unusual error requiring investigation",
			ComplianceNotes: "Unknown error on high-value transaction",
			CreatedAt:       ts("2025-06-28T13:14:00Z"),
		},
		{
			PaymentID:    "PAY-13005",
			Amount:       450.00,
			Status:       StatusFailed,
			ErrorCode:    ErrTechnicalFailure,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-29T08:00:00Z"),
			CustomerID:   "CUST-852",
			CustomerTier: TierStandard,
			Description:  "Fresh technical failure - retry eligible",
			CreatedAt:    ts("2025-06-29T07:58:00Z"),
		},
		{
			PaymentID:    "PAY-13006",
			Amount:       325.00,
			Status:       StatusFailed,
			ErrorCode:    ErrTechnicalFailure,
			RetryCount:   1,
			LastAttempt:  ts("2025-06-28T14:00:00Z"),
			CustomerID:   "CUST-853",
			CustomerTier: TierStandard,
			Description:  "Technical failure - at retry limit",
			CreatedAt:    ts("2025-06-28T13:58:00Z"),
		},
		{
			PaymentID:       "PAY-13007",
			Amount:          8750.00,
			Status:          StatusFailed,
			ErrorCode:       ErrComplianceHold,
			RetryCount:      0,
			LastAttempt:     ts("2025-06-28T10:30:00Z"),
			CustomerID:      "CUST-BIZ-001",
			CustomerTier:    TierBusiness,
			Description:     "B2B invoice payment",
			ComplianceNotes: "Business account, higher threshold",
			CreatedAt:       ts("2025-06-28T10:28:00Z"),
		},
		{
			PaymentID:    "PAY-13008",
			Amount:       2250.00,
			Status:       StatusFailed,
			ErrorCode:    ErrInsufficientFunds,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-28T11:45:00Z"),
			CustomerID:   "CUST-BIZ-002",
			CustomerTier: TierBusiness,
			Description:  "Business subscription renewal",
			CreatedAt:    ts("2025-06-28T11:43:00Z"),
		},
		{
			PaymentID:       "PAY-13009",
			Amount:          1875.00,
			Status:          StatusFailed,
			ErrorCode:       ErrCardDeclined,
			RetryCount:      1,
			LastAttempt:     ts("2025-06-28T09:15:00Z"),
			CustomerID:      "CUST-INTL-001",
			CustomerTier:    TierStandard,
			Description:     "International card payment",
			ComplianceNotes: "International transaction",
			CreatedAt:       ts("2025-06-28T09:13:00Z"),
		},
		{
			PaymentID:       "PAY-13010",
			Amount:          15000.00,
			Status:          StatusFailed,
			ErrorCode:       ErrComplianceHold,
			RetryCount:      0,
			LastAttempt:     ts("2025-06-28T14:30:00Z"),
			CustomerID:      "CUST-INTL-002",
			CustomerTier:    TierVIP,
			Description:     "Large international transfer",
			ComplianceNotes: "High-value international, requires enhanced review",
			CreatedAt:       ts("2025-06-28T14:28:00Z"),
		},
		{
			PaymentID:       "PAY-13011",
			Amount:          99.99,
			Status:          StatusFailed,
			ErrorCode:       ErrComplianceHold,
			RetryCount:      0,
			LastAttempt:     ts("2025-06-28T16:45:00Z"),
			CustomerID:      "CUST-854",
			CustomerTier:    TierStandard,
			Description:     "Small amount compliance hold (unusual)",
			ComplianceNotes: "Small transaction flagged - investigate pattern",
			CreatedAt:       ts("2025-06-28T16:43:00Z"),
		},
		{
			PaymentID:    "PAY-13012",
			Amount:       750.00,
			Status:       StatusFailed,
			ErrorCode:    ErrInsufficientFunds,
			RetryCount:   1,
			LastAttempt:  ts("2025-06-27T17:00:00Z"),
			CustomerID:   "CUST-855",
			CustomerTier: TierStandard,
			Description:  "Insufficient funds after retry",
			CreatedAt:    ts("2025-06-27T16:58:00Z"),
		},
		{
			PaymentID:    "PAY-13013",
			Amount:       425.00,
			Status:       StatusFailed,
			ErrorCode:    ErrTechnicalFailure,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-29T06:00:00Z"),
			CustomerID:   "CUST-856",
			CustomerTier: TierStandard,
			Description:  "Recent failure - immediate retry eligible",
			CreatedAt:    ts("2025-06-29T05:58:00Z"),
		},
		{
			PaymentID:    "PAY-13014",
			Amount:       1200.00,
			Status:       StatusFailed,
			ErrorCode:    ErrTechnicalFailure,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-26T08:00:00Z"),
			CustomerID:   "CUST-857",
			CustomerTier: TierStandard,
			Description:  "Older technical failure",
			CreatedAt:    ts("2025-06-26T07:58:00Z"),
		},
		{
			PaymentID:    "PAY-13015",
			Amount:       350.00,
			Status:       StatusFailed,
			ErrorCode:    ErrCardDeclined,
			RetryCount:   0,
			LastAttempt:  ts("2025-06-28T18:30:00Z"),
			CustomerID:   "CUST-858",
			CustomerTier: TierStandard,
			Description:  "First-time card decline",
			CreatedAt:    ts("2025-06-28T18:28:00Z"),
		},
	}
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic("invalid seed timestamp: " + s)
	}
	return t
}
