package payments

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresArchive mirrors action log entries to PostgreSQL for a durable
// audit trail. The in-memory log remains the source of truth.
type PostgresArchive struct {
	db *sql.DB
}

// NewPostgresArchive creates a PostgreSQL-backed action log archive.
func NewPostgresArchive(db *sql.DB) *PostgresArchive {
	return &PostgresArchive{db: db}
}

// Migrate creates the action_entries table if it doesn't exist.
// cmd/migrate manages the same schema via goose for deployed environments.
func (a *PostgresArchive) Migrate(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS action_entries (
			id              BIGSERIAL PRIMARY KEY,
			occurred_at     TIMESTAMPTZ NOT NULL,
			action          VARCHAR(20) NOT NULL CHECK (action IN ('RETRY', 'ESCALATE', 'NOTIFY_CUSTOMER')),
			payment_id      VARCHAR(20),
			reason          TEXT,
			result          VARCHAR(10),
			retry_count     INT,
			issue_type      VARCHAR(50),
			notes           TEXT,
			amount          NUMERIC(12,2),
			customer_id     VARCHAR(30),
			channel         VARCHAR(10),
			status          VARCHAR(10),
			notification_id VARCHAR(40)
		);

		CREATE INDEX IF NOT EXISTS idx_action_entries_payment
			ON action_entries (payment_id, occurred_at DESC);
	`)
	return err
}

func (a *PostgresArchive) Record(ctx context.Context, entry *ActionEntry) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO action_entries
			(occurred_at, action, payment_id, reason, result, retry_count,
			 issue_type, notes, amount, customer_id, channel, status, notification_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		entry.Timestamp,
		string(entry.Action),
		nullStr(entry.PaymentID),
		nullStr(entry.Reason),
		nullStr(entry.Result),
		entry.RetryCount,
		nullStr(entry.IssueType),
		nullStr(entry.Notes),
		entry.Amount,
		nullStr(entry.CustomerID),
		nullStr(entry.Channel),
		nullStr(entry.Status),
		nullStr(entry.NotificationID),
	)
	if err != nil {
		return fmt.Errorf("failed to archive action entry: %w", err)
	}
	return nil
}

func (a *PostgresArchive) List(ctx context.Context, limit int) ([]*ActionEntry, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT occurred_at, action, payment_id, reason, result, retry_count,
		       issue_type, notes, amount, customer_id, channel, status, notification_id
		FROM action_entries
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived actions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*ActionEntry
	for rows.Next() {
		var (
			e          ActionEntry
			occurredAt time.Time
			action     string
			retryCount sql.NullInt64
			amount     sql.NullFloat64

			paymentID, reason, res, issueType, notes    sql.NullString
			customerID, channel, status, notificationID sql.NullString
		)
		if err := rows.Scan(&occurredAt, &action, &paymentID, &reason, &res, &retryCount,
			&issueType, &notes, &amount, &customerID, &channel, &status, &notificationID); err != nil {
			continue
		}
		e.Timestamp = occurredAt
		e.Action = Action(action)
		e.PaymentID = paymentID.String
		e.Reason = reason.String
		e.Result = res.String
		e.RetryCount = int(retryCount.Int64)
		e.IssueType = issueType.String
		e.Notes = notes.String
		e.Amount = amount.Float64
		e.CustomerID = customerID.String
		e.Channel = channel.String
		e.Status = status.String
		e.NotificationID = notificationID.String
		result = append(result, &e)
	}
	return result, rows.Err()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
