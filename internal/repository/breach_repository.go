package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lcibils/monitor-neuratek/internal/domain"
)

// BreachRepository persists the audit log of detected SLA breaches.
type BreachRepository struct {
	pool *pgxpool.Pool
}

// NewBreachRepository constructs the repository. A nil pool disables
// persistence; Record becomes a no-op.
func NewBreachRepository(pool *pgxpool.Pool) *BreachRepository {
	return &BreachRepository{pool: pool}
}

// Record inserts a breach once per ticket and deadline column. Re-detecting
// the same breach on later cycles is expected and ignored.
func (r *BreachRepository) Record(ctx context.Context, record domain.BreachRecord) error {
	if r == nil || r.pool == nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO breach_events (id, ticket_id, customer_name, category, deadline_column, deadline, detected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticket_id, deadline_column) DO NOTHING`,
		record.ID,
		record.TicketID,
		record.CustomerName,
		record.Category,
		string(record.Column),
		record.Deadline,
		record.DetectedAt,
	)
	return err
}

// CountForCustomer returns how many breaches have been recorded for a
// customer, for the readiness of simple reporting endpoints.
func (r *BreachRepository) CountForCustomer(ctx context.Context, customer string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, nil
	}
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM breach_events WHERE customer_name = $1`, customer,
	).Scan(&count)
	return count, err
}
