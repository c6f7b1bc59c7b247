package db

import (
	"context"

	"attrition/internal/models"
)

// IncrementOutcome adds one to the running count of an assessment outcome.
// Only the outcome label is stored, never the employee's inputs.
func (d *DB) IncrementOutcome(ctx context.Context, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO prediction_outcomes (outcome, count, last_seen_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (outcome) DO UPDATE
		SET count = prediction_outcomes.count + 1, last_seen_at = NOW()
	`, outcome)
	return err
}

// GetOutcomeCounts returns all outcome counts for metrics export.
func (d *DB) GetOutcomeCounts(ctx context.Context) ([]models.OutcomeCount, error) {
	rows, err := d.Pool.Query(ctx, `SELECT outcome, count, last_seen_at FROM prediction_outcomes ORDER BY outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.OutcomeCount
	for rows.Next() {
		var c models.OutcomeCount
		if err := rows.Scan(&c.Outcome, &c.Count, &c.LastSeenAt); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
