package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rhallewell/wardroster/pkg/core/model"
)

// GetSchedule returns the stored schedule for the month key, or nil if no
// schedule is stored for that month.
func (db *DB) GetSchedule(ctx context.Context, monthKey string) (*model.Schedule, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx, `
		SELECT payload FROM schedule WHERE month_key = $1
	`, monthKey).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule %s: %w", monthKey, err)
	}

	var schedule model.Schedule
	if err := json.Unmarshal(payload, &schedule); err != nil {
		return nil, fmt.Errorf("failed to decode schedule %s: %w", monthKey, err)
	}
	return &schedule, nil
}

// UpsertSchedule stores a schedule under the month key, replacing any
// existing entry in a single statement.
func (db *DB) UpsertSchedule(ctx context.Context, monthKey string, schedule *model.Schedule) error {
	payload, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("failed to encode schedule %s: %w", monthKey, err)
	}

	_, err = db.pool.Exec(ctx, `
		INSERT INTO schedule (month_key, schedule_id, month, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (month_key) DO UPDATE
		SET schedule_id = EXCLUDED.schedule_id,
		    month = EXCLUDED.month,
		    payload = EXCLUDED.payload,
		    generated_at = NOW()
	`, monthKey, schedule.ID, schedule.Month, payload)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule %s: %w", monthKey, err)
	}
	return nil
}

// DeleteAllSchedules clears the entire schedule history.
func (db *DB) DeleteAllSchedules(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM schedule`); err != nil {
		return fmt.Errorf("failed to delete schedules: %w", err)
	}
	return nil
}

// ListMonthKeys returns the keys of all stored schedules, sorted.
func (db *DB) ListMonthKeys(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT month_key FROM schedule ORDER BY month_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query month keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan month key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating month keys: %w", err)
	}
	return keys, nil
}
