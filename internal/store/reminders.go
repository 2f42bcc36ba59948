package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rcliao/medtrack/internal/model"
)

// PutReminder queues r, replacing any reminder for the same medicine.
func (s *SQLiteStore) PutReminder(ctx context.Context, r model.Reminder) error {
	if r.ScheduledAt.IsZero() {
		r.ScheduledAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO reminders (medicine_id, fire_at, title, body, scheduled_at, delivered_at, delivery_id)
		 VALUES (?, ?, ?, ?, ?, NULL, NULL)`,
		r.MedicineID, r.FireAt.UTC().Format(time.RFC3339), r.Title, r.Body,
		r.ScheduledAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put reminder: %w", err)
	}
	return nil
}

// DeleteReminder removes the pending reminder for a medicine. It returns
// whether one existed.
func (s *SQLiteStore) DeleteReminder(ctx context.Context, medicineID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM reminders WHERE medicine_id = ? AND delivered_at IS NULL`, medicineID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// PendingReminders lists reminders not yet delivered, soonest first.
func (s *SQLiteStore) PendingReminders(ctx context.Context) ([]model.Reminder, error) {
	return s.queryReminders(ctx,
		`WHERE delivered_at IS NULL ORDER BY fire_at ASC`)
}

// DueReminders lists pending reminders whose fire time is not after now.
func (s *SQLiteStore) DueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	return s.queryReminders(ctx,
		`WHERE delivered_at IS NULL AND fire_at <= ? ORDER BY fire_at ASC`,
		now.UTC().Format(time.RFC3339))
}

// MarkDelivered records that a reminder fired.
func (s *SQLiteStore) MarkDelivered(ctx context.Context, medicineID, deliveryID string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE reminders SET delivered_at = ?, delivery_id = ? WHERE medicine_id = ? AND delivered_at IS NULL`,
		at.UTC().Format(time.RFC3339), deliveryID, medicineID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("reminder %s: %w", medicineID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) queryReminders(ctx context.Context, clause string, args ...interface{}) ([]model.Reminder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT medicine_id, fire_at, title, body, scheduled_at, delivered_at, delivery_id
		 FROM reminders `+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		var r model.Reminder
		var fireAt, scheduledAt string
		var deliveredAt, deliveryID sql.NullString
		if err := rows.Scan(&r.MedicineID, &fireAt, &r.Title, &r.Body, &scheduledAt, &deliveredAt, &deliveryID); err != nil {
			return nil, err
		}
		r.FireAt, _ = time.Parse(time.RFC3339, fireAt)
		r.ScheduledAt, _ = time.Parse(time.RFC3339, scheduledAt)
		if deliveredAt.Valid {
			t, _ := time.Parse(time.RFC3339, deliveredAt.String)
			r.DeliveredAt = &t
		}
		r.DeliveryID = deliveryID.String
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}
