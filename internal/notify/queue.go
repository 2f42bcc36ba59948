// Package notify implements the reminder Notifier on top of the local
// SQLite reminder queue, and fires queued reminders when they come due.
package notify

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/rcliao/medtrack/internal/model"
	"github.com/rcliao/medtrack/internal/reminder"
)

// ReminderStore persists queued reminders.
type ReminderStore interface {
	PutReminder(ctx context.Context, r model.Reminder) error
	DeleteReminder(ctx context.Context, medicineID string) (bool, error)
	DueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error)
	MarkDelivered(ctx context.Context, medicineID, deliveryID string, at time.Time) error
}

// Queue schedules reminders by writing them to a ReminderStore.
type Queue struct {
	store   ReminderStore
	enabled bool
	now     func() time.Time
}

var _ reminder.Notifier = (*Queue)(nil)

// NewQueue returns a Queue. A disabled queue behaves like a device where the
// user denied notification permission.
func NewQueue(store ReminderStore, enabled bool) *Queue {
	return &Queue{store: store, enabled: enabled, now: time.Now}
}

// Schedule queues req, replacing any reminder with the same ID.
func (q *Queue) Schedule(ctx context.Context, req reminder.Request) error {
	if !q.enabled {
		return reminder.ErrPermissionDenied
	}
	err := q.store.PutReminder(ctx, model.Reminder{
		MedicineID:  req.ID,
		FireAt:      req.FireAt,
		Title:       req.Title,
		Body:        req.Body,
		ScheduledAt: q.now(),
	})
	return errors.Wrapf(err, "queue reminder %s", req.ID)
}

// Cancel removes the pending reminder with id, if any.
func (q *Queue) Cancel(ctx context.Context, id string) error {
	_, err := q.store.DeleteReminder(ctx, id)
	return errors.Wrapf(err, "cancel reminder %s", id)
}
