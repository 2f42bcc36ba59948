package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rcliao/medtrack/internal/model"
)

func TestReminderUpsertKeepsOnePerMedicine(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	fire := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	s.PutReminder(ctx, model.Reminder{MedicineID: "m1", FireAt: fire, Title: "t", Body: "b1"})
	s.PutReminder(ctx, model.Reminder{MedicineID: "m1", FireAt: fire.AddDate(0, 0, 5), Title: "t", Body: "b2"})

	pending, err := s.PendingReminders(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(pending))
	}
	if pending[0].Body != "b2" || !pending[0].FireAt.Equal(fire.AddDate(0, 0, 5)) {
		t.Errorf("expected latest reminder, got %+v", pending[0])
	}
}

func TestReminderDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.PutReminder(ctx, model.Reminder{MedicineID: "m1", FireAt: time.Now().Add(time.Hour), Title: "t", Body: "b"})

	existed, err := s.DeleteReminder(ctx, "m1")
	if err != nil || !existed {
		t.Fatalf("expected delete of existing reminder, got %v %v", existed, err)
	}
	existed, err = s.DeleteReminder(ctx, "m1")
	if err != nil || existed {
		t.Fatalf("expected no-op delete, got %v %v", existed, err)
	}
}

func TestDueAndDelivered(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s.PutReminder(ctx, model.Reminder{MedicineID: "past", FireAt: now.Add(-time.Hour), Title: "t", Body: "b"})
	s.PutReminder(ctx, model.Reminder{MedicineID: "exact", FireAt: now, Title: "t", Body: "b"})
	s.PutReminder(ctx, model.Reminder{MedicineID: "future", FireAt: now.Add(time.Hour), Title: "t", Body: "b"})

	due, err := s.DueReminders(ctx, now)
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 2 || due[0].MedicineID != "past" || due[1].MedicineID != "exact" {
		t.Fatalf("unexpected due reminders: %+v", due)
	}

	if err := s.MarkDelivered(ctx, "past", "d-1", now); err != nil {
		t.Fatalf("mark delivered: %v", err)
	}
	if err := s.MarkDelivered(ctx, "past", "d-2", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for already delivered, got %v", err)
	}

	pending, _ := s.PendingReminders(ctx)
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending after delivery, got %d", len(pending))
	}

	// A delivered reminder is not pending, so cancelling it is a no-op.
	existed, _ := s.DeleteReminder(ctx, "past")
	if existed {
		t.Error("delivered reminder should not be cancellable")
	}
}
