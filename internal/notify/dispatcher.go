package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rcliao/medtrack/internal/model"
)

// Sink presents a fired reminder to the user.
type Sink interface {
	Deliver(ctx context.Context, r model.Reminder) error
}

// WriterSink prints reminders as single lines.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Deliver(_ context.Context, r model.Reminder) error {
	_, err := fmt.Fprintf(s.W, "%s  %s: %s\n", r.FireAt.Local().Format("2006-01-02"), r.Title, r.Body)
	return err
}

// Dispatcher fires reminders that have come due.
type Dispatcher struct {
	store  ReminderStore
	sink   Sink
	logger *slog.Logger
}

// NewDispatcher returns a Dispatcher. sink may be nil, in which case
// reminders are only logged and marked delivered.
func NewDispatcher(store ReminderStore, sink Sink, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{store: store, sink: sink, logger: logger}
}

// Dispatch delivers every pending reminder whose fire time is not after now
// and returns the ones delivered. A reminder whose delivery fails stays
// pending for the next run.
func (d *Dispatcher) Dispatch(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	due, err := d.store.DueReminders(ctx, now)
	if err != nil {
		return nil, errors.Wrap(err, "load due reminders")
	}

	var delivered []model.Reminder
	var failed int
	for _, r := range due {
		if d.sink != nil {
			if err := d.sink.Deliver(ctx, r); err != nil {
				d.logger.Error("deliver reminder", "medicine_id", r.MedicineID, "error", err)
				failed++
				continue
			}
		}

		deliveryID := uuid.NewString()
		at := now
		if err := d.store.MarkDelivered(ctx, r.MedicineID, deliveryID, at); err != nil {
			d.logger.Error("mark reminder delivered", "medicine_id", r.MedicineID, "error", err)
			failed++
			continue
		}
		r.DeliveredAt = &at
		r.DeliveryID = deliveryID
		delivered = append(delivered, r)

		d.logger.Info("reminder delivered",
			"medicine_id", r.MedicineID,
			"delivery_id", deliveryID,
			"fire_at", r.FireAt.Format(time.RFC3339))
	}

	if failed > 0 {
		return delivered, errors.Errorf("%d of %d reminders failed", failed, len(due))
	}
	return delivered, nil
}
