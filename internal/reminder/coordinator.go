// Package reminder keeps a medicine's expiry reminder in step with its record.
//
// A reminder is identified by the medicine's ID, so each medicine has at most
// one pending reminder. Saving a medicine cancels whatever was pending for it
// and schedules a fresh one when the trigger date is still ahead.
// Reminders are best-effort: failures from the Notifier are logged and never
// block saving or deleting a medicine.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rcliao/medtrack/internal/expiry"
	"github.com/rcliao/medtrack/internal/model"
)

// Notification text.
const (
	Title    = "Medicine Expiry Reminder"
	bodyTmpl = "%s is expiring soon!"
)

// ErrPermissionDenied is returned by a Notifier when the user has not allowed
// notifications.
var ErrPermissionDenied = errors.New("notification permission denied")

// Request describes one reminder to schedule.
type Request struct {
	ID     string
	FireAt time.Time
	Title  string
	Body   string
}

// Notifier schedules and cancels reminders by identifier.
type Notifier interface {
	Schedule(ctx context.Context, req Request) error
	// Cancel removes the pending reminder with id. Unknown ids are not an error.
	Cancel(ctx context.Context, id string) error
}

// SchedulingError reports that a reminder time could not be computed for a
// medicine.
type SchedulingError struct {
	MedicineID string
	Expiry     time.Time
	Err        error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("schedule reminder for %s (expiry %s): %v",
		e.MedicineID, e.Expiry.Format(expiry.DateLayout), e.Err)
}

func (e *SchedulingError) Unwrap() error { return e.Err }

// Outcome says what OnMedicineSaved did about the reminder.
type Outcome string

// Scheduled means a Schedule call was issued; the Notifier may still have
// refused it.
const (
	Scheduled     Outcome = "scheduled"
	NoExpiry      Outcome = "no_expiry"
	TriggerPassed Outcome = "trigger_passed"
	Archived      Outcome = "archived"
)

// Result is returned from OnMedicineSaved.
type Result struct {
	MedicineID string       `json:"medicine_id"`
	State      expiry.State `json:"state"`
	Outcome    Outcome      `json:"outcome"`
	FireAt     *time.Time   `json:"fire_at,omitempty"`
}

// Coordinator maps medicine changes onto Notifier calls.
type Coordinator struct {
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used to report Notifier failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// New returns a Coordinator that drives n.
func New(n Notifier, opts ...Option) *Coordinator {
	c := &Coordinator{
		notifier: n,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// OnMedicineSaved brings the reminder for m in line with its current data.
// It returns a *SchedulingError only when the trigger date cannot be computed.
func (c *Coordinator) OnMedicineSaved(ctx context.Context, m model.Medicine) (Result, error) {
	now := c.now()
	res := Result{MedicineID: m.ID, State: expiry.Classify(now, m.ExpiryDate)}

	c.cancel(ctx, m.ID)

	if m.Archived {
		res.Outcome = Archived
		return res, nil
	}
	if m.ExpiryDate == nil {
		res.Outcome = NoExpiry
		return res, nil
	}

	fireAt, err := expiry.TriggerDate(*m.ExpiryDate)
	if err != nil {
		return res, &SchedulingError{MedicineID: m.ID, Expiry: *m.ExpiryDate, Err: err}
	}
	if !fireAt.After(now) {
		res.Outcome = TriggerPassed
		return res, nil
	}

	req := Request{
		ID:     m.ID,
		FireAt: fireAt,
		Title:  Title,
		Body:   fmt.Sprintf(bodyTmpl, m.Name),
	}
	if err := c.notifier.Schedule(ctx, req); err != nil {
		c.logFailure("schedule", m.ID, err)
	}

	res.Outcome = Scheduled
	res.FireAt = &fireAt
	return res, nil
}

// OnMedicineDeleted cancels any pending reminder for m.
func (c *Coordinator) OnMedicineDeleted(ctx context.Context, m model.Medicine) {
	c.cancel(ctx, m.ID)
}

// Resync re-applies OnMedicineSaved to every medicine, for example after an
// import. Scheduling errors are collected and do not stop the pass.
func (c *Coordinator) Resync(ctx context.Context, meds []model.Medicine) ([]Result, error) {
	results := make([]Result, 0, len(meds))
	var errs []error
	for _, m := range meds {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := c.OnMedicineSaved(ctx, m)
		if err != nil {
			errs = append(errs, err)
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

func (c *Coordinator) cancel(ctx context.Context, id string) {
	if err := c.notifier.Cancel(ctx, id); err != nil {
		c.logFailure("cancel", id, err)
	}
}

func (c *Coordinator) logFailure(op, id string, err error) {
	if errors.Is(err, ErrPermissionDenied) {
		c.logger.Warn("reminder skipped: notifications not permitted", "op", op, "medicine_id", id)
		return
	}
	c.logger.Error("reminder failed", "op", op, "medicine_id", id, "error", err)
}
