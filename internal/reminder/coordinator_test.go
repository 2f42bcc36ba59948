package reminder

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/medtrack/internal/expiry"
	"github.com/rcliao/medtrack/internal/model"
)

type call struct {
	op string
	id string
}

type fakeNotifier struct {
	pending     map[string]Request
	calls       []call
	scheduleErr error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{pending: map[string]Request{}}
}

func (f *fakeNotifier) Schedule(_ context.Context, req Request) error {
	f.calls = append(f.calls, call{"schedule", req.ID})
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.pending[req.ID] = req
	return nil
}

func (f *fakeNotifier) Cancel(_ context.Context, id string) error {
	f.calls = append(f.calls, call{"cancel", id})
	delete(f.pending, id)
	return nil
}

var now = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func today(offset int) *time.Time {
	d := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &d
}

func newTestCoordinator(n Notifier) *Coordinator {
	return New(n, WithClock(func() time.Time { return now }))
}

func TestSaveSchedulesReminder(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)

	res, err := c.OnMedicineSaved(context.Background(), model.Medicine{ID: "med-1", Name: "Amoxicillin", ExpiryDate: today(10)})
	require.NoError(t, err)

	assert.Equal(t, expiry.Fresh, res.State)
	assert.Equal(t, Scheduled, res.Outcome)
	require.NotNil(t, res.FireAt)
	assert.Equal(t, *today(3), *res.FireAt)

	require.Len(t, n.pending, 1)
	req := n.pending["med-1"]
	assert.Equal(t, *today(3), req.FireAt)
	assert.Equal(t, Title, req.Title)
	assert.Equal(t, "Amoxicillin is expiring soon!", req.Body)
	assert.Equal(t, []call{{"cancel", "med-1"}, {"schedule", "med-1"}}, n.calls)
}

func TestSaveTwiceKeepsOneReminder(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)
	m := model.Medicine{ID: "med-1", Name: "Amoxicillin", ExpiryDate: today(30)}

	_, err := c.OnMedicineSaved(context.Background(), m)
	require.NoError(t, err)
	_, err = c.OnMedicineSaved(context.Background(), m)
	require.NoError(t, err)

	require.Len(t, n.pending, 1)
	assert.Contains(t, n.pending, "med-1")
	assert.Equal(t, *today(23), n.pending["med-1"].FireAt)
}

func TestSaveExpiringSoonWithPastTrigger(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)

	res, err := c.OnMedicineSaved(context.Background(), model.Medicine{ID: "med-2", Name: "Cetirizine", ExpiryDate: today(3)})
	require.NoError(t, err)

	assert.Equal(t, expiry.ExpiringSoon, res.State)
	assert.Equal(t, TriggerPassed, res.Outcome)
	assert.Nil(t, res.FireAt)
	assert.Empty(t, n.pending)
}

func TestSaveExpiredMedicine(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)

	res, err := c.OnMedicineSaved(context.Background(), model.Medicine{ID: "med-3", Name: "Old syrup", ExpiryDate: today(-1)})
	require.NoError(t, err)

	assert.Equal(t, expiry.Expired, res.State)
	assert.Equal(t, TriggerPassed, res.Outcome)
	assert.Empty(t, n.pending)
}

func TestSaveTriggerToday(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)

	// The trigger is midnight today, which is already behind now.
	res, err := c.OnMedicineSaved(context.Background(), model.Medicine{ID: "med-4", Name: "Drops", ExpiryDate: today(7)})
	require.NoError(t, err)
	assert.Equal(t, expiry.ExpiringSoon, res.State)
	assert.Equal(t, TriggerPassed, res.Outcome)
	assert.Empty(t, n.pending)
}

func TestSaveEditMovesExpiryIntoPast(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)
	m := model.Medicine{ID: "med-5", Name: "Drops", ExpiryDate: today(20)}

	_, err := c.OnMedicineSaved(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, n.pending, 1)

	m.ExpiryDate = today(-2)
	_, err = c.OnMedicineSaved(context.Background(), m)
	require.NoError(t, err)
	assert.Empty(t, n.pending)
}

func TestSaveWithoutExpiry(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)

	res, err := c.OnMedicineSaved(context.Background(), model.Medicine{ID: "med-6", Name: "Vitamin D"})
	require.NoError(t, err)
	assert.Equal(t, expiry.Fresh, res.State)
	assert.Equal(t, NoExpiry, res.Outcome)
	assert.Empty(t, n.pending)
}

func TestSaveArchivedCancels(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)
	m := model.Medicine{ID: "med-7", Name: "Drops", ExpiryDate: today(20)}

	_, err := c.OnMedicineSaved(context.Background(), m)
	require.NoError(t, err)

	m.Archived = true
	res, err := c.OnMedicineSaved(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, Archived, res.Outcome)
	assert.Empty(t, n.pending)
}

func TestSaveInvalidExpiryIsSchedulingError(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)
	var zero time.Time

	_, err := c.OnMedicineSaved(context.Background(), model.Medicine{ID: "med-8", Name: "Broken", ExpiryDate: &zero})
	require.Error(t, err)

	var serr *SchedulingError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "med-8", serr.MedicineID)
	assert.ErrorIs(t, err, expiry.ErrInvalidExpiry)
	assert.Empty(t, n.pending)
	for _, cl := range n.calls {
		assert.NotEqual(t, "schedule", cl.op)
	}
}

func TestPermissionDeniedIsLoggedNotReturned(t *testing.T) {
	n := newFakeNotifier()
	n.scheduleErr = ErrPermissionDenied
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := New(n, WithClock(func() time.Time { return now }), WithLogger(logger))

	res, err := c.OnMedicineSaved(context.Background(), model.Medicine{ID: "med-9", Name: "Drops", ExpiryDate: today(30)})
	require.NoError(t, err)
	assert.Equal(t, Scheduled, res.Outcome)
	assert.Contains(t, buf.String(), "notifications not permitted")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestOtherNotifierErrorsAreLogged(t *testing.T) {
	n := newFakeNotifier()
	n.scheduleErr = errors.New("queue unavailable")
	var buf bytes.Buffer
	c := New(n, WithClock(func() time.Time { return now }), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	_, err := c.OnMedicineSaved(context.Background(), model.Medicine{ID: "med-10", Name: "Drops", ExpiryDate: today(30)})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "queue unavailable")
}

func TestDeleteCancels(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)
	m := model.Medicine{ID: "med-11", Name: "Drops", ExpiryDate: today(20)}

	_, err := c.OnMedicineSaved(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, n.pending, 1)

	c.OnMedicineDeleted(context.Background(), m)
	assert.Empty(t, n.pending)
	assert.Equal(t, call{"cancel", "med-11"}, n.calls[len(n.calls)-1])

	// No reminder left to cancel; still just a cancel call.
	c.OnMedicineDeleted(context.Background(), m)
	assert.Equal(t, call{"cancel", "med-11"}, n.calls[len(n.calls)-1])
}

func TestResync(t *testing.T) {
	n := newFakeNotifier()
	c := newTestCoordinator(n)
	var zero time.Time

	meds := []model.Medicine{
		{ID: "a", Name: "A", ExpiryDate: today(10)},
		{ID: "b", Name: "B", ExpiryDate: today(-5)},
		{ID: "c", Name: "C", ExpiryDate: &zero},
		{ID: "d", Name: "D"},
	}
	results, err := c.Resync(context.Background(), meds)
	require.Error(t, err)
	var serr *SchedulingError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "c", serr.MedicineID)

	require.Len(t, results, 4)
	assert.Equal(t, Scheduled, results[0].Outcome)
	assert.Equal(t, TriggerPassed, results[1].Outcome)
	assert.Equal(t, NoExpiry, results[3].Outcome)
	assert.Len(t, n.pending, 1)
}
