package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/medtrack/internal/expiry"
	"github.com/rcliao/medtrack/internal/model"
	"github.com/rcliao/medtrack/internal/reminder"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func newProfileCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	addProfileFlags(cmd)
	for k, v := range flags {
		require.NoError(t, cmd.Flags().Set(k, v))
	}
	return cmd
}

func TestApplyProfileFlagsConvertsToCanonical(t *testing.T) {
	p := model.DefaultProfile()
	cmd := newProfileCmd(t, map[string]string{
		"height-unit": "ftin",
		"height":      "5 ft 11 in",
		"weight-unit": "lb",
		"weight":      "160",
		"blood-type":  "AB+",
	})

	require.NoError(t, applyProfileFlags(cmd, &p))
	assert.Equal(t, model.HeightUnitFtIn, p.HeightUnit)
	assert.InDelta(t, 180.34, p.HeightCm, 1e-9)
	assert.Equal(t, model.WeightUnitLb, p.WeightUnit)
	assert.InDelta(t, 72.5748, p.WeightKg, 1e-3)
	assert.Equal(t, "AB+", p.BloodType)
}

func TestApplyProfileFlagsUnitSwitchKeepsValue(t *testing.T) {
	p := model.DefaultProfile()
	p.HeightCm = 172.5
	p.WeightKg = 64

	cmd := newProfileCmd(t, map[string]string{"height-unit": "ftin", "weight-unit": "lb"})
	require.NoError(t, applyProfileFlags(cmd, &p))

	assert.Equal(t, 172.5, p.HeightCm)
	assert.Equal(t, 64.0, p.WeightKg)
	v := viewOfProfile(p, time.Now())
	assert.Equal(t, "5 ft 7.9 in", v.Height)
	assert.Equal(t, "141.1 lb", v.Weight)
}

func TestApplyProfileFlagsUntouchedFieldsStay(t *testing.T) {
	p := model.DefaultProfile()
	p.Name = "Sam"
	p.Allergies = "penicillin"

	cmd := newProfileCmd(t, map[string]string{"conditions": "asthma", "dob": "1990-05-17"})
	require.NoError(t, applyProfileFlags(cmd, &p))

	assert.Equal(t, "Sam", p.Name)
	assert.Equal(t, "penicillin", p.Allergies)
	assert.Equal(t, "asthma", p.Conditions)
	require.NotNil(t, p.DateOfBirth)
	assert.Equal(t, "1990-05-17", p.DateOfBirth.Format(expiry.DateLayout))
}

func TestApplyProfileFlagsBadDate(t *testing.T) {
	p := model.DefaultProfile()
	cmd := newProfileCmd(t, map[string]string{"dob": "17/05/1990"})
	assert.Error(t, applyProfileFlags(cmd, &p))
}

func TestFilterState(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)
	meds := []model.Medicine{
		{ID: "a", Name: "Old", ExpiryDate: date(2026, 10, 1)},
		{ID: "b", Name: "Soon", ExpiryDate: date(2026, 10, 24)},
		{ID: "c", Name: "Undated"},
		{ID: "d", Name: "Later", ExpiryDate: date(2027, 1, 1)},
	}

	views := filterState(meds, expiry.Fresh, now)
	require.Len(t, views, 2)
	assert.Equal(t, "c", views[0].ID)
	assert.Equal(t, "d", views[1].ID)

	views = filterState(meds, expiry.ExpiringSoon, now)
	require.Len(t, views, 1)
	assert.Equal(t, 5, *views[0].DaysLeft)

	views = filterState(meds, "", now)
	assert.Len(t, views, 4)
	assert.Nil(t, views[2].DaysLeft)
}

func TestViewOfDropsImageUnlessAsked(t *testing.T) {
	m := model.Medicine{ID: "a", Image: []byte{1, 2, 3}}
	v := viewOf(m, time.Now(), false)
	assert.True(t, v.HasImage)
	assert.Nil(t, v.Image)

	v = viewOf(m, time.Now(), true)
	assert.Len(t, v.Image, 3)
}

func TestReminderText(t *testing.T) {
	fire := time.Date(2026, 10, 22, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "scheduled for 2026-10-22", reminderText(reminder.Result{Outcome: reminder.Scheduled, FireAt: &fire}))
	assert.Equal(t, "trigger passed", reminderText(reminder.Result{Outcome: reminder.TriggerPassed}))
	assert.Equal(t, "not scheduled", reminderText(reminder.Result{}))
}

func TestWriteMedicineLine(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	v := viewOf(model.Medicine{ID: "01ABC", Name: "Ibuprofen", Dosage: "200mg", Purpose: "Pain", ExpiryDate: &today}, now, false)

	var buf bytes.Buffer
	writeMedicineLine(&buf, v)
	out := buf.String()
	assert.Contains(t, out, "expiring_soon")
	assert.Contains(t, out, "Ibuprofen 200mg")
	assert.Contains(t, out, "(today)")
	assert.Contains(t, out, "01ABC")
}
