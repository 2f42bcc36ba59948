// Package expiry classifies medicines by how close they are to expiring and
// computes when an expiry reminder should fire.
//
// All comparisons use whole calendar days. Time of day is ignored: instants
// are reduced to their civil date before any arithmetic, so a medicine does
// not flip state at a timezone or DST boundary.
package expiry

import (
	"errors"
	"time"
)

// LeadDays is how many calendar days before expiry a medicine becomes
// expiring soon and its reminder fires.
const LeadDays = 7

// DateLayout is the on-disk and command-line form of an expiry date.
const DateLayout = "2006-01-02"

// ErrInvalidExpiry is returned when an expiry date cannot take part in
// calendar arithmetic.
var ErrInvalidExpiry = errors.New("invalid expiry date")

// State is the lifecycle state of a medicine.
type State string

const (
	Fresh        State = "fresh"
	ExpiringSoon State = "expiring_soon"
	Expired      State = "expired"
)

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	switch s {
	case Fresh, ExpiringSoon, Expired:
		return true
	}
	return false
}

// Classify returns the state of a medicine expiring on expiry as seen at now.
// An unknown expiry is treated as fresh.
func Classify(now time.Time, expiry *time.Time) State {
	if expiry == nil {
		return Fresh
	}
	days := DaysLeft(now, *expiry)
	switch {
	case days < 0:
		return Expired
	case days <= LeadDays:
		return ExpiringSoon
	default:
		return Fresh
	}
}

// DaysLeft counts the calendar days from now's date to expiry's date, both
// taken in now's location. It is negative once the expiry date has passed.
func DaysLeft(now, expiry time.Time) int {
	from := civilDay(now, now.Location())
	to := civilDay(expiry, now.Location())
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

// TriggerDate returns local midnight of the calendar day LeadDays before
// expiry, in expiry's location.
func TriggerDate(expiry time.Time) (time.Time, error) {
	if expiry.IsZero() || expiry.Year() < 1 || expiry.Year() > 9999 {
		return time.Time{}, ErrInvalidExpiry
	}
	y, m, d := expiry.Date()
	trigger := time.Date(y, m, d, 0, 0, 0, 0, expiry.Location()).AddDate(0, 0, -LeadDays)
	if trigger.Year() < 1 {
		return time.Time{}, ErrInvalidExpiry
	}
	return trigger, nil
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

const secondsPerDay = 24 * 60 * 60

// civilDay maps t's date in loc onto UTC midnight, where every day is 24h long.
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
