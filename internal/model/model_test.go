package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateMedicine(t *testing.T) {
	assert.NoError(t, Validate(Medicine{Name: "Ibuprofen", Purpose: "Pain"}))
	assert.Error(t, Validate(Medicine{Name: "", Purpose: "Pain"}))
	assert.Error(t, Validate(Medicine{Name: "Ibuprofen"}))
}

func TestValidateProfile(t *testing.T) {
	p := DefaultProfile()
	assert.NoError(t, Validate(p))

	p.BloodType = "AB-"
	p.Gender = GenderOther
	p.Email = "me@example.com"
	assert.NoError(t, Validate(p))

	bad := p
	bad.BloodType = "C+"
	assert.Error(t, Validate(bad))

	bad = p
	bad.Email = "not-an-email"
	assert.Error(t, Validate(bad))

	bad = p
	bad.HeightUnit = "m"
	assert.Error(t, Validate(bad))

	bad = p
	bad.WeightKg = -1
	assert.Error(t, Validate(bad))
}

func TestProfileAge(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, Profile{}.Age(now))

	dob := time.Date(1990, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 36, Profile{DateOfBirth: &dob}.Age(now))

	dob = time.Date(1990, 10, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 35, Profile{DateOfBirth: &dob}.Age(now))
}
