package model

import "time"

// Gender values accepted on a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// BloodTypes lists the eight ABO/Rh combinations.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Display unit preferences. Height and weight are always stored in cm and kg.
const (
	HeightUnitCm   = "cm"
	HeightUnitFtIn = "ftin"
	WeightUnitKg   = "kg"
	WeightUnitLb   = "lb"
)

// Profile is the single personal health profile of an installation.
type Profile struct {
	Name        string     `json:"name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Email       string     `json:"email,omitempty" validate:"omitempty,email"`
	BloodType   string     `json:"blood_type,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	HeightCm    float64    `json:"height_cm" validate:"gte=0"`
	HeightUnit  string     `json:"height_unit" validate:"oneof=cm ftin"`
	WeightKg    float64    `json:"weight_kg" validate:"gte=0"`
	WeightUnit  string     `json:"weight_unit" validate:"oneof=kg lb"`
	Allergies   string     `json:"allergies,omitempty"`
	Conditions  string     `json:"conditions,omitempty"`
	Photo       []byte     `json:"photo,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// DefaultProfile returns the empty profile shown before anything is saved.
func DefaultProfile() Profile {
	return Profile{HeightUnit: HeightUnitCm, WeightUnit: WeightUnitKg}
}

// Age returns the age in whole years on now's calendar date, or 0 when no
// date of birth is set.
func (p Profile) Age(now time.Time) int {
	if p.DateOfBirth == nil {
		return 0
	}
	dob := p.DateOfBirth.In(now.Location())
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
