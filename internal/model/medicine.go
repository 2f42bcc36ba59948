// Package model defines the core medtrack data types.
package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the struct tags of a model value.
func Validate(v any) error {
	return validate.Struct(v)
}

// Medicine represents a tracked medicine.
type Medicine struct {
	ID         string     `json:"id"`
	Name       string     `json:"name" validate:"required"`
	Purpose    string     `json:"purpose" validate:"required"`
	Dosage     string     `json:"dosage,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	AddedDate  time.Time  `json:"added_date"`
	Image      []byte     `json:"image,omitempty"`
	Archived   bool       `json:"archived"`
}

// Reminder is a queued expiry notification. MedicineID doubles as the
// notification identifier, so a medicine has at most one reminder.
type Reminder struct {
	MedicineID  string     `json:"medicine_id"`
	FireAt      time.Time  `json:"fire_at"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	DeliveryID  string     `json:"delivery_id,omitempty"`
}

// Pending reports whether the reminder has not been delivered yet.
func (r Reminder) Pending() bool {
	return r.DeliveredAt == nil
}
