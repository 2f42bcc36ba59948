// Package store provides the medtrack record store interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/medtrack/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// AddParams holds parameters for adding a medicine.
type AddParams struct {
	Name       string
	Purpose    string
	Dosage     string
	ExpiryDate *time.Time
	Image      []byte
}

// UpdateParams holds parameters for editing a medicine. Nil fields are left
// unchanged.
type UpdateParams struct {
	ID          string
	Name        *string
	Purpose     *string
	Dosage      *string
	ExpiryDate  *time.Time
	ClearExpiry bool
	Image       []byte
}

// ListParams holds parameters for listing medicines.
type ListParams struct {
	Query           string // case-insensitive match on name or purpose
	IncludeArchived bool
	ArchivedOnly    bool
	Limit           int
}

// Store defines the record store interface.
type Store interface {
	// AddMedicine stores a new medicine and returns it with its ID set.
	AddMedicine(ctx context.Context, p AddParams) (*model.Medicine, error)

	// GetMedicine returns a medicine by ID.
	GetMedicine(ctx context.Context, id string) (*model.Medicine, error)

	// UpdateMedicine edits a medicine and returns the new version.
	UpdateMedicine(ctx context.Context, p UpdateParams) (*model.Medicine, error)

	// SetArchived sets or clears the archived flag.
	SetArchived(ctx context.Context, id string, archived bool) (*model.Medicine, error)

	// ListMedicines lists medicines ordered by expiry date, undated last.
	ListMedicines(ctx context.Context, p ListParams) ([]model.Medicine, error)

	// DeleteMedicine permanently removes a medicine.
	DeleteMedicine(ctx context.Context, id string) error

	// GetProfile returns the saved profile, or the default profile.
	GetProfile(ctx context.Context) (*model.Profile, error)

	// SaveProfile replaces the profile.
	SaveProfile(ctx context.Context, p model.Profile) (*model.Profile, error)

	// ClearProfile removes the saved profile.
	ClearProfile(ctx context.Context) error

	// Close closes the store.
	Close() error
}
