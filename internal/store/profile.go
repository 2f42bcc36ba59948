package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/medtrack/internal/expiry"
	"github.com/rcliao/medtrack/internal/model"
)

// GetProfile returns the saved profile. Before the first save it returns the
// default profile.
func (s *SQLiteStore) GetProfile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	var dob, gender, email, bloodType, allergies, conditions sql.NullString
	var updatedAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT name, date_of_birth, gender, email, blood_type, height_cm, height_unit,
		        weight_kg, weight_unit, allergies, conditions, photo, updated_at
		 FROM profile WHERE id = 1`).Scan(
		&p.Name, &dob, &gender, &email, &bloodType, &p.HeightCm, &p.HeightUnit,
		&p.WeightKg, &p.WeightUnit, &allergies, &conditions, &p.Photo, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		def := model.DefaultProfile()
		return &def, nil
	}
	if err != nil {
		return nil, err
	}

	if dob.Valid {
		if t, err := expiry.ParseDate(dob.String, time.Local); err == nil {
			p.DateOfBirth = &t
		}
	}
	p.Gender = gender.String
	p.Email = email.String
	p.BloodType = bloodType.String
	p.Allergies = allergies.String
	p.Conditions = conditions.String
	if len(p.Photo) == 0 {
		p.Photo = nil
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		p.UpdatedAt = &t
	}
	return &p, nil
}

// SaveProfile validates and stores p as the installation's profile.
func (s *SQLiteStore) SaveProfile(ctx context.Context, p model.Profile) (*model.Profile, error) {
	if p.HeightUnit == "" {
		p.HeightUnit = model.HeightUnitCm
	}
	if p.WeightUnit == "" {
		p.WeightUnit = model.WeightUnitKg
	}
	if err := model.Validate(p); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	p.DateOfBirth = normalizeDate(p.DateOfBirth)
	p.UpdatedAt = &now

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO profile (id, name, date_of_birth, gender, email, blood_type,
		        height_cm, height_unit, weight_kg, weight_unit, allergies, conditions, photo, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, formatDate(p.DateOfBirth), nullString(p.Gender), nullString(p.Email), nullString(p.BloodType),
		p.HeightCm, p.HeightUnit, p.WeightKg, p.WeightUnit,
		nullString(p.Allergies), nullString(p.Conditions), nullBlob(p.Photo), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return &p, nil
}

// ClearProfile deletes the saved profile.
func (s *SQLiteStore) ClearProfile(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profile WHERE id = 1`)
	return err
}
