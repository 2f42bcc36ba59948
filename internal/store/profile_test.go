package store

import (
	"context"
	"testing"

	"github.com/rcliao/medtrack/internal/model"
)

func TestProfileDefault(t *testing.T) {
	s := newTestStore(t)
	p, err := s.GetProfile(context.Background())
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.HeightUnit != model.HeightUnitCm || p.WeightUnit != model.WeightUnitKg {
		t.Errorf("unexpected default units: %+v", p)
	}
	if p.UpdatedAt != nil {
		t.Error("default profile should not have an update time")
	}
}

func TestProfileSaveAndClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SaveProfile(ctx, model.Profile{
		Name:        "Sam",
		DateOfBirth: day(1990, 5, 17),
		Gender:      model.GenderOther,
		Email:       "sam@example.com",
		BloodType:   "O-",
		HeightCm:    181.37,
		HeightUnit:  model.HeightUnitFtIn,
		WeightKg:    72.5,
		WeightUnit:  model.WeightUnitLb,
		Allergies:   "penicillin",
		Photo:       []byte{1, 2, 3},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	p, err := s.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name != "Sam" || p.BloodType != "O-" || p.Allergies != "penicillin" {
		t.Errorf("unexpected profile: %+v", p)
	}
	// Stored in canonical units regardless of display preference.
	if p.HeightCm != 181.37 || p.WeightKg != 72.5 {
		t.Errorf("expected canonical values preserved, got %v cm %v kg", p.HeightCm, p.WeightKg)
	}
	if p.HeightUnit != model.HeightUnitFtIn || p.WeightUnit != model.WeightUnitLb {
		t.Errorf("expected display units preserved, got %s %s", p.HeightUnit, p.WeightUnit)
	}
	if p.DateOfBirth == nil || !p.DateOfBirth.Equal(*day(1990, 5, 17)) {
		t.Errorf("unexpected date of birth %v", p.DateOfBirth)
	}
	if len(p.Photo) != 3 {
		t.Errorf("expected photo to round-trip")
	}

	if err := s.ClearProfile(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	p, _ = s.GetProfile(ctx)
	if p.Name != "" || p.HeightCm != 0 {
		t.Errorf("expected empty profile after clear, got %+v", p)
	}
}

func TestProfileValidation(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SaveProfile(context.Background(), model.Profile{BloodType: "Z+"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
