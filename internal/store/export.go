package store

import (
	"context"

	"github.com/rcliao/medtrack/internal/model"
)

// ExportAll returns every medicine, archived ones included.
func (s *SQLiteStore) ExportAll(ctx context.Context) ([]model.Medicine, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+medicineColumns+` FROM medicines ORDER BY added_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []model.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}

// Import stores medicines from an export under new IDs and returns the stored
// records.
func (s *SQLiteStore) Import(ctx context.Context, meds []model.Medicine) ([]model.Medicine, error) {
	imported := make([]model.Medicine, 0, len(meds))
	for _, m := range meds {
		added, err := s.AddMedicine(ctx, AddParams{
			Name:       m.Name,
			Purpose:    m.Purpose,
			Dosage:     m.Dosage,
			ExpiryDate: m.ExpiryDate,
			Image:      m.Image,
		})
		if err != nil {
			return imported, err
		}
		if m.Archived {
			if added, err = s.SetArchived(ctx, added.ID, true); err != nil {
				return imported, err
			}
		}
		imported = append(imported, *added)
	}
	return imported, nil
}
