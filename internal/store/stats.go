package store

import (
	"context"
	"os"
	"time"

	"github.com/rcliao/medtrack/internal/expiry"
)

// Stats holds database statistics.
type Stats struct {
	DBPath           string               `json:"db_path"`
	DBSizeBytes      int64                `json:"db_size_bytes"`
	TotalMedicines   int                  `json:"total_medicines"`
	ActiveMedicines  int                  `json:"active_medicines"`
	ArchivedMedicine int                  `json:"archived_medicines"`
	States           map[expiry.State]int `json:"states"`
	PendingReminders int                  `json:"pending_reminders"`
}

// Stats returns database statistics. Expiry states are counted over active
// medicines as seen at now.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string, now time.Time) (*Stats, error) {
	st := &Stats{
		DBPath: dbPath,
		States: map[expiry.State]int{expiry.Fresh: 0, expiry.ExpiringSoon: 0, expiry.Expired: 0},
	}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medicines`).Scan(&st.TotalMedicines)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medicines WHERE archived = 1`).Scan(&st.ArchivedMedicine)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reminders WHERE delivered_at IS NULL`).Scan(&st.PendingReminders)
	st.ActiveMedicines = st.TotalMedicines - st.ArchivedMedicine

	rows, err := s.db.QueryContext(ctx, `SELECT expiry_date FROM medicines WHERE archived = 0`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var raw *string
		if err := rows.Scan(&raw); err != nil {
			return st, err
		}
		var exp *time.Time
		if raw != nil {
			if t, err := expiry.ParseDate(*raw, time.Local); err == nil {
				exp = &t
			}
		}
		st.States[expiry.Classify(now, exp)]++
	}

	return st, rows.Err()
}
