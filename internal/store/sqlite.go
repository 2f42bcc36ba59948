package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/medtrack/internal/expiry"
	"github.com/rcliao/medtrack/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS medicines (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		purpose     TEXT NOT NULL,
		dosage      TEXT,
		expiry_date TEXT,
		added_at    TEXT NOT NULL,
		image       BLOB,
		archived    INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_medicines_expiry ON medicines(expiry_date);
	CREATE INDEX IF NOT EXISTS idx_medicines_archived ON medicines(archived);

	CREATE TABLE IF NOT EXISTS profile (
		id            INTEGER PRIMARY KEY CHECK (id = 1),
		name          TEXT NOT NULL DEFAULT '',
		date_of_birth TEXT,
		gender        TEXT,
		email         TEXT,
		blood_type    TEXT,
		height_cm     REAL NOT NULL DEFAULT 0,
		height_unit   TEXT NOT NULL DEFAULT 'cm',
		weight_kg     REAL NOT NULL DEFAULT 0,
		weight_unit   TEXT NOT NULL DEFAULT 'kg',
		allergies     TEXT,
		conditions    TEXT,
		photo         BLOB,
		updated_at    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reminders (
		medicine_id  TEXT PRIMARY KEY,
		fire_at      TEXT NOT NULL,
		title        TEXT NOT NULL,
		body         TEXT NOT NULL,
		scheduled_at TEXT NOT NULL,
		delivered_at TEXT,
		delivery_id  TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_reminders_fire ON reminders(fire_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

const medicineColumns = `id, name, purpose, dosage, expiry_date, added_at, image, archived`

func (s *SQLiteStore) AddMedicine(ctx context.Context, p AddParams) (*model.Medicine, error) {
	m := model.Medicine{
		ID:         s.newID(),
		Name:       strings.TrimSpace(p.Name),
		Purpose:    strings.TrimSpace(p.Purpose),
		Dosage:     strings.TrimSpace(p.Dosage),
		ExpiryDate: normalizeDate(p.ExpiryDate),
		AddedDate:  time.Now().UTC().Truncate(time.Second),
		Image:      p.Image,
	}
	if err := model.Validate(m); err != nil {
		return nil, fmt.Errorf("invalid medicine: %w", err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO medicines (`+medicineColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, 0)`,
		m.ID, m.Name, m.Purpose, nullString(m.Dosage), formatDate(m.ExpiryDate),
		m.AddedDate.Format(time.RFC3339), nullBlob(m.Image))
	if err != nil {
		return nil, fmt.Errorf("insert medicine: %w", err)
	}

	return &m, nil
}

func (s *SQLiteStore) GetMedicine(ctx context.Context, id string) (*model.Medicine, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+medicineColumns+` FROM medicines WHERE id = ?`, id)
	m, err := scanMedicine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("medicine %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *SQLiteStore) UpdateMedicine(ctx context.Context, p UpdateParams) (*model.Medicine, error) {
	m, err := s.GetMedicine(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		m.Name = strings.TrimSpace(*p.Name)
	}
	if p.Purpose != nil {
		m.Purpose = strings.TrimSpace(*p.Purpose)
	}
	if p.Dosage != nil {
		m.Dosage = strings.TrimSpace(*p.Dosage)
	}
	if p.ClearExpiry {
		m.ExpiryDate = nil
	} else if p.ExpiryDate != nil {
		m.ExpiryDate = normalizeDate(p.ExpiryDate)
	}
	if p.Image != nil {
		m.Image = p.Image
	}
	if err := model.Validate(m); err != nil {
		return nil, fmt.Errorf("invalid medicine: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE medicines SET name = ?, purpose = ?, dosage = ?, expiry_date = ?, image = ? WHERE id = ?`,
		m.Name, m.Purpose, nullString(m.Dosage), formatDate(m.ExpiryDate), nullBlob(m.Image), m.ID)
	if err != nil {
		return nil, fmt.Errorf("update medicine: %w", err)
	}
	return m, nil
}

func (s *SQLiteStore) SetArchived(ctx context.Context, id string, archived bool) (*model.Medicine, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE medicines SET archived = ? WHERE id = ?`, archived, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("medicine %s: %w", id, ErrNotFound)
	}
	return s.GetMedicine(ctx, id)
}

func (s *SQLiteStore) ListMedicines(ctx context.Context, p ListParams) ([]model.Medicine, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 100
	}

	var where []string
	var args []interface{}

	switch {
	case p.ArchivedOnly:
		where = append(where, "archived = 1")
	case !p.IncludeArchived:
		where = append(where, "archived = 0")
	}
	if q := strings.TrimSpace(p.Query); q != "" {
		where = append(where, "(name LIKE ? OR purpose LIKE ?)")
		args = append(args, "%"+q+"%", "%"+q+"%")
	}

	query := `SELECT ` + medicineColumns + ` FROM medicines`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY expiry_date IS NULL, expiry_date ASC, added_at ASC, rowid ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
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

func (s *SQLiteStore) DeleteMedicine(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("medicine %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMedicine(row scanner) (model.Medicine, error) {
	var m model.Medicine
	var dosage, expiryDate sql.NullString
	var addedAt string

	err := row.Scan(&m.ID, &m.Name, &m.Purpose, &dosage, &expiryDate, &addedAt, &m.Image, &m.Archived)
	if err != nil {
		return m, err
	}

	m.AddedDate, _ = time.Parse(time.RFC3339, addedAt)
	if dosage.Valid {
		m.Dosage = dosage.String
	}
	if expiryDate.Valid {
		if t, err := expiry.ParseDate(expiryDate.String, time.Local); err == nil {
			m.ExpiryDate = &t
		}
	}
	if len(m.Image) == 0 {
		m.Image = nil
	}
	return m, nil
}

// normalizeDate drops the time of day; expiry dates are whole calendar days.
func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, mo, d := t.Date()
	n := time.Date(y, mo, d, 0, 0, 0, 0, time.Local)
	return &n
}

func formatDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(expiry.DateLayout)
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullBlob(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
