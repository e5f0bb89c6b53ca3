package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Variant identifies which geometric measure a profile configures.
type Variant string

const (
	// VariantPinch scores the raw thumb-to-index tip distance of a hand.
	VariantPinch Variant = "pinch"
	// VariantRaise scores the shoulder-normalized wrist-to-nose distance
	// of a body pose.
	VariantRaise Variant = "raise"
)

// Default activation thresholds per variant: pixels for pinch, a
// shoulder-normalized ratio for raise.
const (
	DefaultPinchThreshold = 40.0
	DefaultRaiseThreshold = 0.7
)

// Profile configures one gesture: which measure to run and the activation
// threshold to feed the state machine.
type Profile struct {
	ID        string
	Name      string
	Variant   Variant
	Threshold float64
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRepository provides CRUD operations for gesture profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

// Create inserts a new profile into the database. A missing ID is filled
// with a fresh UUID.
func (r *ProfileRepository) Create(p *Profile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO profiles (id, name, variant, threshold, enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Variant), p.Threshold, p.Enabled, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, variant, threshold, enabled, created_at, updated_at
		 FROM profiles WHERE id = ?`, id))
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, variant, threshold, enabled, created_at, updated_at
		 FROM profiles WHERE name = ?`, name))
}

// GetByVariant retrieves the enabled profile for a variant.
func (r *ProfileRepository) GetByVariant(variant Variant) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, variant, threshold, enabled, created_at, updated_at
		 FROM profiles WHERE variant = ? AND enabled = 1
		 ORDER BY updated_at DESC LIMIT 1`, string(variant)))
}

// List retrieves all profiles ordered by creation time.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT id, name, variant, threshold, enabled, created_at, updated_at
		 FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		var variant string
		if err := rows.Scan(&p.ID, &p.Name, &variant, &p.Threshold, &p.Enabled, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Variant = Variant(variant)
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

// Update persists changes to name, threshold, and enabled state.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE profiles SET name = ?, threshold = ?, enabled = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Threshold, p.Enabled, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a profile by ID.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedDefaults inserts the built-in pinch and raise profiles when the
// table is empty.
func (r *ProfileRepository) SeedDefaults() error {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []*Profile{
		{Name: "Pinch", Variant: VariantPinch, Threshold: DefaultPinchThreshold, Enabled: true},
		{Name: "Hand raise", Variant: VariantRaise, Threshold: DefaultRaiseThreshold, Enabled: true},
	}
	for _, p := range defaults {
		if err := r.Create(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProfileRepository) scanOne(row *sql.Row) (*Profile, error) {
	p := &Profile{}
	var variant string

	err := row.Scan(&p.ID, &p.Name, &variant, &p.Threshold, &p.Enabled, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Variant = Variant(variant)
	return p, nil
}
