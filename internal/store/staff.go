// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"icbcrm/internal/models"
)

const staffColumns = `id, name, email, role, password_hash, totp_secret, totp_enabled, created_at, updated_at`

// StaffStore handles all staff-related database operations. Staff
// records double as the admin application's login accounts.
type StaffStore struct {
	db *sql.DB
}

// NewStaffStore creates a new StaffStore with the given database connection.
func NewStaffStore(db *sql.DB) *StaffStore {
	return &StaffStore{db: db}
}

// List returns all staff members ordered by creation date.
func (s *StaffStore) List() ([]models.Staff, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s FROM staff ORDER BY created_at ASC
	`, staffColumns))
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var staff []models.Staff
	for rows.Next() {
		var m models.Staff
		if err := scanStaff(rows, &m); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		staff = append(staff, m)
	}
	return staff, rows.Err()
}

// FindByID retrieves a staff member by UUID. Returns nil if not found.
func (s *StaffStore) FindByID(id uuid.UUID) (*models.Staff, error) {
	m := &models.Staff{}
	err := scanStaff(s.db.QueryRow(fmt.Sprintf(`
		SELECT %s FROM staff WHERE id = $1
	`, staffColumns), id), m)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find staff by id: %w", err)
	}
	return m, nil
}

// FindByEmail retrieves a staff member by email. Returns nil if not found.
func (s *StaffStore) FindByEmail(email string) (*models.Staff, error) {
	m := &models.Staff{}
	err := scanStaff(s.db.QueryRow(fmt.Sprintf(`
		SELECT %s FROM staff WHERE email = $1
	`, staffColumns), email), m)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find staff by email: %w", err)
	}
	return m, nil
}

// Create inserts a new staff member with a bcrypt-hashed password.
func (s *StaffStore) Create(name, email, password, role string) (*models.Staff, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	m := &models.Staff{}
	err = scanStaff(s.db.QueryRow(fmt.Sprintf(`
		INSERT INTO staff (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, staffColumns), name, email, string(hash), role), m)
	if err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}
	return m, nil
}

// Update changes a staff member's name, email, and role. Returns nil if
// the record no longer exists.
func (s *StaffStore) Update(id uuid.UUID, name, email, role string) (*models.Staff, error) {
	m := &models.Staff{}
	err := scanStaff(s.db.QueryRow(fmt.Sprintf(`
		UPDATE staff SET name = $1, email = $2, role = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING %s
	`, staffColumns), name, email, role, id), m)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update staff: %w", err)
	}
	return m, nil
}

// SetPassword replaces a staff member's password hash.
func (s *StaffStore) SetPassword(id uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.Exec(`
		UPDATE staff SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, string(hash), id)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

// SetTOTPSecret saves the TOTP secret for a staff member (during 2FA setup).
func (s *StaffStore) SetTOTPSecret(id uuid.UUID, secret string) error {
	_, err := s.db.Exec(`
		UPDATE staff SET totp_secret = $1, updated_at = NOW() WHERE id = $2
	`, secret, id)
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	return nil
}

// EnableTOTP marks 2FA as active for a staff member (after successful code verification).
func (s *StaffStore) EnableTOTP(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE staff SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// ResetTOTP clears the TOTP secret and disables 2FA for a staff member.
// They will be forced to set up 2FA again on their next login.
func (s *StaffStore) ResetTOTP(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE staff SET totp_secret = NULL, totp_enabled = FALSE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("reset totp: %w", err)
	}
	return nil
}

// Delete removes a staff member by ID.
func (s *StaffStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	return nil
}

// Count returns the total number of staff members.
func (s *StaffStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM staff`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count staff: %w", err)
	}
	return n, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *StaffStore) CheckPassword(m *models.Staff, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) == nil
}

func scanStaff(row scanner, m *models.Staff) error {
	return row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Role, &m.PasswordHash,
		&m.TOTPSecret, &m.TOTPEnabled, &m.CreatedAt, &m.UpdatedAt,
	)
}
