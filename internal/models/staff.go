// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff is an employee account. Staff members double as the admin
// application's users: they sign in with email + password and complete
// TOTP two-factor authentication.
type Staff struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	TOTPSecret   *string   `json:"-"`
	TOTPEnabled  bool      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the staff member has the admin role.
func (s *Staff) IsAdmin() bool {
	return s.Role == "admin"
}

// Needs2FASetup returns true if the staff member hasn't configured TOTP yet.
func (s *Staff) Needs2FASetup() bool {
	return !s.TOTPEnabled
}
