package store

import (
	"testing"

	"github.com/google/uuid"
)

func TestStaffCreateAndAuth(t *testing.T) {
	db := testDB(t)
	s := NewStaffStore(db)
	t.Cleanup(func() { cleanStaff(t, db, "auth-test@icb.local") })

	created, err := s.Create("Nhân viên Test", "auth-test@icb.local", "s3cret", "staff")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.PasswordHash == "s3cret" {
		t.Error("password must be stored hashed")
	}
	if created.TOTPEnabled {
		t.Error("new staff must start without 2FA")
	}

	found, err := s.FindByEmail("auth-test@icb.local")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil {
		t.Fatal("expected staff by email")
	}

	if !s.CheckPassword(found, "s3cret") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(found, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestStaffTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewStaffStore(db)
	t.Cleanup(func() { cleanStaff(t, db, "totp-test@icb.local") })

	created, err := s.Create("TOTP Test", "totp-test@icb.local", "pw", "staff")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetTOTPSecret(created.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(created.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !found.TOTPEnabled || found.TOTPSecret == nil || *found.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("after enable: %+v", found)
	}

	if err := s.ResetTOTP(created.ID); err != nil {
		t.Fatalf("ResetTOTP: %v", err)
	}
	found, err = s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.TOTPEnabled || found.TOTPSecret != nil {
		t.Errorf("after reset: %+v", found)
	}
}

func TestStaffUpdateAndDelete(t *testing.T) {
	db := testDB(t)
	s := NewStaffStore(db)
	t.Cleanup(func() { cleanStaff(t, db, "update-test@icb.local", "updated-test@icb.local") })

	created, err := s.Create("Trước đổi", "update-test@icb.local", "pw", "staff")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := s.Update(created.ID, "Sau đổi", "updated-test@icb.local", "admin")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Sau đổi" || updated.Role != "admin" {
		t.Errorf("Update returned %+v", updated)
	}
	if !updated.IsAdmin() {
		t.Error("expected admin role after update")
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if gone != nil {
		t.Error("expected nil after delete")
	}
}

func TestStaffFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewStaffStore(db)

	m, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if m != nil {
		t.Error("expected nil for unknown id")
	}

	m, err = s.FindByEmail("no-such@icb.local")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if m != nil {
		t.Error("expected nil for unknown email")
	}
}
