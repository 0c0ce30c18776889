package store

import (
	"testing"

	"github.com/google/uuid"

	"icbcrm/internal/models"
)

func testCustomerRecord(code, name string) *models.Customer {
	return &models.Customer{
		CustomerCode:        code,
		Name:                name,
		TaxCode:             "0312999888",
		BusinessLicenseDate: "15/06/2020",
		Representative:      "Nguyễn Văn Test",
		Position:            "Giám đốc",
		Email:               code + "@test.local",
		Phone:               "0900000000",
		Address:             "1 Test, TP.HCM",
		Category:            models.CategoryPotential,
		CreatedBy:           "store-test",
	}
}

func TestCustomerCRUD(t *testing.T) {
	db := testDB(t)
	s := NewCustomerStore(db)
	t.Cleanup(func() { cleanCustomers(t, db, "TEST-CRUD-1") })

	created, err := s.Create(testCustomerRecord("TEST-CRUD-1", "Công ty Test CRUD"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected generated ID")
	}
	if created.Category != models.CategoryPotential {
		t.Errorf("Category = %q", created.Category)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Name != "Công ty Test CRUD" {
		t.Fatalf("FindByID returned %+v", found)
	}

	byCode, err := s.FindByCode("TEST-CRUD-1")
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if byCode == nil || byCode.ID != created.ID {
		t.Fatalf("FindByCode returned %+v", byCode)
	}

	found.Name = "Công ty Test CRUD (đổi tên)"
	found.Category = models.CategoryClosed
	updated, err := s.Update(found)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Công ty Test CRUD (đổi tên)" || updated.Category != models.CategoryClosed {
		t.Errorf("Update returned %+v", updated)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if gone != nil {
		t.Error("expected nil after delete")
	}
}

func TestCustomerFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewCustomerStore(db)

	c, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if c != nil {
		t.Error("expected nil for unknown id")
	}

	c, err = s.FindByCode("TEST-NO-SUCH-CODE")
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if c != nil {
		t.Error("expected nil for unknown code")
	}
}

func TestCustomerListFilters(t *testing.T) {
	db := testDB(t)
	s := NewCustomerStore(db)
	t.Cleanup(func() { cleanCustomers(t, db, "TEST-LIST-1", "TEST-LIST-2") })

	a := testCustomerRecord("TEST-LIST-1", "Công ty Alpha Listing")
	a.Category = models.CategoryRegular
	if _, err := s.Create(a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	b := testCustomerRecord("TEST-LIST-2", "Công ty Beta Listing")
	b.Category = models.CategoryPromising
	if _, err := s.Create(b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Search matches the name, case-insensitively.
	items, total, err := s.List(CustomerFilter{Search: "alpha listing", PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].CustomerCode != "TEST-LIST-1" {
		t.Errorf("search: total=%d items=%+v", total, items)
	}

	// Category narrows the result.
	items, total, err = s.List(CustomerFilter{Search: "Listing", Category: models.CategoryPromising, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].CustomerCode != "TEST-LIST-2" {
		t.Errorf("category filter: total=%d items=%+v", total, items)
	}

	// Pagination reports the full count but returns one page.
	items, total, err = s.List(CustomerFilter{Search: "Listing", Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(items) != 1 {
		t.Errorf("pagination: total=%d len=%d", total, len(items))
	}
}

func TestCustomerCountByCategory(t *testing.T) {
	db := testDB(t)
	s := NewCustomerStore(db)
	t.Cleanup(func() { cleanCustomers(t, db, "TEST-COUNT-1") })

	c := testCustomerRecord("TEST-COUNT-1", "Công ty Count")
	c.Category = models.CategoryClosed
	if _, err := s.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	counts, err := s.CountByCategory()
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if counts[models.CategoryClosed] < 1 {
		t.Errorf("expected at least one closed customer, got %d", counts[models.CategoryClosed])
	}
}
