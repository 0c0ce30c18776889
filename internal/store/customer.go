// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all CRM entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"icbcrm/internal/models"
)

const customerColumns = `id, customer_code, name, tax_code, business_license_date,
	       representative, position, email, phone, address, category,
	       notes, assigned_to, created_by, created_at, updated_at`

// CustomerFilter narrows and pages a customer listing. Zero values mean
// "no filter"; Page is 1-based.
type CustomerFilter struct {
	Search   string
	Category models.CustomerCategory
	Page     int
	PageSize int
}

// CustomerStore handles all customer-related database operations.
type CustomerStore struct {
	db *sql.DB
}

// NewCustomerStore creates a new CustomerStore with the given database connection.
func NewCustomerStore(db *sql.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// List returns one page of customers matching the filter, newest first,
// together with the total match count for pagination.
func (s *CustomerStore) List(f CustomerFilter) ([]models.Customer, int, error) {
	where, args := customerFilterClause(f)

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	page, pageSize := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s FROM customers%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, customerColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, total, rows.Err()
}

// ListAll returns every customer, newest first. Used by the export flow.
func (s *CustomerStore) ListAll() ([]models.Customer, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s FROM customers ORDER BY created_at DESC
	`, customerColumns))
	if err != nil {
		return nil, fmt.Errorf("list all customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

// customerFilterClause builds the WHERE clause and its arguments for a
// filter. Search matches name, code, tax code, and email.
func customerFilterClause(f CustomerFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR customer_code ILIKE $%d OR tax_code ILIKE $%d OR email ILIKE $%d)",
			n, n, n, n))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// FindByID retrieves a customer by UUID. Returns nil if not found.
func (s *CustomerStore) FindByID(id uuid.UUID) (*models.Customer, error) {
	row := s.db.QueryRow(fmt.Sprintf(`
		SELECT %s FROM customers WHERE id = $1
	`, customerColumns), id)

	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer by id: %w", err)
	}
	return c, nil
}

// FindByCode retrieves a customer by its business code. Returns nil if not found.
func (s *CustomerStore) FindByCode(code string) (*models.Customer, error) {
	row := s.db.QueryRow(fmt.Sprintf(`
		SELECT %s FROM customers WHERE customer_code = $1
	`, customerColumns), code)

	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer by code: %w", err)
	}
	return c, nil
}

// Create inserts a new customer and returns it with the generated ID.
func (s *CustomerStore) Create(c *models.Customer) (*models.Customer, error) {
	row := s.db.QueryRow(fmt.Sprintf(`
		INSERT INTO customers (customer_code, name, tax_code, business_license_date,
		                       representative, position, email, phone, address,
		                       category, notes, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s
	`, customerColumns),
		c.CustomerCode, c.Name, c.TaxCode, c.BusinessLicenseDate,
		c.Representative, c.Position, c.Email, c.Phone, c.Address,
		c.Category, c.Notes, c.AssignedTo, c.CreatedBy,
	)

	result, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return result, nil
}

// Update rewrites every mutable field of a customer and returns the
// stored row. Returns nil if the customer no longer exists.
func (s *CustomerStore) Update(c *models.Customer) (*models.Customer, error) {
	row := s.db.QueryRow(fmt.Sprintf(`
		UPDATE customers
		SET customer_code = $1, name = $2, tax_code = $3, business_license_date = $4,
		    representative = $5, position = $6, email = $7, phone = $8, address = $9,
		    category = $10, notes = $11, assigned_to = $12, updated_at = NOW()
		WHERE id = $13
		RETURNING %s
	`, customerColumns),
		c.CustomerCode, c.Name, c.TaxCode, c.BusinessLicenseDate,
		c.Representative, c.Position, c.Email, c.Phone, c.Address,
		c.Category, c.Notes, c.AssignedTo, c.ID,
	)

	result, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return result, nil
}

// Delete removes a customer by ID.
func (s *CustomerStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// Count returns the total number of customers.
func (s *CustomerStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// CountCreatedBetween returns how many customers were created in
// [from, to). Used for dashboard month-over-month figures.
func (s *CustomerStore) CountCreatedBetween(from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM customers WHERE created_at >= $1 AND created_at < $2
	`, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers in window: %w", err)
	}
	return n, nil
}

// CountByCategory returns the number of customers in each category.
// Categories with no customers are absent from the map.
func (s *CustomerStore) CountByCategory() (map[models.CustomerCategory]int, error) {
	rows, err := s.db.Query(`SELECT category, COUNT(*) FROM customers GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count customers by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.CustomerCategory]int)
	for rows.Next() {
		var cat models.CustomerCategory
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[cat] = n
	}
	return counts, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row scanner) (*models.Customer, error) {
	c := &models.Customer{}
	err := row.Scan(
		&c.ID, &c.CustomerCode, &c.Name, &c.TaxCode, &c.BusinessLicenseDate,
		&c.Representative, &c.Position, &c.Email, &c.Phone, &c.Address,
		&c.Category, &c.Notes, &c.AssignedTo, &c.CreatedBy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
