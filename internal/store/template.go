// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"icbcrm/internal/models"
)

// TemplateStore handles all document-template database operations.
// Placeholder lists are stored as JSONB arrays.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// List returns all templates ordered by creation date descending. The
// original file binary is left out; FindByID loads it when generation
// needs it.
func (s *TemplateStore) List() ([]models.Template, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, file_name, content, placeholders,
		       COALESCE(octet_length(file_data), 0) > 0, created_at, updated_at
		FROM templates
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		var t models.Template
		var placeholders []byte
		var hasFile bool
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.FileName, &t.Content,
			&placeholders, &hasFile, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		if err := json.Unmarshal(placeholders, &t.Placeholders); err != nil {
			return nil, fmt.Errorf("decode placeholders: %w", err)
		}
		if hasFile {
			// A sentinel byte so HasOriginalFile stays truthful without
			// shipping the full binary in listings.
			t.FileData = []byte{1}
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// FindByID retrieves a template with its original file binary.
// Returns nil if not found.
func (s *TemplateStore) FindByID(id uuid.UUID) (*models.Template, error) {
	t := &models.Template{}
	var placeholders []byte
	err := s.db.QueryRow(`
		SELECT id, name, description, file_name, content, placeholders,
		       file_data, created_at, updated_at
		FROM templates WHERE id = $1
	`, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.FileName, &t.Content,
		&placeholders, &t.FileData, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by id: %w", err)
	}
	if err := json.Unmarshal(placeholders, &t.Placeholders); err != nil {
		return nil, fmt.Errorf("decode placeholders: %w", err)
	}
	return t, nil
}

// FindByName retrieves a template by its exact name, without the file
// binary. Returns nil if not found. Used for duplicate-name checks.
func (s *TemplateStore) FindByName(name string) (*models.Template, error) {
	t := &models.Template{}
	var placeholders []byte
	err := s.db.QueryRow(`
		SELECT id, name, description, file_name, content, placeholders,
		       created_at, updated_at
		FROM templates WHERE name = $1
	`, name).Scan(
		&t.ID, &t.Name, &t.Description, &t.FileName, &t.Content,
		&placeholders, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find template by name: %w", err)
	}
	if err := json.Unmarshal(placeholders, &t.Placeholders); err != nil {
		return nil, fmt.Errorf("decode placeholders: %w", err)
	}
	return t, nil
}

// Create inserts a new template and returns it with the generated ID.
func (s *TemplateStore) Create(t *models.Template) (*models.Template, error) {
	placeholders, err := json.Marshal(t.Placeholders)
	if err != nil {
		return nil, fmt.Errorf("encode placeholders: %w", err)
	}

	result := &models.Template{Placeholders: t.Placeholders, FileData: t.FileData}
	err = s.db.QueryRow(`
		INSERT INTO templates (name, description, file_name, content, placeholders, file_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, file_name, content, created_at, updated_at
	`, t.Name, t.Description, t.FileName, t.Content, placeholders, t.FileData).Scan(
		&result.ID, &result.Name, &result.Description, &result.FileName,
		&result.Content, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return result, nil
}

// UpdateMeta changes a template's name and description without touching
// the extracted content or stored binary. Returns nil if the template
// no longer exists.
func (s *TemplateStore) UpdateMeta(id uuid.UUID, name, description string) (*models.Template, error) {
	var updated uuid.UUID
	err := s.db.QueryRow(`
		UPDATE templates SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`, name, description, id).Scan(&updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	return s.FindByID(updated)
}

// Delete removes a template by ID.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// Count returns the total number of templates.
func (s *TemplateStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM templates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return n, nil
}
