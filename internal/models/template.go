// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Template is a reusable document skeleton uploaded as a .docx file.
// Content holds the plain text extracted once at upload time; FileData
// holds the original binary when available, enabling exact-format
// regeneration. Placeholders is the ordered list of catalog tokens
// detected in the extracted text.
type Template struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	FileName     string    `json:"fileName"`
	Content      string    `json:"content"`
	FileData     []byte    `json:"-"`
	Placeholders []string  `json:"placeholders"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasOriginalFile reports whether the original .docx binary is stored,
// which selects the OOXML generation path over the HTML fallback.
func (t *Template) HasOriginalFile() bool {
	return len(t.FileData) > 0
}
