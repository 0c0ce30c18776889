// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package models

// DocumentFormat indicates the shape of a generated document's content.
type DocumentFormat string

const (
	// FormatDocx marks Content as an OOXML .docx binary.
	FormatDocx DocumentFormat = "docx"
	// FormatHTML marks Content as a print-ready HTML document.
	FormatHTML DocumentFormat = "html"
)

// GeneratedDocument is the ephemeral output of one generation call.
// It is never persisted; it exists only for the duration of one
// request/response cycle.
type GeneratedDocument struct {
	Content  []byte
	FileName string
	Format   DocumentFormat
}
