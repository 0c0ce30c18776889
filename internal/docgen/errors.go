// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package docgen

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateCorrupt indicates a stored template binary that is not a
	// valid OOXML archive or whose document body is malformed XML.
	ErrTemplateCorrupt = errors.New("template file is corrupt")

	// ErrUnsupportedFormat indicates an uploaded file that is not a
	// recognized document container.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrDelimiterInValue indicates a substitution value containing the
	// token delimiter characters. Substituting it verbatim could mis-nest
	// later replacements, so the operation is rejected up front.
	ErrDelimiterInValue = errors.New("substitution value contains delimiter characters")
)

// NotFoundError reports which entity was missing during generation so
// callers can distinguish a missing template from a missing customer.
type NotFoundError struct {
	Entity string // "template" or "customer"
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// SubstitutionError wraps any failure of the rendering step. Its message
// is intentionally generic; the underlying cause is logged, not returned
// to callers.
type SubstitutionError struct {
	Err error
}

func (e *SubstitutionError) Error() string {
	return fmt.Sprintf("document substitution failed: %v", e.Err)
}

func (e *SubstitutionError) Unwrap() error {
	return e.Err
}
