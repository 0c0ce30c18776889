// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package docname sanitizes suggested file names for generated documents.
package docname

import (
	"regexp"
	"strings"
)

var (
	// unsafe matches characters that break Content-Disposition headers or
	// file systems: path separators, quotes, and control characters.
	unsafe = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Sanitize makes a string safe to use as a download file name while
// keeping Unicode letters, so Vietnamese template names stay readable.
func Sanitize(name string) string {
	result := strings.TrimSpace(name)
	result = unsafe.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-. ")
	return result
}
