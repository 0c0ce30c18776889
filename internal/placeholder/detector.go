// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package placeholder

import "strings"

// Detect scans text for catalog tokens by literal substring containment
// and returns the tokens present. The result follows catalog order, not
// occurrence order, and is free of duplicates by construction. Empty
// text yields an empty result.
func Detect(text string) []string {
	found := make([]string, 0, len(Catalog))
	if text == "" {
		return found
	}
	for _, token := range Catalog {
		if strings.Contains(text, token) {
			found = append(found, token)
		}
	}
	return found
}
