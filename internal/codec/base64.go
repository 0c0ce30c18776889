// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package codec provides the lossless binary↔text transcoding used when
// document binaries cross text-oriented boundaries (JSON responses,
// browser storage).
package codec

import (
	"encoding/base64"
	"fmt"
)

// Encode converts a binary document to its transport-safe text form.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode converts the transport-safe text form back to the original
// bytes. Decode(Encode(b)) == b for all byte sequences, including empty.
func Decode(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return data, nil
}
