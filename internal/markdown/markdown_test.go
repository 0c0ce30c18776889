// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains string
	}{
		{"heading", "# Ghi chú", "<h1"},
		{"bold", "khách hàng **quan trọng**", "<strong>quan trọng</strong>"},
		{"gfm table", "| A | B |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"autolink", "xem https://icb.vn", `<a href="https://icb.vn"`},
		{"code block", "```go\nfunc main() {}\n```", "<pre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("output %q should contain %q", got, tt.contains)
			}
		})
	}
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	got, err := ToHTML(`ghi chú <script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML must be escaped, got %q", got)
	}
}

func TestToHTMLHardWraps(t *testing.T) {
	got, err := ToHTML("dòng một\ndòng hai")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(got, "<br") {
		t.Errorf("plain line breaks should become <br>, got %q", got)
	}
}
