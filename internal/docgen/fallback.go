// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package docgen

import (
	"html"
	"strings"
	"unicode/utf8"
)

// SubstituteText replaces every occurrence of every token of data in
// content. The string is rebuilt in a single linear scan rather than
// per-token replace-all passes, so a substituted value can never be
// re-matched by a later token.
func SubstituteText(content string, data map[string]string) string {
	if content == "" || len(data) == 0 {
		return content
	}

	tokens := orderedTokens(data)

	var sb strings.Builder
	sb.Grow(len(content))

	i := 0
	for i < len(content) {
		// All tokens start with the delimiter, so most positions are a
		// cheap single-byte comparison.
		if content[i] == delimStart[0] {
			matched := false
			for _, token := range tokens {
				if strings.HasPrefix(content[i:], token) {
					sb.WriteString(data[token])
					i += len(token)
					matched = true
					break
				}
			}
			if matched {
				continue
			}
		}
		sb.WriteByte(content[i])
		i++
	}
	return sb.String()
}

// headingMaxLen is the length cutoff of the heading classification
// heuristic: blocks at or beyond it always render as paragraphs.
const headingMaxLen = 100

// PrintDocument substitutes data into the template's extracted text and
// wraps the result in a minimal print-ready HTML page (Times New Roman,
// justified paragraphs) suitable for the browser's print dialog.
//
// Blocks are split on blank lines. A block that is entirely uppercase,
// shorter than 100 characters, and free of colons renders as a heading;
// everything else as a paragraph. This is a presentation heuristic
// carried over from the legacy generator, not a correctness requirement.
func PrintDocument(content string, data map[string]string) string {
	substituted := SubstituteText(content, data)

	var body strings.Builder
	for _, block := range strings.Split(substituted, "\n\n") {
		trimmed := strings.TrimSpace(block)
		if trimmed == "" {
			continue
		}
		escaped := html.EscapeString(trimmed)
		if isHeading(trimmed) {
			body.WriteString("<h1>" + escaped + "</h1>\n")
		} else {
			body.WriteString("<p>" + escaped + "</p>\n")
		}
	}

	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body { font-family: 'Times New Roman', serif; line-height: 1.6; padding: 40px; }
h1 { text-align: center; font-size: 18pt; font-weight: bold; margin-bottom: 30px; }
p { margin: 10px 0; text-align: justify; white-space: pre-wrap; }
</style>
</head>
<body>
`)
	sb.WriteString(body.String())
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// isHeading implements the all-caps/short/no-colon block classifier.
func isHeading(block string) bool {
	return block == strings.ToUpper(block) &&
		utf8.RuneCountInString(block) < headingMaxLen &&
		!strings.Contains(block, ":")
}
