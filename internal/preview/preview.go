// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package preview renders an approximate HTML view of a stored .docx
// template so the admin UI can show its contents without a Word
// installation. Layout fidelity is best-effort: paragraphs, headings
// and bold runs survive, everything else is flattened.
package preview

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strings"
)

// ErrNoDocument is returned for payloads that are not .docx archives or
// lack a document body.
var ErrNoDocument = fmt.Errorf("preview: no document body")

// HTML converts a .docx payload into a sequence of HTML blocks. Heading
// styles become h2 elements, bold runs become strong elements, and
// explicit line breaks become br. The result is fully escaped and safe
// to inject into the admin page.
func HTML(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoDocument
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDocument, err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", ErrNoDocument
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	defer rc.Close()

	blocks, err := decodeBlocks(rc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	return strings.Join(blocks, "\n"), nil
}

// block accumulates one paragraph of rendered HTML while streaming.
type block struct {
	sb      strings.Builder
	heading bool
	bold    bool
	open    bool
}

func (b *block) writeText(text string) {
	escaped := html.EscapeString(text)
	if b.bold {
		b.sb.WriteString("<strong>" + escaped + "</strong>")
	} else {
		b.sb.WriteString(escaped)
	}
}

func (b *block) flush(out []string) []string {
	text := strings.TrimSpace(b.sb.String())
	b.sb.Reset()
	if text == "" {
		return out
	}
	if b.heading {
		return append(out, "<h2>"+text+"</h2>")
	}
	return append(out, "<p>"+text+"</p>")
}

// decodeBlocks streams the document body. Paragraph properties are seen
// before the paragraph's runs, so the heading flag is settled by the
// time text arrives.
func decodeBlocks(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	blocks := make([]string, 0, 16)

	var cur block
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "p":
				if cur.open {
					blocks = cur.flush(blocks)
				}
				cur = block{open: true}
			case "pStyle":
				if cur.open && strings.HasPrefix(attrVal(tok, "val"), "Heading") {
					cur.heading = true
				}
			case "b":
				// Run-level bold; pPr-level w:b is rare and ignored.
				cur.bold = attrVal(tok, "val") != "false" && attrVal(tok, "val") != "0"
			case "t":
				inText = cur.open
			case "br":
				if cur.open {
					cur.sb.WriteString("<br>")
				}
			case "tab":
				if cur.open {
					cur.sb.WriteString("&#9;")
				}
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "p":
				if cur.open {
					blocks = cur.flush(blocks)
				}
				cur = block{}
			case "r":
				cur.bold = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.writeText(string(tok))
			}
		}
	}

	if cur.open {
		blocks = cur.flush(blocks)
	}
	return blocks, nil
}

func attrVal(tok xml.StartElement, local string) string {
	for _, attr := range tok.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}
