// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package docgen

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ExtractText pulls the plain text out of a .docx binary: one line per
// run of text, one blank line between paragraphs. It is called once at
// upload time to produce the template's stored content; generation never
// re-extracts.
//
// A payload that is not a zip archive or lacks a document body fails
// with ErrUnsupportedFormat.
func ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrUnsupportedFormat
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("%w: missing word/document.xml", ErrUnsupportedFormat)
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer rc.Close()

	paragraphs, err := decodeParagraphs(rc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// decodeParagraphs streams the document body XML, collecting the text of
// each w:p element. w:br and w:tab produce a newline and a tab inside
// their paragraph.
func decodeParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	paragraphs := make([]string, 0, 16)

	var sb strings.Builder
	inParagraph := false
	inText := false

	flush := func() {
		text := strings.TrimRight(sb.String(), " \t")
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
		sb.Reset()
	}

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
				if inParagraph {
					flush()
				}
				inParagraph = true
			case "t":
				inText = inParagraph
			case "br":
				if inParagraph {
					sb.WriteString("\n")
				}
			case "tab":
				if inParagraph {
					sb.WriteString("\t")
				}
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "p":
				if inParagraph {
					flush()
				}
				inParagraph = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				sb.Write(tok)
			}
		}
	}

	if inParagraph {
		flush()
	}
	return paragraphs, nil
}
