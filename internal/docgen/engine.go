// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

// Package docgen implements the document-generation pipeline: OOXML
// placeholder substitution on .docx binaries, upload-time text
// extraction, a print-ready HTML fallback, and the orchestrator that
// binds a template to a customer record.
package docgen

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// delimiters are the token boundary characters of the placeholder syntax.
const (
	delimStart = "{"
	delimEnd   = "}"
)

// isBodyPart reports whether an archive part carries substitutable text.
// Everything else (styles, media, relationships) is copied byte-for-byte.
func isBodyPart(name string) bool {
	switch name {
	case "word/document.xml", "word/footnotes.xml", "word/endnotes.xml":
		return true
	}
	if !strings.HasSuffix(name, ".xml") {
		return false
	}
	return strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")
}

// Render opens a .docx binary as a zip archive, replaces every token of
// data in the document body parts while preserving run formatting, and
// re-serializes the archive. Untouched parts keep their exact original
// bytes. Tokens split across multiple text runs by Word's editing history
// are still found and replaced.
//
// Values must not contain the delimiter characters; such values are
// rejected with ErrDelimiterInValue instead of producing a corrupt
// document.
func Render(src []byte, data map[string]string) ([]byte, error) {
	for _, value := range data {
		if strings.Contains(value, delimStart) || strings.Contains(value, delimEnd) {
			return nil, ErrDelimiterInValue
		}
	}

	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateCorrupt, err)
	}

	tokens := orderedTokens(data)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	hasBody := false

	for _, f := range zr.File {
		if !isBodyPart(f.Name) {
			// Raw copy keeps the compressed bytes identical.
			if err := zw.Copy(f); err != nil {
				return nil, &SubstitutionError{Err: fmt.Errorf("copy %s: %w", f.Name, err)}
			}
			continue
		}
		if f.Name == "word/document.xml" {
			hasBody = true
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", ErrTemplateCorrupt, f.Name, err)
		}
		part, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrTemplateCorrupt, f.Name, err)
		}

		out, err := substitutePart(part, tokens, data)
		if err != nil {
			return nil, err
		}

		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate})
		if err != nil {
			return nil, &SubstitutionError{Err: fmt.Errorf("create %s: %w", f.Name, err)}
		}
		if _, err := w.Write(out); err != nil {
			return nil, &SubstitutionError{Err: fmt.Errorf("write %s: %w", f.Name, err)}
		}
	}

	if !hasBody {
		return nil, fmt.Errorf("%w: missing word/document.xml", ErrTemplateCorrupt)
	}

	if err := zw.Close(); err != nil {
		return nil, &SubstitutionError{Err: fmt.Errorf("close archive: %w", err)}
	}
	return buf.Bytes(), nil
}

// orderedTokens returns the substitution tokens longest-first so that a
// token that happens to be a prefix of another can never shadow it.
func orderedTokens(data map[string]string) []string {
	tokens := make([]string, 0, len(data))
	for token := range data {
		tokens = append(tokens, token)
	}
	// Insertion sort by (length desc, lexicographic) keeps the order
	// deterministic across runs.
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0; j-- {
			a, b := tokens[j-1], tokens[j]
			if len(b) > len(a) || (len(b) == len(a) && b < a) {
				tokens[j-1], tokens[j] = b, a
			} else {
				break
			}
		}
	}
	return tokens
}

// substitutePart parses one XML body part and replaces tokens in every
// paragraph. Malformed XML fails the whole render.
func substitutePart(part []byte, tokens []string, data map[string]string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalAttrVal: true,
		CanonicalText:    true,
		CanonicalEndTags: true,
	}
	if err := doc.ReadFromBytes(part); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateCorrupt, err)
	}

	for _, p := range doc.FindElements("//w:p") {
		replaceInParagraph(p, tokens, data)
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, &SubstitutionError{Err: err}
	}
	return out, nil
}

// replaceInParagraph repeatedly finds the earliest token occurrence in
// the paragraph's assembled run text and replaces its span, until no
// token remains. Values never contain delimiters (checked in Render), so
// each replacement strictly reduces the number of occurrences.
func replaceInParagraph(p *etree.Element, tokens []string, data map[string]string) {
	for {
		texts := p.FindElements(".//w:t")
		if len(texts) == 0 {
			return
		}

		var sb strings.Builder
		for _, t := range texts {
			sb.WriteString(t.Text())
		}
		full := sb.String()

		token, at := "", -1
		for _, tok := range tokens {
			i := strings.Index(full, tok)
			if i == -1 {
				continue
			}
			if at == -1 || i < at || (i == at && len(tok) > len(token)) {
				token, at = tok, i
			}
		}
		if at == -1 {
			return
		}

		replaceSpan(texts, at, at+len(token), data[token])
	}
}

// replaceSpan rewrites the text nodes covering the byte range
// [start, end) of the assembled paragraph text with value. When the span
// crosses run boundaries, the start run keeps its formatting for the
// substituted value; intermediate runs are emptied and the end run keeps
// its tail.
func replaceSpan(texts []*etree.Element, start, end int, value string) {
	var startNode, endNode *etree.Element
	var startOff, endOff int

	pos := 0
	for _, t := range texts {
		l := len(t.Text())
		if startNode == nil && pos <= start && start < pos+l {
			startNode, startOff = t, start-pos
		}
		if endNode == nil && pos < end && end <= pos+l {
			endNode, endOff = t, end-pos
		}
		pos += l
	}
	if startNode == nil || endNode == nil {
		return
	}

	if startNode == endNode {
		text := startNode.Text()
		setRunText(startNode, text[:startOff]+value+text[endOff:])
		return
	}

	setRunText(startNode, startNode.Text()[:startOff]+value)

	inner := false
	for _, t := range texts {
		if t == startNode {
			inner = true
			continue
		}
		if t == endNode {
			break
		}
		if inner {
			t.SetText("")
		}
	}

	setRunText(endNode, endNode.Text()[endOff:])
}

// setRunText updates a w:t node, marking it xml:space="preserve" when
// the new text carries leading or trailing whitespace that Word would
// otherwise collapse.
func setRunText(t *etree.Element, text string) {
	t.SetText(text)
	if text != "" && text != strings.TrimSpace(text) && t.SelectAttr("xml:space") == nil {
		t.CreateAttr("xml:space", "preserve")
	}
}
