// docgen_test.go provides shared helpers for building minimal .docx
// archives in memory, in the shape Word produces them.
package docgen

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

const documentXMLHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentXMLFooter = `</w:body></w:document>`

const testContentTypes = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const testRels = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// buildDocx assembles a .docx archive whose document body contains
// bodyXML, plus any extra named parts.
func buildDocx(t *testing.T, bodyXML string, extraParts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := map[string]string{
		"[Content_Types].xml": testContentTypes,
		"_rels/.rels":         testRels,
		"word/document.xml":   documentXMLHeader + bodyXML + documentXMLFooter,
	}
	for name, content := range extraParts {
		parts[name] = content
	}

	// Stable order so archives are reproducible across runs.
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		writePart(t, zw, name, parts[name])
		delete(parts, name)
	}
	for name, content := range parts {
		writePart(t, zw, name, content)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("close test archive: %v", err)
	}
	return buf.Bytes()
}

func writePart(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("create part %s: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("write part %s: %v", name, err)
	}
}

// newZipWithParts starts a zip archive on buf containing exactly the
// given parts, for tests that need a deliberately incomplete document.
func newZipWithParts(t *testing.T, buf *bytes.Buffer, parts map[string]string) *zip.Writer {
	t.Helper()
	zw := zip.NewWriter(buf)
	for name, content := range parts {
		writePart(t, zw, name, content)
	}
	return zw
}

// paragraph wraps text in a single-run paragraph.
func paragraph(text string) string {
	return "<w:p><w:r><w:t>" + text + "</w:t></w:r></w:p>"
}

// readPart returns the raw bytes of one part of a .docx archive.
func readPart(t *testing.T, docx []byte, name string) []byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read part %s: %v", name, err)
		}
		return data
	}
	t.Fatalf("part %s not found", name)
	return nil
}
