package preview

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, bodyXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			bodyXML + `</w:body></w:document>`,
	}
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func TestHTMLParagraphs(t *testing.T) {
	docx := buildDocx(t, `<w:p><w:r><w:t>Điều 1</w:t></w:r></w:p><w:p><w:r><w:t>Điều 2</w:t></w:r></w:p>`)

	got, err := HTML(docx)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if got != "<p>Điều 1</p>\n<p>Điều 2</p>" {
		t.Errorf("got %q", got)
	}
}

func TestHTMLHeadingStyle(t *testing.T) {
	body := `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>HỢP ĐỒNG</w:t></w:r></w:p>`
	docx := buildDocx(t, body)

	got, err := HTML(docx)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if got != "<h2>HỢP ĐỒNG</h2>" {
		t.Errorf("got %q", got)
	}
}

func TestHTMLBoldRuns(t *testing.T) {
	body := `<w:p>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>Bên A</w:t></w:r>` +
		`<w:r><w:t>: Công ty ACME</w:t></w:r>` +
		`</w:p>`
	docx := buildDocx(t, body)

	got, err := HTML(docx)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if got != "<p><strong>Bên A</strong>: Công ty ACME</p>" {
		t.Errorf("got %q", got)
	}
}

func TestHTMLBoldOffValue(t *testing.T) {
	body := `<w:p><w:r><w:rPr><w:b w:val="false"/></w:rPr><w:t>thường</w:t></w:r></w:p>`
	docx := buildDocx(t, body)

	got, err := HTML(docx)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if got != "<p>thường</p>" {
		t.Errorf("got %q", got)
	}
}

func TestHTMLLineBreak(t *testing.T) {
	body := `<w:p><w:r><w:t>dòng một</w:t><w:br/><w:t>dòng hai</w:t></w:r></w:p>`
	docx := buildDocx(t, body)

	got, err := HTML(docx)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if got != "<p>dòng một<br>dòng hai</p>" {
		t.Errorf("got %q", got)
	}
}

func TestHTMLEscapesText(t *testing.T) {
	body := `<w:p><w:r><w:t>a &lt; b &amp; "c"</w:t></w:r></w:p>`
	docx := buildDocx(t, body)

	got, err := HTML(docx)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(got, "a &lt; b &amp; &#34;c&#34;") {
		t.Errorf("got %q, markup must be escaped", got)
	}
}

func TestHTMLSkipsEmptyParagraphs(t *testing.T) {
	body := `<w:p><w:r><w:t>một</w:t></w:r></w:p><w:p/><w:p><w:r><w:t>hai</w:t></w:r></w:p>`
	docx := buildDocx(t, body)

	got, err := HTML(docx)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if got != "<p>một</p>\n<p>hai</p>" {
		t.Errorf("got %q", got)
	}
}

func TestHTMLRejectsBadPayloads(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("not a zip")} {
		if _, err := HTML(data); !errors.Is(err, ErrNoDocument) {
			t.Errorf("payload %q: got %v, want ErrNoDocument", data, err)
		}
	}
}

func TestHTMLMissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("[Content_Types].xml")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := w.Write([]byte("<Types/>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := HTML(buf.Bytes()); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("got %v, want ErrNoDocument", err)
	}
}
