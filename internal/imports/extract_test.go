package imports

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

// buildDocx packs document XML into a minimal DOCX archive.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const sampleDocumentXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Dana Smith</w:t></w:r></w:p>
    <w:p><w:r><w:t>dana@example.com | +1 (555) 123-4567</w:t></w:r></w:p>
    <w:p><w:r><w:t>Senior Backend Engineer at Acme</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestExtractTextFromDocx(t *testing.T) {
	data := buildDocx(t, sampleDocumentXML)

	text, err := ExtractText(data, mimeDOCX, "resume.docx")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	lines := strings.Split(text, "\n")
	if lines[0] != "Dana Smith" {
		t.Fatalf("first line = %q", lines[0])
	}
	if !strings.Contains(text, "Senior Backend Engineer at Acme") {
		t.Fatalf("missing body text:\n%s", text)
	}
}

func TestExtractTextRejectsUnknownType(t *testing.T) {
	_, err := ExtractText([]byte("plain text"), "text/plain", "resume.txt")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestStripDocxXMLBreaksOnParagraphs(t *testing.T) {
	raw := `<doc><p>first</p><p>second<br/>third</p></doc>`
	got := stripDocxXML(raw)
	want := "first\nsecond\nthird"
	if got != want {
		t.Fatalf("stripDocxXML = %q, want %q", got, want)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	docx := buildDocx(t, sampleDocumentXML)

	cases := []struct {
		name     string
		mimeType string
		fileName string
		data     []byte
		want     string
	}{
		{"explicit pdf", "application/pdf", "a.pdf", nil, mimePDF},
		{"pdf with charset", "application/pdf; charset=binary", "a.pdf", nil, mimePDF},
		{"zip that is docx", "application/zip", "resume.bin", docx, mimeDOCX},
		{"octet-stream pdf magic", "application/octet-stream", "blob", []byte("%PDF-1.7 ..."), mimePDF},
		{"empty type docx extension", "", "resume.docx", nil, mimeDOCX},
		{"zip that is just zip", "application/zip", "archive.zip", nil, "application/zip"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeMimeType(tc.mimeType, tc.fileName, tc.data); got != tc.want {
				t.Fatalf("normalizeMimeType = %q, want %q", got, tc.want)
			}
		})
	}
}
