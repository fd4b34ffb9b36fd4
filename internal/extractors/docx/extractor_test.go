package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driven"
)

// createTestDOCX creates a minimal DOCX package in memory.
func createTestDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func wrapBody(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`
}

func extract(t *testing.T, content []byte) (string, error) {
	t.Helper()
	return New().Extract(context.Background(), &domain.File{Name: "doc.docx", Content: content})
}

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e)
	assert.Equal(t, domain.FormatWordProcessor, e.Format())
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "single paragraph",
			body:     `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`,
			expected: "Hello World",
		},
		{
			name:     "runs concatenated",
			body:     `<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>Hello </w:t></w:r><w:r><w:t>World</w:t></w:r></w:p>`,
			expected: "Hello World",
		},
		{
			name:     "paragraphs separated by newline",
			body:     `<w:p><w:r><w:t>First</w:t></w:r></w:p><w:p><w:r><w:t>Second</w:t></w:r></w:p>`,
			expected: "First\nSecond",
		},
		{
			name:     "tab and break inside run",
			body:     `<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>`,
			expected: "a\tb\nc",
		},
		{
			name: "tab stops in paragraph properties ignored",
			body: `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
				`<w:r><w:t>text</w:t></w:r></w:p>`,
			expected: "text",
		},
		{
			name:     "hyperlink runs included",
			body:     `<w:p><w:r><w:t xml:space="preserve">See </w:t></w:r><w:hyperlink><w:r><w:t>docs</w:t></w:r></w:hyperlink></w:p>`,
			expected: "See docs",
		},
		{
			name: "table cells",
			body: `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell1</w:t></w:r></w:p></w:tc>` +
				`<w:tc><w:p><w:r><w:t>cell2</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`,
			expected: "cell1\ncell2",
		},
		{
			name:     "empty body",
			body:     ``,
			expected: "",
		},
		{
			name:     "escaped entities",
			body:     `<w:p><w:r><w:t>fish &amp; chips</w:t></w:r></w:p>`,
			expected: "fish & chips",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := extract(t, createTestDOCX(t, wrapBody(tt.body)))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestExtract_NotAZip(t *testing.T) {
	_, err := extract(t, []byte("this is not a zip file"))
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}

func TestExtract_MissingDocumentPart(t *testing.T) {
	_, err := extract(t, createTestDOCX(t, ""))
	assert.ErrorIs(t, err, domain.ErrParseFailure)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtract_MalformedXML(t *testing.T) {
	_, err := extract(t, createTestDOCX(t, `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p>`))
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}

func TestExtract_NilFile(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	content := createTestDOCX(t, wrapBody(`<w:p><w:r><w:t>x</w:t></w:r></w:p>`))
	_, err := New().Extract(ctx, &domain.File{Name: "doc.docx", Content: content})
	assert.Error(t, err)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
