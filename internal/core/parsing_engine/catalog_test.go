package parsing_engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/markdave123-py/docparser/internal/core"
	"github.com/markdave123-py/docparser/internal/testutil"
)

func TestCatalogLookup(t *testing.T) {
	cat := DefaultCatalog()

	cases := []struct {
		name    string
		data    []byte
		format  core.Format
		matched bool
	}{
		{"pdf", testutil.PDF(t, "x"), core.FormatPDF, true},
		{"docx", testutil.DOCX(t, "x"), core.FormatDOCX, true},
		{"pptx", testutil.PPTX(t, "x"), core.FormatPPTX, true},
		{"xlsx", testutil.XLSX(t, []string{"S"}, nil), core.FormatXLSX, true},
		{"png", testutil.PNGHeader, core.FormatImage, true},
		{"jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), core.FormatImage, true},
		{"gzip is known but unsupported", []byte("\x1f\x8b\x08\x00\x00\x00\x00\x00\x00\x03"), core.FormatUnknown, true},
		{"plain text is not a signature", []byte("just some words"), core.FormatUnknown, false},
		{"json is not a signature", []byte(`{"a": 1}`), core.FormatUnknown, false},
		{"empty", nil, core.FormatUnknown, false},
		{"truncated pdf header", []byte("%PD"), core.FormatUnknown, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := cat.Lookup(tc.data)
			assert.Equal(t, tc.matched, m.Matched)
			assert.Equal(t, tc.format, m.Format)
		})
	}
}

func TestCatalogIsBuiltOnce(t *testing.T) {
	assert.Same(t, DefaultCatalog(), DefaultCatalog())
}

func TestRefineOOXMLFromTruncatedArchive(t *testing.T) {
	cut := testutil.TruncateCentralDirectory(t, testutil.DOCX(t, "hello"))
	assert.Equal(t, core.FormatDOCX, refineOOXML(cut))

	m := DefaultCatalog().Lookup(cut)
	assert.True(t, m.Matched)
	assert.Equal(t, core.FormatDOCX, m.Format)
}

func TestRefineOOXMLPlainZip(t *testing.T) {
	assert.Equal(t, core.FormatUnknown, refineOOXML([]byte("PK\x03\x04")))
	assert.Empty(t, localHeaderNames([]byte("PK\x03\x04\x00\x00")))
}

func TestLocalHeaderNames(t *testing.T) {
	names := localHeaderNames(testutil.DOCX(t, "a"))
	assert.Equal(t, []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"}, names)
}
