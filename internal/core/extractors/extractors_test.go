package extractors

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/docparser/internal/core"
	"github.com/markdave123-py/docparser/internal/testutil"
)

func TestTextExtractor(t *testing.T) {
	ex := NewTextExtractor()

	got, err := ex.Extract(t.Context(), []byte("  keep\nwhitespace  "))
	require.NoError(t, err)
	assert.Equal(t, "  keep\nwhitespace  ", got)

	got, err = ex.Extract(t.Context(), []byte("caf\xe9"))
	require.NoError(t, err)
	assert.Equal(t, "café", got)

	_, err = ex.Extract(t.Context(), []byte("\xff\x00\xfe"))
	assert.ErrorIs(t, err, core.ErrParse)
}

func TestPDFExtractor(t *testing.T) {
	got, err := NewPDFExtractor().Extract(t.Context(), testutil.PDF(t, "Hello PDF"))
	require.NoError(t, err)
	assert.Contains(t, got, "Hello PDF")
}

func TestPDFExtractorRejectsGarbage(t *testing.T) {
	_, err := NewPDFExtractor().Extract(t.Context(), []byte("%PDF-1.4\nnot really"))
	assert.ErrorIs(t, err, core.ErrParse)
}

func TestDocxExtractor(t *testing.T) {
	got, err := NewDocxExtractor().Extract(t.Context(), testutil.DOCX(t, "First paragraph", "Second paragraph"))
	require.NoError(t, err)
	assert.Contains(t, got, "First paragraph")
	assert.Contains(t, got, "Second paragraph")
}

func TestDocxExtractorCorrupted(t *testing.T) {
	cut := testutil.TruncateCentralDirectory(t, testutil.DOCX(t, "x"))
	_, err := NewDocxExtractor().Extract(t.Context(), cut)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrParse)
}

func TestPptxExtractor(t *testing.T) {
	got, err := NewPptxExtractor().Extract(t.Context(), testutil.PPTX(t, "Title slide", "Closing slide"))
	require.NoError(t, err)
	assert.Equal(t, "Title slide\n--- Slide 2 ---\nClosing slide", got)
}

func TestPptxExtractorOrdersSlidesNumerically(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, n := range []int{10, 2, 1} {
		w, err := zw.Create(fmt.Sprintf("ppt/slides/slide%d.xml", n))
		require.NoError(t, err)
		fmt.Fprintf(w, `<p:sld xmlns:a="a" xmlns:p="p"><a:p><a:r><a:t>s%d</a:t></a:r></a:p><a:p><a:r><a:t>more</a:t></a:r></a:p></p:sld>`, n)
	}
	w, err := zw.Create("ppt/slides/_rels/slide1.xml.rels")
	require.NoError(t, err)
	_, _ = w.Write([]byte("<Relationships/>"))
	require.NoError(t, zw.Close())

	got, err := NewPptxExtractor().Extract(t.Context(), buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "s1\nmore\n--- Slide 2 ---\ns2\nmore\n--- Slide 3 ---\ns10\nmore", got)
}

func TestPptxExtractorCorrupted(t *testing.T) {
	cut := testutil.TruncateCentralDirectory(t, testutil.PPTX(t, "x"))
	_, err := NewPptxExtractor().Extract(t.Context(), cut)
	assert.ErrorIs(t, err, core.ErrParse)
}

func TestXLSXExtractorSingleSheet(t *testing.T) {
	data := testutil.XLSX(t, []string{"Sheet1"}, map[string][][]any{
		"Sheet1": {
			{"username", "identifier", "first_name"},
			{"johndoe123", 4281, "John"},
			{"alice23", 8425, "Alice"},
		},
	})
	got, err := NewXLSXExtractor().Extract(t.Context(), data)
	require.NoError(t, err)
	assert.Equal(t, "username,identifier,first_name\njohndoe123,4281,John\nalice23,8425,Alice", got)
}

func TestXLSXExtractorMultipleSheets(t *testing.T) {
	data := testutil.XLSX(t, []string{"Sheet1", "Sheet2"}, map[string][][]any{
		"Sheet1": {{"username", "identifier"}, {"alice23", 8425}},
		"Sheet2": {{"username", "identifier"}, {"johndoe123", 4281}},
	})
	got, err := NewXLSXExtractor().Extract(t.Context(), data)
	require.NoError(t, err)
	assert.Equal(t, "username,identifier\nalice23,8425\n--- Sheet: Sheet2 ---\nusername,identifier\njohndoe123,4281", got)
}

func TestXLSXExtractorCorrupted(t *testing.T) {
	_, err := NewXLSXExtractor().Extract(t.Context(), []byte("PK\x03\x04broken"))
	assert.ErrorIs(t, err, core.ErrParse)
}

type recordingOCR struct {
	path    string
	content []byte
	text    string
	err     error
	panic   bool
}

func (r *recordingOCR) Recognize(_ context.Context, path string) (string, error) {
	r.path = path
	r.content, _ = os.ReadFile(path)
	if r.panic {
		panic("ocr crashed")
	}
	return r.text, r.err
}

func TestImageExtractorRemovesTempFile(t *testing.T) {
	dir := t.TempDir()
	ocr := &recordingOCR{text: "\n Hello World! \n"}

	got, err := NewImageExtractor(ocr, dir).Extract(t.Context(), testutil.PNGHeader)
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", got)
	assert.Equal(t, testutil.PNGHeader, ocr.content)
	assert.Equal(t, dir, filepath.Dir(ocr.path))
	assert.NoFileExists(t, ocr.path)
}

func TestImageExtractorErrors(t *testing.T) {
	dir := t.TempDir()

	ocr := &recordingOCR{err: errors.New("engine failure")}
	_, err := NewImageExtractor(ocr, dir).Extract(t.Context(), testutil.PNGHeader)
	assert.ErrorIs(t, err, core.ErrParse)
	assert.NoFileExists(t, ocr.path)

	ocr = &recordingOCR{err: core.IOError("tessdata missing", nil)}
	_, err = NewImageExtractor(ocr, dir).Extract(t.Context(), testutil.PNGHeader)
	assert.ErrorIs(t, err, core.ErrIO)
}

func TestImageExtractorRemovesTempFileOnPanic(t *testing.T) {
	dir := t.TempDir()
	ocr := &recordingOCR{panic: true}

	assert.Panics(t, func() {
		_, _ = NewImageExtractor(ocr, dir).Extract(t.Context(), testutil.PNGHeader)
	})
	assert.NoFileExists(t, ocr.path)
}

func TestImageExtractorBadTempDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	_, err := NewImageExtractor(&recordingOCR{}, missing).Extract(t.Context(), testutil.PNGHeader)
	assert.ErrorIs(t, err, core.ErrIO)
}

func TestTesseractCLIArgs(t *testing.T) {
	cli := &TesseractCLI{Languages: "eng+fra", TessdataDir: "/usr/share/tessdata"}
	assert.Equal(t,
		[]string{"/tmp/ocr-1", "stdout", "-l", "eng+fra", "--tessdata-dir", "/usr/share/tessdata"},
		cli.args("/tmp/ocr-1"))
}

func TestTesseractCLIMissingBinary(t *testing.T) {
	cli := &TesseractCLI{Binary: filepath.Join(t.TempDir(), "no-tesseract")}
	_, err := cli.Recognize(t.Context(), "/nonexistent.png")
	assert.ErrorIs(t, err, core.ErrIO)
}

func TestNewSetIsComplete(t *testing.T) {
	set := NewSet(Options{OCRLanguages: "eng"})
	for _, ex := range []core.Extractor{set.PDF, set.DOCX, set.XLSX, set.PPTX, set.Text, set.Image} {
		assert.NotNil(t, ex)
	}
}
