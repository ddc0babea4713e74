package extractors

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/markdave123-py/docparser/internal/core"
)

var _ core.Extractor = (*PDFExtractor)(nil)

// PDFExtractor concatenates the plain text of every page.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor { return &PDFExtractor{} }

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", core.ParseError("open pdf", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", core.IOError("pdf extraction interrupted", err)
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", core.ParseError(fmt.Sprintf("read pdf page %d", i), err)
		}
		b.WriteString(text)
	}
	return strings.TrimSpace(b.String()), nil
}
