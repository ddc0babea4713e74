package extractors

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/markdave123-py/docparser/internal/core"
)

var _ core.Extractor = (*XLSXExtractor)(nil)

// XLSXExtractor renders each sheet as comma-joined rows. Sheets after the
// first are introduced by a "--- Sheet: <name> ---" line.
type XLSXExtractor struct{}

func NewXLSXExtractor() *XLSXExtractor { return &XLSXExtractor{} }

func (e *XLSXExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", core.ParseError("open workbook", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", core.IOError("xlsx extraction interrupted", err)
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return "", core.ParseError(fmt.Sprintf("read sheet %q", name), err)
		}
		if b.Len() > 0 {
			b.WriteString("\n--- Sheet: ")
			b.WriteString(name)
			b.WriteString(" ---\n")
		}
		for i, row := range rows {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(strings.Join(row, ","))
		}
	}
	return b.String(), nil
}
