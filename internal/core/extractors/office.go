package extractors

import (
	"bytes"
	"context"
	"strings"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/docparser/internal/core"
)

var _ core.Extractor = (*DocxExtractor)(nil)

// DocxExtractor reads Word packages through docconv.
type DocxExtractor struct{}

func NewDocxExtractor() *DocxExtractor { return &DocxExtractor{} }

func (e *DocxExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", core.IOError("docx extraction interrupted", err)
	}
	body, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", core.ParseError("convert docx", err)
	}
	return strings.TrimSpace(body), nil
}
