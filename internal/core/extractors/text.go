package extractors

import (
	"bytes"
	"context"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/markdave123-py/docparser/internal/core"
)

var _ core.Extractor = (*TextExtractor)(nil)

var errBinaryText = errors.New("buffer contains NUL bytes")

// TextExtractor returns UTF-8 input unchanged. Input that only reached this
// extractor through a filename hint is decoded as Windows-1252.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor { return &TextExtractor{} }

func (e *TextExtractor) Extract(_ context.Context, data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", core.ParseError("text is not valid UTF-8", errBinaryText)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", core.ParseError("decode legacy text", err)
	}
	return string(decoded), nil
}
