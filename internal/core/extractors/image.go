package extractors

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/markdave123-py/docparser/internal/core"
)

var _ core.Extractor = (*ImageExtractor)(nil)

// ImageExtractor runs OCR over a temporary copy of the image. The copy is
// removed on every exit path.
type ImageExtractor struct {
	engine  core.OCREngine
	tempDir string
}

// NewImageExtractor uses os.TempDir when tempDir is empty.
func NewImageExtractor(engine core.OCREngine, tempDir string) *ImageExtractor {
	return &ImageExtractor{engine: engine, tempDir: tempDir}
}

func (e *ImageExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	f, err := os.CreateTemp(e.tempDir, "ocr-*")
	if err != nil {
		return "", core.IOError("create ocr temp file", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", core.IOError("write ocr temp file", err)
	}
	if err := f.Close(); err != nil {
		return "", core.IOError("close ocr temp file", err)
	}

	text, err := e.engine.Recognize(ctx, path)
	if err != nil {
		var pe *core.ParserError
		if errors.As(err, &pe) {
			return "", err
		}
		return "", core.ParseError("ocr failed", err)
	}
	return strings.TrimSpace(text), nil
}
