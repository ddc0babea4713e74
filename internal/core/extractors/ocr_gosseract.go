//go:build ocr

package extractors

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/markdave123-py/docparser/internal/core"
)

var _ core.OCREngine = (*GosseractEngine)(nil)

// GosseractEngine binds libtesseract through cgo. A client is created per
// call; the tessdata directory is shared read-only.
type GosseractEngine struct {
	tessdataDir string
	languages   []string
}

func newOCREngine(opts Options) core.OCREngine {
	var langs []string
	for _, l := range strings.Split(opts.OCRLanguages, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return &GosseractEngine{tessdataDir: opts.TessdataDir, languages: langs}
}

func (g *GosseractEngine) Recognize(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", core.IOError("ocr interrupted", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if g.tessdataDir != "" {
		if err := client.SetTessdataPrefix(g.tessdataDir); err != nil {
			return "", core.IOError("set tessdata prefix", err)
		}
	}
	if len(g.languages) > 0 {
		if err := client.SetLanguage(g.languages...); err != nil {
			return "", core.ParseError("set ocr languages", err)
		}
	}
	if err := client.SetImage(path); err != nil {
		return "", core.ParseError("load image", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", core.ParseError("recognize image", err)
	}
	return text, nil
}
