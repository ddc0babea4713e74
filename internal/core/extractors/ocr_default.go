//go:build !ocr

package extractors

import "github.com/markdave123-py/docparser/internal/core"

func newOCREngine(opts Options) core.OCREngine {
	return &TesseractCLI{
		Binary:      opts.TesseractPath,
		TessdataDir: opts.TessdataDir,
		Languages:   opts.OCRLanguages,
	}
}
