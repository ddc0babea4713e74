package extractors

import (
	"github.com/markdave123-py/docparser/internal/core"
	"github.com/markdave123-py/docparser/internal/core/parsing_engine"
)

// Options configures the extractors that depend on the host.
//
// OCR overrides the engine picked by the build (tesseract CLI by default,
// libtesseract with -tags ocr).
type Options struct {
	TesseractPath string
	TessdataDir   string
	OCRLanguages  string
	TempDir       string
	OCR           core.OCREngine
}

// NewSet returns one extractor per supported format.
func NewSet(opts Options) parsing_engine.ExtractorSet {
	engine := opts.OCR
	if engine == nil {
		engine = newOCREngine(opts)
	}
	return parsing_engine.ExtractorSet{
		PDF:   NewPDFExtractor(),
		DOCX:  NewDocxExtractor(),
		XLSX:  NewXLSXExtractor(),
		PPTX:  NewPptxExtractor(),
		Text:  NewTextExtractor(),
		Image: NewImageExtractor(engine, opts.TempDir),
	}
}
