package parsing_engine

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/markdave123-py/docparser/internal/core"
)

// ExtractorSet holds exactly one extractor per supported format.
type ExtractorSet struct {
	PDF   core.Extractor
	DOCX  core.Extractor
	XLSX  core.Extractor
	PPTX  core.Extractor
	Text  core.Extractor
	Image core.Extractor
}

func (s ExtractorSet) validate() error {
	var missing []string
	for _, e := range []struct {
		format core.Format
		ex     core.Extractor
	}{
		{core.FormatPDF, s.PDF},
		{core.FormatDOCX, s.DOCX},
		{core.FormatXLSX, s.XLSX},
		{core.FormatPPTX, s.PPTX},
		{core.FormatText, s.Text},
		{core.FormatImage, s.Image},
	} {
		if e.ex == nil {
			missing = append(missing, e.format.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("extractor set incomplete, missing: %v", missing)
	}
	return nil
}

// Dispatcher routes a detected format to its extractor. It never classifies.
type Dispatcher struct {
	set ExtractorSet
}

// NewDispatcher fails when any supported format lacks an extractor.
func NewDispatcher(set ExtractorSet) (*Dispatcher, error) {
	if err := set.validate(); err != nil {
		return nil, err
	}
	return &Dispatcher{set: set}, nil
}

// Dispatch runs the extractor registered for format. FormatUnknown always
// yields an InvalidFormat error.
func (d *Dispatcher) Dispatch(ctx context.Context, format core.Format, data []byte) (string, error) {
	var ex core.Extractor
	switch format {
	case core.FormatPDF:
		ex = d.set.PDF
	case core.FormatDOCX:
		ex = d.set.DOCX
	case core.FormatXLSX:
		ex = d.set.XLSX
	case core.FormatPPTX:
		ex = d.set.PPTX
	case core.FormatText:
		ex = d.set.Text
	case core.FormatImage:
		ex = d.set.Image
	case core.FormatUnknown:
		return "", core.InvalidFormatf("Could not determine file type.")
	default:
		return "", core.InvalidFormatf("no extractor registered for format %d", int(format))
	}
	return safeExtract(ctx, ex, format, data)
}

// safeExtract turns extractor panics and untyped errors into ParserErrors.
func safeExtract(ctx context.Context, ex core.Extractor, format core.Format, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = core.ParseError(
				fmt.Sprintf("%s extractor panicked", format),
				fmt.Errorf("%v\n%s", r, debug.Stack()),
			)
		}
	}()

	text, err = ex.Extract(ctx, data)
	if err == nil {
		return text, nil
	}
	var pe *core.ParserError
	if errors.As(err, &pe) {
		return "", err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", core.IOError(fmt.Sprintf("%s extraction interrupted", format), err)
	}
	return "", core.ParseError(fmt.Sprintf("%s extraction failed", format), err)
}
