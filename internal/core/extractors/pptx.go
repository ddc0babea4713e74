package extractors

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/docparser/internal/core"
)

var _ core.Extractor = (*PptxExtractor)(nil)

const slidePrefix = "ppt/slides/slide"

// PptxExtractor renders slides in presentation order. Slides after the first
// are introduced by a "--- Slide N ---" line.
type PptxExtractor struct{}

func NewPptxExtractor() *PptxExtractor { return &PptxExtractor{} }

type slidePart struct {
	num  int
	file *zip.File
}

func (e *PptxExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", core.ParseError("open pptx", err)
	}

	slides := slideParts(zr.File)

	var b strings.Builder
	for i, s := range slides {
		if err := ctx.Err(); err != nil {
			return "", core.IOError("pptx extraction interrupted", err)
		}
		text, err := slideText(s.file)
		if err != nil {
			return "", core.ParseError(fmt.Sprintf("read slide %d", s.num), err)
		}
		if i > 0 {
			fmt.Fprintf(&b, "\n--- Slide %d ---\n", i+1)
		}
		b.WriteString(text)
	}
	return strings.TrimSpace(b.String()), nil
}

// slideParts returns ppt/slides/slideN.xml parts sorted by N.
func slideParts(files []*zip.File) []slidePart {
	var slides []slidePart
	for _, f := range files {
		if !strings.HasPrefix(f.Name, slidePrefix) || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		num, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(f.Name, slidePrefix), ".xml"))
		if err != nil {
			continue
		}
		slides = append(slides, slidePart{num: num, file: f})
	}
	sort.Slice(slides, func(a, b int) bool { return slides[a].num < slides[b].num })
	return slides
}

func slideText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	text, err := docconv.XMLToText(rc, []string{"p"}, nil, true)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
