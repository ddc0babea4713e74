package parsing_engine

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/markdave123-py/docparser/internal/core"
)

// Source says which rule produced a classification.
type Source string

const (
	SourceSignature Source = "signature"
	SourceExtension Source = "extension"
	SourceUTF8      Source = "utf8"
	SourceEmpty     Source = "empty"
	SourceNone      Source = "none"
)

// Classification is a sniffing result with the reason behind it.
type Classification struct {
	Format core.Format
	Source Source
	MIME   string
}

// extensionHints is consulted only when no binary signature matched.
var extensionHints = map[string]core.Format{
	".pdf":      core.FormatPDF,
	".docx":     core.FormatDOCX,
	".xlsx":     core.FormatXLSX,
	".pptx":     core.FormatPPTX,
	".png":      core.FormatImage,
	".jpg":      core.FormatImage,
	".jpeg":     core.FormatImage,
	".gif":      core.FormatImage,
	".webp":     core.FormatImage,
	".bmp":      core.FormatImage,
	".tif":      core.FormatImage,
	".tiff":     core.FormatImage,
	".txt":      core.FormatText,
	".text":     core.FormatText,
	".csv":      core.FormatText,
	".tsv":      core.FormatText,
	".json":     core.FormatText,
	".md":       core.FormatText,
	".markdown": core.FormatText,
	".log":      core.FormatText,
	".xml":      core.FormatText,
	".yaml":     core.FormatText,
	".yml":      core.FormatText,
	".html":     core.FormatText,
	".htm":      core.FormatText,
}

// Sniffer detects the real format of a buffer.
type Sniffer struct {
	catalog *Catalog
}

// NewSniffer returns a sniffer over catalog, or over the process-wide
// catalog when catalog is nil.
func NewSniffer(catalog *Catalog) *Sniffer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Sniffer{catalog: catalog}
}

// Sniff returns the detected format of data. filename may be empty.
func (s *Sniffer) Sniff(data []byte, filename string) core.Format {
	return s.Classify(data, filename).Format
}

// Classify applies, in order: binary signature, filename extension, UTF-8
// validity. The first rule that decides wins.
func (s *Sniffer) Classify(data []byte, filename string) Classification {
	if len(data) == 0 {
		return Classification{Format: core.FormatText, Source: SourceEmpty}
	}

	m := s.catalog.Lookup(data)
	if m.Matched {
		return Classification{Format: m.Format, Source: SourceSignature, MIME: m.MIME}
	}

	if filename != "" {
		ext := strings.ToLower(filepath.Ext(filename))
		if f, ok := extensionHints[ext]; ok {
			return Classification{Format: f, Source: SourceExtension, MIME: m.MIME}
		}
	}

	if isPlainText(data) {
		return Classification{Format: core.FormatText, Source: SourceUTF8, MIME: m.MIME}
	}
	return Classification{Format: core.FormatUnknown, Source: SourceNone, MIME: m.MIME}
}

// isPlainText accepts valid UTF-8 without NUL bytes.
func isPlainText(data []byte) bool {
	return utf8.Valid(data) && bytes.IndexByte(data, 0) < 0
}
