package parsing_engine

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/markdave123-py/docparser/internal/core"
)

const (
	mimePDF         = "application/pdf"
	mimeDOCX        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePPTX        = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	mimeZIP         = "application/zip"
	mimeTextPlain   = "text/plain"
	mimeOctetStream = "application/octet-stream"
)

// maxLocalHeaders bounds the raw ZIP header scan used on archives whose
// central directory is missing or damaged.
const maxLocalHeaders = 512

var zipLocalHeader = []byte("PK\x03\x04")

// signature maps one MIME identifier reported by the magic-byte probe to a
// format. Container entries need ZIP-internal inspection before they resolve.
type signature struct {
	mime      string
	format    core.Format
	container bool
}

// Match is the outcome of a catalog lookup. Matched is false when no binary
// signature was recognised; Matched with FormatUnknown means a signature was
// recognised but no extractor handles it.
type Match struct {
	Format  core.Format
	MIME    string
	Matched bool
}

// Catalog is an immutable table of binary signatures. It is safe for
// concurrent use once built.
type Catalog struct {
	entries []signature
}

var defaultCatalog = sync.OnceValue(newCatalog)

// DefaultCatalog returns the process-wide catalog, building it on first use.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

func newCatalog() *Catalog {
	return &Catalog{entries: []signature{
		{mime: mimePDF, format: core.FormatPDF},
		{mime: mimeDOCX, format: core.FormatDOCX},
		{mime: mimeXLSX, format: core.FormatXLSX},
		{mime: mimePPTX, format: core.FormatPPTX},
		{mime: mimeZIP, container: true},
		{mime: "image/png", format: core.FormatImage},
		{mime: "image/jpeg", format: core.FormatImage},
		{mime: "image/gif", format: core.FormatImage},
		{mime: "image/webp", format: core.FormatImage},
		{mime: "image/bmp", format: core.FormatImage},
		{mime: "image/tiff", format: core.FormatImage},
	}}
}

// Lookup classifies data by its magic bytes. Text-like detections do not
// count as signatures; they are left to the UTF-8 fallback of the sniffer.
func (c *Catalog) Lookup(data []byte) Match {
	if len(data) == 0 {
		return Match{}
	}

	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(mimeTextPlain) {
			return Match{MIME: detected.String()}
		}
		if m.Is(mimeOctetStream) {
			break
		}
		if sig, ok := c.find(m); ok {
			format := sig.format
			if sig.container {
				format = refineOOXML(data)
			}
			return Match{Format: format, MIME: detected.String(), Matched: true}
		}
	}

	if detected.Is(mimeOctetStream) {
		return Match{MIME: detected.String()}
	}
	// A known signature with no extractor behind it still wins over any
	// filename hint.
	return Match{Format: core.FormatUnknown, MIME: detected.String(), Matched: true}
}

func (c *Catalog) find(m *mimetype.MIME) (signature, bool) {
	for _, sig := range c.entries {
		if m.Is(sig.mime) {
			return sig, true
		}
	}
	return signature{}, false
}

// refineOOXML tells DOCX, XLSX and PPTX apart by their part names. The
// central directory is tried first; truncated archives fall back to a scan of
// the local file headers.
func refineOOXML(data []byte) core.Format {
	if zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		names := make([]string, 0, len(zr.File))
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		if format := ooxmlFromParts(names); format != core.FormatUnknown {
			return format
		}
	}
	return ooxmlFromParts(localHeaderNames(data))
}

func ooxmlFromParts(names []string) core.Format {
	for _, name := range names {
		switch {
		case strings.HasPrefix(name, "word/"):
			return core.FormatDOCX
		case strings.HasPrefix(name, "xl/"):
			return core.FormatXLSX
		case strings.HasPrefix(name, "ppt/"):
			return core.FormatPPTX
		}
	}
	return core.FormatUnknown
}

// localHeaderNames lists the file names found in ZIP local file headers.
// Sizes in the headers are not trusted; the scan resumes right after each
// signature.
func localHeaderNames(data []byte) []string {
	var names []string
	for pos := 0; len(names) < maxLocalHeaders; {
		i := bytes.Index(data[pos:], zipLocalHeader)
		if i < 0 {
			break
		}
		start := pos + i
		if start+30 > len(data) {
			break
		}
		nameLen := int(binary.LittleEndian.Uint16(data[start+26 : start+28]))
		if end := start + 30 + nameLen; nameLen > 0 && end <= len(data) {
			names = append(names, string(data[start+30:end]))
		}
		pos = start + len(zipLocalHeader)
	}
	return names
}
