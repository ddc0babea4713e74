package core

// Format is the detected document format of an input buffer.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatDOCX
	FormatXLSX
	FormatPPTX
	FormatText
	FormatImage
)

var formatNames = [...]string{
	FormatUnknown: "unknown",
	FormatPDF:     "pdf",
	FormatDOCX:    "docx",
	FormatXLSX:    "xlsx",
	FormatPPTX:    "pptx",
	FormatText:    "text",
	FormatImage:   "image",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}
