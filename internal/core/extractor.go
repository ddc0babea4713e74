package core

import "context"

// Extractor turns the bytes of one already-classified document into plain
// text. Implementations never panic on malformed input; every failure is
// returned as a *ParserError.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, data []byte) (string, error)

func (f ExtractorFunc) Extract(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

// OCREngine recognises text in an image stored at path. Engines that need a
// file on disk receive one the caller owns and removes.
type OCREngine interface {
	Recognize(ctx context.Context, path string) (string, error)
}
