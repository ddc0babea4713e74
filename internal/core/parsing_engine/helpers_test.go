package parsing_engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/markdave123-py/docparser/internal/core"
)

// echo returns a fixed prefix plus the input, so outputs identify their input.
func echo(prefix string) core.Extractor {
	return core.ExtractorFunc(func(_ context.Context, data []byte) (string, error) {
		return prefix + string(data), nil
	})
}

func stubSet() ExtractorSet {
	return ExtractorSet{
		PDF:   echo("pdf:"),
		DOCX:  echo("docx:"),
		XLSX:  echo("xlsx:"),
		PPTX:  echo("pptx:"),
		Text:  echo(""),
		Image: echo("image:"),
	}
}

// textWith replaces the text extractor of stubSet.
func textWith(ex core.Extractor) ExtractorSet {
	set := stubSet()
	set.Text = ex
	return set
}

// scripted interprets text inputs as commands: "sleep:<ms>:<text>" delays,
// "fail:<ms>:<msg>" fails with a parse error after a delay.
func scripted() core.Extractor {
	return core.ExtractorFunc(func(ctx context.Context, data []byte) (string, error) {
		parts := strings.SplitN(string(data), ":", 3)
		if len(parts) != 3 {
			return string(data), nil
		}
		d, _ := time.ParseDuration(parts[1] + "ms")
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		if parts[0] == "fail" {
			return "", core.ParseError(parts[2], errors.New("scripted failure"))
		}
		return parts[2], nil
	})
}
