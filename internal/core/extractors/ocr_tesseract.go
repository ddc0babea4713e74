package extractors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/markdave123-py/docparser/internal/core"
)

var _ core.OCREngine = (*TesseractCLI)(nil)

// TesseractCLI shells out to the tesseract binary and reads text from stdout.
type TesseractCLI struct {
	Binary      string
	TessdataDir string
	Languages   string
}

func (t *TesseractCLI) args(path string) []string {
	args := []string{path, "stdout"}
	if t.Languages != "" {
		args = append(args, "-l", t.Languages)
	}
	if t.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.TessdataDir)
	}
	return args
}

func (t *TesseractCLI) Recognize(ctx context.Context, path string) (string, error) {
	bin := t.Binary
	if bin == "" {
		bin = "tesseract"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, t.args(path)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", core.IOError("ocr interrupted", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := fmt.Sprintf("tesseract exited with status %d", exitErr.ExitCode())
			if s := strings.TrimSpace(stderr.String()); s != "" {
				msg += ": " + s
			}
			return "", core.ParseError(msg, err)
		}
		return "", core.IOError("run tesseract", err)
	}
	return stdout.String(), nil
}
