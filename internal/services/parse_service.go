package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/markdave123-py/docparser/internal/core"
	objectclient "github.com/markdave123-py/docparser/internal/core/object-client"
	"github.com/markdave123-py/docparser/internal/models"
)

// Output is one extracted text ready to be written somewhere.
type Output struct {
	Name string
	Text string
}

// ParseService moves batch inputs and outputs between the local filesystem,
// stdout and object storage. storage may be nil when no s3:// location is used.
type ParseService struct {
	storage objectclient.ObjectClient
}

func NewParseService(storage objectclient.ObjectClient) *ParseService {
	return &ParseService{storage: storage}
}

// NeedsStorage reports whether any location is an s3:// URI.
func NeedsStorage(locations ...string) bool {
	for _, l := range locations {
		if objectclient.IsURI(l) {
			return true
		}
	}
	return false
}

// LoadInputs reads every source in order. Sources are local paths or
// s3://bucket/key URIs.
func (s *ParseService) LoadInputs(ctx context.Context, sources []string) ([]models.InputItem, error) {
	items := make([]models.InputItem, 0, len(sources))
	for _, src := range sources {
		data, err := s.read(ctx, src)
		if err != nil {
			return nil, err
		}
		items = append(items, models.InputItem{Data: data, Filename: displayName(src)})
	}
	return items, nil
}

func (s *ParseService) read(ctx context.Context, src string) ([]byte, error) {
	if !objectclient.IsURI(src) {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, core.IOError("read input "+src, err)
		}
		return data, nil
	}

	bucket, key, err := objectclient.ParseURI(src)
	if err != nil {
		return nil, core.IOError("parse input uri", err)
	}
	if key == "" {
		return nil, core.IOError("read input "+src, fmt.Errorf("s3 uri has no object key"))
	}
	if s.storage == nil {
		return nil, core.IOError("read input "+src, fmt.Errorf("object storage not configured"))
	}
	data, err := s.storage.GetFile(ctx, bucket, key)
	if err != nil {
		return nil, core.IOError("read input "+src, err)
	}
	return data, nil
}

// NameOutputs pairs each text with its NNN-<stem>.txt name.
func NameOutputs(items []models.InputItem, texts []string) []Output {
	out := make([]Output, len(texts))
	for i, t := range texts {
		var filename string
		if i < len(items) {
			filename = items[i].Filename
		}
		out[i] = Output{Name: OutputName(i, filename), Text: t}
	}
	return out
}

// OutputName is the file name used for the text of item i.
func OutputName(i int, filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stem = strings.ReplaceAll(strings.TrimSpace(stem), " ", "_")
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		stem = "item"
	}
	return fmt.Sprintf("%03d-%s.txt", i, stem)
}

// WriteOutputs writes to w when dest is empty, otherwise into the local
// directory or s3://bucket/prefix named by dest.
func (s *ParseService) WriteOutputs(ctx context.Context, dest string, outputs []Output, w io.Writer) error {
	switch {
	case dest == "":
		for _, o := range outputs {
			if _, err := fmt.Fprintln(w, o.Text); err != nil {
				return core.IOError("write output", err)
			}
		}
		return nil

	case objectclient.IsURI(dest):
		bucket, prefix, err := objectclient.ParseURI(dest)
		if err != nil {
			return core.IOError("parse output uri", err)
		}
		if s.storage == nil {
			return core.IOError("write output "+dest, fmt.Errorf("object storage not configured"))
		}
		for _, o := range outputs {
			key := path.Join(prefix, o.Name)
			if _, err := s.storage.UploadFile(ctx, bucket, key, bytes.NewReader([]byte(o.Text)), "text/plain; charset=utf-8"); err != nil {
				return core.IOError("upload "+key, err)
			}
		}
		return nil

	default:
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return core.IOError("create output dir", err)
		}
		for _, o := range outputs {
			if err := os.WriteFile(filepath.Join(dest, o.Name), []byte(o.Text), 0o644); err != nil {
				return core.IOError("write "+o.Name, err)
			}
		}
		return nil
	}
}

func displayName(src string) string {
	if objectclient.IsURI(src) {
		return path.Base(src)
	}
	return filepath.Base(src)
}
