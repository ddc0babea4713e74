package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/markdave123-py/docparser/internal/core"
	"github.com/markdave123-py/docparser/internal/models"
)

// BatchParser is the part of the batch processor the HTTP layer uses.
type BatchParser interface {
	ProcessBatch(ctx context.Context, items []models.InputItem) ([]string, error)
	Run(ctx context.Context, items []models.InputItem) ([]models.ItemResult, error)
}

type ParseHandler struct {
	parser   BatchParser
	maxBytes int64
	logger   *slog.Logger
}

func NewParseHandler(parser BatchParser, maxBytes int64, logger *slog.Logger) *ParseHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ParseHandler{parser: parser, maxBytes: maxBytes, logger: logger}
}

type parseResponse struct {
	Texts []string `json:"texts"`
}

type itemResponse struct {
	Filename string  `json:"filename,omitempty"`
	Format   string  `json:"format"`
	Text     *string `json:"text,omitempty"`
	Error    string  `json:"error,omitempty"`
}

type partialResponse struct {
	Results []itemResponse `json:"results"`
}

// Parse handles POST /parse: one multipart part per file. With
// ?partial=true every item is reported instead of failing the batch.
func (h *ParseHandler) Parse(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	items, err := readParts(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusBadRequest, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeMessage(w, http.StatusBadRequest, "Invalid multipart request: "+err.Error())
		return
	}
	if len(items) == 0 {
		writeMessage(w, http.StatusBadRequest, "No files provided")
		return
	}

	partial, _ := strconv.ParseBool(r.URL.Query().Get("partial"))
	if partial {
		h.parsePartial(w, r, items)
		return
	}

	texts, err := h.parser.ProcessBatch(r.Context(), items)
	if err != nil {
		status := statusFor(err)
		h.logger.Warn("parse request failed", "files", len(items), "status", status, "error", err)
		writeMessage(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{Texts: texts})
}

func (h *ParseHandler) parsePartial(w http.ResponseWriter, r *http.Request, items []models.InputItem) {
	results, err := h.parser.Run(r.Context(), items)
	if err != nil {
		writeMessage(w, statusFor(err), err.Error())
		return
	}

	resp := partialResponse{Results: make([]itemResponse, len(results))}
	for i, res := range results {
		ir := itemResponse{Filename: res.Filename, Format: res.Format}
		if res.OK() {
			text := res.Text
			ir.Text = &text
		} else {
			ir.Error = res.Err.Error()
		}
		resp.Results[i] = ir
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps classification failures to 400, an expired request deadline
// to 504 and everything else to 500.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch core.KindOf(err) {
	case core.KindInvalidFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// readParts streams the multipart body, skipping empty parts.
func readParts(r *http.Request) ([]models.InputItem, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}

	var items []models.InputItem
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}

		name := part.FileName()
		if name == "" {
			name = part.FormName()
		}
		items = append(items, models.InputItem{Data: data, Filename: name})
	}
	return items, nil
}
