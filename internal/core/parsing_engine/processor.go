package parsing_engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/docparser/internal/core"
	"github.com/markdave123-py/docparser/internal/models"
)

// Processor runs sniff → dispatch → extract for every item of a batch on a
// bounded worker pool and restores input order before reducing.
//
// sniffer:    format detection, shared read-only.
// dispatcher: format → extractor routing.
// cfg:        pool size and failure policy.
type Processor struct {
	sniffer    *Sniffer
	dispatcher *Dispatcher
	cfg        EngineConfig
	logger     *slog.Logger
}

// NewProcessor wires a processor. A nil logger discards logs.
func NewProcessor(sniffer *Sniffer, dispatcher *Dispatcher, cfg EngineConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyCollectAll
	}
	return &Processor{sniffer: sniffer, dispatcher: dispatcher, cfg: cfg, logger: logger}
}

// ProcessBatch extracts text from every item. On success the texts are in
// input order; otherwise the error of the lowest failing index is returned.
func (p *Processor) ProcessBatch(ctx context.Context, items []models.InputItem) ([]string, error) {
	outcomes, err := p.run(ctx, items)
	if err != nil {
		return nil, err
	}
	return Aggregate(outcomes)
}

// Run extracts every item and reports each one's status instead of failing
// the whole batch.
func (p *Processor) Run(ctx context.Context, items []models.InputItem) ([]models.ItemResult, error) {
	outcomes, err := p.run(ctx, items)
	if err != nil {
		return nil, err
	}
	return Collect(items, outcomes), nil
}

// ProcessOne classifies and extracts a single item.
func (p *Processor) ProcessOne(ctx context.Context, item models.InputItem) (core.Format, string, error) {
	c := p.sniffer.Classify(item.Data, item.Filename)
	p.logger.Debug("input classified",
		"filename", item.Filename,
		"bytes", len(item.Data),
		"format", c.Format.String(),
		"source", string(c.Source),
		"mime", c.MIME,
	)

	if c.Format == core.FormatUnknown && c.Source == SourceSignature {
		return c.Format, "", core.InvalidFormatf("Unsupported file type: %s", c.MIME)
	}
	text, err := p.dispatcher.Dispatch(ctx, c.Format, item.Data)
	return c.Format, text, err
}

func (p *Processor) run(ctx context.Context, items []models.InputItem) ([]models.IndexedOutcome, error) {
	n := len(items)
	if n == 0 {
		return nil, nil
	}

	batchID := uuid.NewString()
	workers := p.cfg.poolSize(n)
	start := time.Now()

	// Lowest index seen failing so far; only read under PolicySkipAfterError.
	var lowestFailure atomic.Int64
	lowestFailure.Store(math.MaxInt64)

	out := make(chan models.IndexedOutcome, n)

	var g errgroup.Group
	g.SetLimit(workers)
	for idx, item := range items {
		g.Go(func() error {
			out <- p.processIndexed(ctx, idx, item, &lowestFailure)
			return nil
		})
	}
	_ = g.Wait()
	close(out)

	outcomes := make([]models.IndexedOutcome, 0, n)
	for o := range out {
		outcomes = append(outcomes, o)
	}
	sort.Slice(outcomes, func(a, b int) bool { return outcomes[a].Index < outcomes[b].Index })
	if err := checkIndices(outcomes, n); err != nil {
		return nil, err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	p.logger.Info("batch processed",
		"batch_id", batchID,
		"items", n,
		"workers", workers,
		"failed", failed,
		"policy", string(p.cfg.Policy),
		"duration", time.Since(start),
	)
	return outcomes, nil
}

func (p *Processor) processIndexed(ctx context.Context, idx int, item models.InputItem, lowestFailure *atomic.Int64) models.IndexedOutcome {
	skipping := p.cfg.Policy == PolicySkipAfterError
	if skipping && int64(idx) > lowestFailure.Load() {
		return models.IndexedOutcome{Index: idx, Err: core.ErrSkipped}
	}
	if err := ctx.Err(); err != nil {
		return models.IndexedOutcome{Index: idx, Err: core.IOError("batch cancelled before item started", err)}
	}

	format, text, err := p.ProcessOne(ctx, item)
	if err != nil {
		p.logger.Debug("item failed", "index", idx, "filename", item.Filename, "format", format.String(), "error", err)
		if skipping {
			lowerTo(lowestFailure, int64(idx))
		}
		return models.IndexedOutcome{Index: idx, Format: format, Err: err}
	}
	return models.IndexedOutcome{Index: idx, Format: format, Text: text}
}

// lowerTo stores v in a if v is smaller than the current value.
func lowerTo(a *atomic.Int64, v int64) {
	for {
		cur := a.Load()
		if v >= cur || a.CompareAndSwap(cur, v) {
			return
		}
	}
}

// checkIndices verifies that sorted outcomes cover 0..n-1 exactly once.
func checkIndices(outcomes []models.IndexedOutcome, n int) error {
	if len(outcomes) != n {
		return fmt.Errorf("batch produced %d outcomes for %d items", len(outcomes), n)
	}
	for i, o := range outcomes {
		if o.Index != i {
			return fmt.Errorf("batch outcome at position %d carries index %d", i, o.Index)
		}
	}
	return nil
}
