package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/markdave123-py/docparser/internal/app"
	"github.com/markdave123-py/docparser/internal/config"
	objectclient "github.com/markdave123-py/docparser/internal/core/object-client"
	"github.com/markdave123-py/docparser/internal/core/parsing_engine"
	"github.com/markdave123-py/docparser/internal/logging"
	"github.com/markdave123-py/docparser/internal/models"
	"github.com/markdave123-py/docparser/internal/services"
)

type options struct {
	outputDir string
	workers   int
	policy    string
	partial   bool
	logLevel  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "parser [flags] FILE...",
		Short: "Extract plain text from documents",
		Long: `Extract plain text from PDF, DOCX, XLSX, PPTX, text and image files.

Inputs may be local paths or s3://bucket/key URIs. Texts are written to
stdout in input order, or one NNN-<name>.txt file per input under
--output-dir (a local directory or an s3://bucket/prefix).`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), opts, args, stdout, stderr)
			if err != nil {
				fmt.Fprintln(stderr, "Error:", err)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.outputDir, "output-dir", "o", "", "write one text file per input into this directory or s3:// prefix")
	f.IntVarP(&opts.workers, "workers", "w", -1, "worker pool size (0 = number of CPUs; default from PARSER_WORKERS)")
	f.StringVar(&opts.policy, "policy", "", "failure policy: collect-all or skip-after-error")
	f.BoolVar(&opts.partial, "partial", false, "report every item instead of failing the batch on the first error")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	return cmd
}

func run(ctx context.Context, opts *options, inputs []string, stdout, stderr io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr})

	processor, err := app.NewProcessor(cfg, logger)
	if err != nil {
		return err
	}

	var storage objectclient.ObjectClient
	if services.NeedsStorage(opts.outputDir) || services.NeedsStorage(inputs...) {
		s3Client, err := objectclient.NewS3Client(ctx, objectclient.S3Options{
			Region:    cfg.AwsRegion,
			AccessKey: cfg.AwsAccessKey,
			SecretKey: cfg.AwsSecretKey,
		}, logger)
		if err != nil {
			return err
		}
		storage = s3Client
	}
	svc := services.NewParseService(storage)

	items, err := svc.LoadInputs(ctx, inputs)
	if err != nil {
		return err
	}

	if opts.partial {
		return runPartial(ctx, processor, svc, opts.outputDir, items, stdout, stderr)
	}

	texts, err := processor.ProcessBatch(ctx, items)
	if err != nil {
		return err
	}
	return svc.WriteOutputs(ctx, opts.outputDir, services.NameOutputs(items, texts), stdout)
}

// runPartial writes every successful text and lists failures on stderr. It
// still returns an error when any item failed.
func runPartial(ctx context.Context, p *parsing_engine.Processor, svc *services.ParseService, dest string, items []models.InputItem, stdout, stderr io.Writer) error {
	results, err := p.Run(ctx, items)
	if err != nil {
		return err
	}

	var outputs []services.Output
	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
			fmt.Fprintf(stderr, "item %d (%s): %v\n", r.Index, r.Filename, r.Err)
			continue
		}
		outputs = append(outputs, services.Output{Name: services.OutputName(r.Index, r.Filename), Text: r.Text})
	}

	if err := svc.WriteOutputs(ctx, dest, outputs, stdout); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d items failed", failed, len(results))
	}
	return nil
}

func (o *options) apply(cfg *config.Config) error {
	if o.workers >= 0 {
		cfg.Workers = o.workers
	}
	if o.policy != "" {
		cfg.FailurePolicy = o.policy
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg.Validate()
}
