package app

import (
	"fmt"
	"log/slog"

	"github.com/markdave123-py/docparser/internal/config"
	"github.com/markdave123-py/docparser/internal/core/extractors"
	"github.com/markdave123-py/docparser/internal/core/parsing_engine"
)

type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Processor *parsing_engine.Processor
	Server    *Server
}

// NewApp wires the parsing pipeline and the HTTP server around it.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	processor, err := NewProcessor(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:    cfg,
		Logger:    logger,
		Processor: processor,
		Server:    NewServer(cfg, processor, logger),
	}, nil
}

// NewProcessor builds catalog → sniffer → extractors → dispatcher → processor.
func NewProcessor(cfg *config.Config, logger *slog.Logger) (*parsing_engine.Processor, error) {
	set := extractors.NewSet(extractors.Options{
		TesseractPath: cfg.TesseractPath,
		TessdataDir:   cfg.TessdataDir,
		OCRLanguages:  cfg.OCRLanguages,
		TempDir:       cfg.TempDir,
	})

	dispatcher, err := parsing_engine.NewDispatcher(set)
	if err != nil {
		return nil, fmt.Errorf("build dispatcher: %w", err)
	}
	sniffer := parsing_engine.NewSniffer(parsing_engine.DefaultCatalog())

	engineCfg := cfg.EngineConfig()
	logger.Info("parsing engine ready", "workers", engineCfg.Workers, "policy", string(engineCfg.Policy))
	return parsing_engine.NewProcessor(sniffer, dispatcher, engineCfg, logger), nil
}
