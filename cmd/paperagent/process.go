// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonso/paperagent/internal/pdftext"
	"github.com/amonso/paperagent/internal/report"
	"github.com/amonso/paperagent/internal/rewrite"
	"github.com/amonso/paperagent/internal/summarize"
	"github.com/amonso/paperagent/pkg/types"
)

// app bundles the wired pipeline stages.
type app struct {
	cfg       types.PipelineConfig
	log       *slog.Logger
	extractor *pdftext.Extractor
	pipeline  *summarize.Pipeline
	rewriter  *rewrite.Rewriter
	compiler  *report.Compiler
}

func newApp() (*app, error) {
	cfg := loadConfig()
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if cfg.Summarize.APIKey == "" {
		return nil, fmt.Errorf("no Anthropic API key: set summarize.api_key or .secrets/anthropic-api-key")
	}

	backend := &summarize.ClaudeBackend{APIKey: cfg.Summarize.APIKey}
	pipeline, err := summarize.NewPipeline(backend, cfg.Summarize, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		log:       log,
		extractor: &pdftext.Extractor{FallbackPdftotext: true},
		pipeline:  pipeline,
		rewriter:  rewrite.NewRewriter(cfg.Rewrite, backend, log),
		compiler:  report.NewCompiler(log),
	}, nil
}

// runDocument executes the full pipeline for a single PDF: extract,
// summarize, rewrite, write LaTeX, compile.
func runDocument(ctx context.Context, a *app, path string) error {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	a.log.Info("processing paper", "file", filepath.Base(path))

	text, err := a.extractor.Extract(path)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}
	a.log.Info("text extracted", "words", len(strings.Fields(text)))

	sum, err := a.pipeline.Run(ctx, text, stem)
	if err != nil {
		return err
	}

	sum.Summary = a.rewriter.Rewrite(ctx, sum.Summary)

	texPath, err := report.WriteOutputs(sum, stem, a.cfg.Report)
	if err != nil {
		return err
	}
	a.log.Info("LaTeX written", "tex", texPath)

	if a.cfg.Report.Compile {
		compiled, err := a.compiler.Compile(ctx, texPath)
		if err != nil {
			return err
		}
		if compiled {
			a.log.Info("PDF compiled", "pdf", strings.TrimSuffix(texPath, ".tex")+".pdf")
		}
	}
	return nil
}

var processCmd = &cobra.Command{
	Use:   "process <file.pdf>",
	Short: "Summarize a single PDF without watching the inbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("file not found: %s", path)
		}
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return fmt.Errorf("not a PDF file: %s", path)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		return runDocument(cmd.Context(), a, path)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
