// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize reduces a paper's extracted text to a structured summary
// via a two-tier model strategy: documents within the chunk-size budget get a
// single call to the main model; longer documents are split into overlapping
// chunks, each compressed by the cheaper chunk model, and the partials are
// consolidated by the main model in one final structure-producing pass.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amonso/paperagent/pkg/types"
)

const (
	defaultChunkSize    = 3000
	defaultChunkOverlap = 200
	defaultMaxRetries   = 3
)

// backoffBase is the default wait base for rate-limit retries: attempt n
// sleeps (n+1) x the base. Tests override this to avoid real sleeps.
var backoffBase = time.Minute

// Pipeline orchestrates chunking, model calls, and response parsing for one
// document at a time. It holds no mutable state across invocations, so
// separate Run calls for different documents may proceed concurrently.
type Pipeline struct {
	backend Backend
	cfg     types.SummarizeConfig
	log     *slog.Logger
}

// NewPipeline validates the chunk configuration, applies defaults, and
// returns a ready pipeline. An overlap at or above the chunk size is a fatal
// configuration error.
func NewPipeline(backend Backend, cfg types.SummarizeConfig, log *slog.Logger) (*Pipeline, error) {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = defaultChunkOverlap
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = backoffBase
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("summarize config: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{backend: backend, cfg: cfg, log: log}, nil
}

// Run produces the structured summary for one paper. Filename is display
// only: it seeds the title fallback in the prompts. The contract is
// all-or-nothing; any unrecovered failure aborts the run and no partial
// summary is returned.
func (p *Pipeline) Run(ctx context.Context, text, filename string) (*types.Summary, error) {
	wordCount := len(strings.Fields(text))

	var response string
	if wordCount > p.cfg.ChunkSize {
		p.log.Info("text exceeds chunk budget, chunking",
			"words", wordCount, "budget", p.cfg.ChunkSize)

		chunks, err := Chunk(text, p.cfg.ChunkSize, p.cfg.ChunkOverlap)
		if err != nil {
			return nil, err
		}
		p.log.Info("split into chunks", "chunks", len(chunks))

		// Strictly sequential: chunk calls share one rate-limit budget.
		partials := make([]string, 0, len(chunks))
		for i, chunk := range chunks {
			p.log.Info("summarizing chunk", "chunk", i+1, "total", len(chunks))
			prompt, err := ChunkPrompt(chunk, i+1, len(chunks))
			if err != nil {
				return nil, fmt.Errorf("building chunk prompt: %w", err)
			}
			partial, err := p.query(ctx, prompt, p.cfg.ChunkModel)
			if err != nil {
				return nil, fmt.Errorf("summarizing chunk %d/%d: %w", i+1, len(chunks), err)
			}
			partials = append(partials, partial)
		}

		p.log.Info("consolidating chunk summaries with main model")
		prompt, err := ConsolidationPrompt(strings.Join(partials, "\n\n"), filename)
		if err != nil {
			return nil, fmt.Errorf("building consolidation prompt: %w", err)
		}
		response, err = p.query(ctx, prompt, p.cfg.MainModel)
		if err != nil {
			return nil, fmt.Errorf("consolidating summaries: %w", err)
		}
	} else {
		prompt, err := SummaryPrompt(text, filename)
		if err != nil {
			return nil, fmt.Errorf("building summary prompt: %w", err)
		}
		response, err = p.query(ctx, prompt, p.cfg.MainModel)
		if err != nil {
			return nil, fmt.Errorf("summarizing paper: %w", err)
		}
	}

	summary, err := ParseSummary(response)
	if err != nil {
		return nil, err
	}
	p.log.Info("summary generated")
	return summary, nil
}

// query issues a single-turn request, retrying rate-limited calls with
// linear backoff (1x, 2x, 3x the configured base). A rate limit on the
// final attempt, or any other error on any attempt, propagates to the
// caller.
func (p *Pipeline) query(ctx context.Context, prompt, model string) (string, error) {
	for attempt := 0; attempt < p.cfg.MaxRetries; attempt++ {
		text, err := p.backend.Complete(ctx, prompt, model)
		if err == nil {
			return strings.TrimSpace(text), nil
		}

		var rle *RateLimitError
		if !errors.As(err, &rle) || attempt == p.cfg.MaxRetries-1 {
			return "", err
		}

		wait := time.Duration(attempt+1) * p.cfg.BackoffBase
		p.log.Warn("rate limited, backing off",
			"wait", wait, "attempt", attempt+2, "max", p.cfg.MaxRetries)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
	// Unreachable with MaxRetries >= 1; callers treat empty as no content.
	return "", nil
}
