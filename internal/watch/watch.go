// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch monitors the inbox directory for newly dropped PDFs and
// hands stable files to a processing callback.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/amonso/paperagent/pkg/types"
)

const (
	defaultStabilityChecks   = 3
	defaultStabilityInterval = time.Second
)

// ignoreExtensions are partial-download suffixes produced by browsers and
// sync clients.
var ignoreExtensions = map[string]bool{
	".crdownload": true,
	".part":       true,
	".tmp":        true,
}

// ProcessFunc handles one stable PDF. Errors are logged by the watcher and
// never stop the watch loop.
type ProcessFunc func(ctx context.Context, path string) error

// Watcher waits for PDFs in the inbox and dispatches them one at a time.
type Watcher struct {
	cfg     types.WatchConfig
	process ProcessFunc
	log     *slog.Logger
}

// NewWatcher builds a Watcher. Zero stability settings fall back to
// 3 checks at 1 s intervals.
func NewWatcher(cfg types.WatchConfig, process ProcessFunc, log *slog.Logger) *Watcher {
	if cfg.StabilityChecks <= 0 {
		cfg.StabilityChecks = defaultStabilityChecks
	}
	if cfg.StabilityInterval <= 0 {
		cfg.StabilityInterval = defaultStabilityInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{cfg: cfg, process: process, log: log}
}

// IsPDF reports whether path has a .pdf extension, case-insensitively.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// IsTempFile reports whether path looks like a partial download or an
// editor scratch file.
func IsTempFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") {
		return true
	}
	return ignoreExtensions[strings.ToLower(filepath.Ext(name))]
}

// Run watches the inbox until ctx is cancelled. Per-file processing failures
// are logged and skipped; only watcher-level failures end the loop.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.cfg.InboxDir, 0o755); err != nil {
		return fmt.Errorf("creating inbox %s: %w", w.cfg.InboxDir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.cfg.InboxDir); err != nil {
		return fmt.Errorf("watching %s: %w", w.cfg.InboxDir, err)
	}
	w.log.Info("watching inbox", "dir", w.cfg.InboxDir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			w.handleCreate(ctx, event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleCreate(ctx context.Context, path string) {
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return
	}
	if !IsPDF(path) {
		return
	}
	if IsTempFile(path) {
		w.log.Info("ignored temp file", "file", filepath.Base(path))
		return
	}

	if !w.waitForStable(ctx, path) {
		w.log.Warn("file not stable after timeout", "file", filepath.Base(path))
		return
	}

	if err := w.process(ctx, path); err != nil {
		w.log.Error("processing failed", "file", filepath.Base(path), "error", err)
	}
}

// waitForStable blocks until the file size is unchanged and non-zero across
// the configured number of consecutive reads.
func (w *Watcher) waitForStable(ctx context.Context, path string) bool {
	var prev int64 = -1
	stable := 0
	for i := 0; i < w.cfg.StabilityChecks+2; i++ {
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		size := info.Size()
		if size > 0 && size == prev {
			stable++
			if stable >= w.cfg.StabilityChecks {
				return true
			}
		} else {
			stable = 0
		}
		prev = size

		select {
		case <-ctx.Done():
			return false
		case <-time.After(w.cfg.StabilityInterval):
		}
	}
	return false
}
