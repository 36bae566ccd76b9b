// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	binLatexmk     = "latexmk"
	compileTimeout = 120 * time.Second
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Compiler turns a .tex file into a PDF with latexmk. Compilation is
// optional: a missing latexmk binary is a skip, not an error.
type Compiler struct {
	exec executor
	log  *slog.Logger
}

// NewCompiler builds a Compiler using the host latexmk installation.
func NewCompiler(log *slog.Logger) *Compiler {
	if log == nil {
		log = slog.Default()
	}
	return &Compiler{exec: &osExecutor{}, log: log}
}

// Compile runs latexmk on texPath inside its own directory. It returns
// (false, nil) when latexmk is not installed and (true, nil) on success.
// On failure the error includes the tail of the tool output.
func (c *Compiler) Compile(ctx context.Context, texPath string) (bool, error) {
	if _, err := c.exec.LookPath(binLatexmk); err != nil {
		c.log.Info("latexmk not found, skipping PDF compilation", "tex", texPath)
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, compileTimeout)
	defer cancel()

	dir := filepath.Dir(texPath)
	out, err := c.exec.Run(ctx, dir, binLatexmk,
		"-pdf", "-interaction=nonstopmode", "-halt-on-error", filepath.Base(texPath))
	if err != nil {
		return false, fmt.Errorf("latexmk failed for %s: %w: %s", texPath, err, tail(out, 800))
	}
	return true, nil
}

// tail returns the last n bytes of command output, where the LaTeX error
// usually lives.
func tail(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return "..." + string(b[len(b)-n:])
}
