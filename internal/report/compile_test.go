// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func newTestCompiler(exec executor) *Compiler {
	return &Compiler{exec: exec, log: slog.Default()}
}

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	available bool
	runDir    string
	runArgs   []string
	runOut    []byte
	runErr    error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.available {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	m.runDir = dir
	m.runArgs = append([]string{name}, args...)
	return m.runOut, m.runErr
}

func TestCompileSkipsWhenLatexmkMissing(t *testing.T) {
	exec := &mockExecutor{available: false}
	c := newTestCompiler(exec)

	ok, err := c.Compile(context.Background(), "/out/paper1.tex")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if ok {
		t.Error("expected compilation to be skipped")
	}
	if exec.runArgs != nil {
		t.Error("latexmk must not be invoked when missing")
	}
}

func TestCompileRunsLatexmkInDocumentDir(t *testing.T) {
	exec := &mockExecutor{available: true}
	c := newTestCompiler(exec)

	texPath := filepath.Join("/out", "paper1.tex")
	ok, err := c.Compile(context.Background(), texPath)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !ok {
		t.Error("expected ok = true on success")
	}
	if exec.runDir != "/out" {
		t.Errorf("run dir = %q, want /out", exec.runDir)
	}
	want := []string{"latexmk", "-pdf", "-interaction=nonstopmode", "-halt-on-error", "paper1.tex"}
	if len(exec.runArgs) != len(want) {
		t.Fatalf("args = %v, want %v", exec.runArgs, want)
	}
	for i := range want {
		if exec.runArgs[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, exec.runArgs[i], want[i])
		}
	}
}

func TestCompileFailureIncludesOutputTail(t *testing.T) {
	exec := &mockExecutor{
		available: true,
		runErr:    errors.New("exit status 12"),
		runOut:    []byte("! Undefined control sequence.\nl.42 \\wat"),
	}
	c := newTestCompiler(exec)

	ok, err := c.Compile(context.Background(), "/out/paper1.tex")
	if ok {
		t.Error("expected ok = false on failure")
	}
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Undefined control sequence") {
		t.Errorf("error does not include tool output: %v", err)
	}
}

func TestTail(t *testing.T) {
	if got := tail([]byte("short"), 10); got != "short" {
		t.Errorf("tail short = %q", got)
	}
	got := tail([]byte("0123456789abcdef"), 4)
	if got != "...cdef" {
		t.Errorf("tail long = %q", got)
	}
}
