// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts plain text from PDF papers. The primary path is
// the pure-Go ledongthuc/pdf reader; when that yields nothing usable an
// optional pdftotext subprocess fallback is tried.
package pdftext

import (
	"fmt"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Extractor reads the full plain text of a PDF document.
type Extractor struct {
	// FallbackPdftotext enables the pdftotext subprocess fallback when the
	// Go reader fails or extracts nothing.
	FallbackPdftotext bool
}

// Extract returns the document's plain text with NUL bytes stripped, or an
// error when no text is recoverable.
func (e *Extractor) Extract(path string) (string, error) {
	text, err := extractPDFLib(path)
	if err != nil && e.FallbackPdftotext {
		text, err = extractPdftotext(path)
	}
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}

	// NUL bytes from broken encodings upset downstream prompt handling.
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text recoverable from %s", path)
	}
	return text, nil
}

func extractPDFLib(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}

	text := strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return "", fmt.Errorf("extracted empty text")
	}
	return text, nil
}

func extractPdftotext(path string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not installed: %w", err)
	}
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	if strings.TrimSpace(string(out)) == "" {
		return "", fmt.Errorf("pdftotext extracted empty text")
	}
	return string(out), nil
}
