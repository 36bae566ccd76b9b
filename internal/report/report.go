// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the filled LaTeX summary document, writes the .tex
// file and its YAML sidecar, and optionally compiles the PDF with latexmk.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.yaml.in/yaml/v3"

	"github.com/amonso/paperagent/pkg/types"
)

// latexTmpl is the fixed document skeleton. Field values are escaped before
// execution; the template itself stays raw LaTeX.
var latexTmpl = template.Must(template.New("paper").Parse(`\documentclass[11pt]{article}
\usepackage[margin=1in]{geometry}
\usepackage{setspace}
\usepackage{hyperref}
\usepackage{times}
\usepackage{xurl}
\usepackage{float}
\singlespacing

\begin{document}
\begin{center}
    {\LARGE \textbf{ {{- .Title -}} }} \\[2ex]
    \normalsize
\end{center}
{{if .Author}}
\begin{center}
    {\textbf{ {{- .Author -}} }} \\[2ex]
    \normalsize
\end{center}
{{end}}
\section*{Paper Summary}
{{.Summary}}

\section*{Contributions}
\begin{itemize}
{{- range .Contributions}}
    \item \textbf{ {{- .Label -}} :} {{.Text}}
{{- end}}
\end{itemize}

\section*{Limitations}
\begin{itemize}
{{- range .Limitations}}
    \item \textbf{ {{- .Label -}} :} {{.Text}}
{{- end}}
\end{itemize}

\section*{One Question to Discuss}
{{.Question}}

\vspace{2\baselineskip}
\textit{Note:} I used \href{https://www.deepl.com/es/write}{www.deepl.com} to improve the quality of my text.
\end{document}
`))

// latexEscaper rewrites LaTeX special characters in one pass, so already
// produced escapes are never escaped again.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	`&`, `\&`,
)

// EscapeLaTeX escapes special LaTeX characters in model-supplied text.
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

// texDoc is the escaped view of a Summary handed to the template.
type texDoc struct {
	Title         string
	Author        string
	Summary       string
	Question      string
	Contributions []texItem
	Limitations   []texItem
}

type texItem struct {
	Label string
	Text  string
}

// FillTemplate renders the complete .tex document for a summary. Every field
// is escaped; the summary content is treated as untrusted model output.
func FillTemplate(sum *types.Summary, author string) (string, error) {
	doc := texDoc{
		Title:         EscapeLaTeX(sum.Title),
		Author:        EscapeLaTeX(author),
		Summary:       EscapeLaTeX(sum.Summary),
		Question:      EscapeLaTeX(sum.Question),
		Contributions: escapeItems(sum.Contributions),
		Limitations:   escapeItems(sum.Limitations),
	}

	var buf bytes.Buffer
	if err := latexTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("rendering LaTeX template: %w", err)
	}
	return buf.String(), nil
}

func escapeItems(items []types.LabeledItem) []texItem {
	out := make([]texItem, len(items))
	for i, it := range items {
		out[i] = texItem{Label: EscapeLaTeX(it.Label), Text: EscapeLaTeX(it.Text)}
	}
	return out
}

// WriteOutputs writes <stem>.tex and the <stem>.yaml sidecar into the outbox
// directory, creating it as needed. It returns the .tex path.
func WriteOutputs(sum *types.Summary, stem string, cfg types.ReportConfig) (string, error) {
	if err := os.MkdirAll(cfg.OutboxDir, 0o755); err != nil {
		return "", fmt.Errorf("creating outbox %s: %w", cfg.OutboxDir, err)
	}

	tex, err := FillTemplate(sum, cfg.Author)
	if err != nil {
		return "", err
	}
	texPath := filepath.Join(cfg.OutboxDir, stem+".tex")
	if err := os.WriteFile(texPath, []byte(tex), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", texPath, err)
	}

	data, err := yaml.Marshal(sum)
	if err != nil {
		return "", fmt.Errorf("marshaling summary: %w", err)
	}
	yamlPath := filepath.Join(cfg.OutboxDir, stem+".yaml")
	if err := os.WriteFile(yamlPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", yamlPath, err)
	}

	return texPath, nil
}
