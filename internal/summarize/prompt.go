// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"text/template"
)

// jsonSchema is the exact response schema requested from the model in the
// single-pass and consolidation prompts.
const jsonSchema = `{
  "title": "string",
  "summary": "string (1-2 paragraphs, max 150 words)",
  "contributions": [{"label": "string", "text": "string"}],
  "limitations": [{"label": "string", "text": "string"}],
  "question": "string"
}`

// jsonRules are the count and format constraints that accompany the schema.
// They are advisory: the parser accepts any well-formed object regardless of
// array lengths.
const jsonRules = `Rules:
- contributions: 2 to 4 items
- limitations: 1 to 3 items
- Total words across summary + contributions + limitations + question: max 500
- Return ONLY valid JSON, no markdown, no code fences, no explanations`

// summaryPromptTmpl is the single-pass prompt: full paper text plus the
// schema and a title fallback to the filename.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`You are an academic paper summarizer.

Analyze the following paper and return a structured JSON summary with this exact schema:
{{.Schema}}

The "title" should be the actual paper title if detectable, otherwise use "{{.Filename}}".
{{.Rules}}

Paper text:
{{.Text}}`))

// chunkPromptTmpl asks for an unstructured partial summary of one chunk.
// No schema here: intermediate summaries stay free text so a structural
// parse failure can only happen once, at the final pass.
var chunkPromptTmpl = template.Must(template.New("chunk").Parse(`Summarize portion {{.Ordinal}}/{{.Total}} of an academic paper.
Extract the main points, any contributions mentioned, and any limitations mentioned.
Return a concise paragraph of at most 100 words.
Return ONLY the summary text, no labels or JSON.

Text:
{{.Text}}`))

// consolidationPromptTmpl merges the partial summaries into the same
// structured form the single-pass prompt requests.
var consolidationPromptTmpl = template.Must(template.New("consolidation").Parse(`You are an academic paper summarizer.
The following are partial summaries of consecutive chunks from a long academic paper.

Consolidate them into a single structured JSON summary with this exact schema:
{{.Schema}}

The "title" should be the actual paper title if detectable, otherwise use "{{.Filename}}".
{{.Rules}}

Partial summaries:
{{.Text}}`))

type promptData struct {
	Schema   string
	Rules    string
	Filename string
	Text     string
	Ordinal  int
	Total    int
}

// SummaryPrompt builds the single-pass prompt for a paper that fits within
// one call's input budget.
func SummaryPrompt(text, filename string) (string, error) {
	return render(summaryPromptTmpl, promptData{
		Schema:   jsonSchema,
		Rules:    jsonRules,
		Filename: filename,
		Text:     text,
	})
}

// ChunkPrompt builds the per-chunk prompt. Ordinal is 1-based.
func ChunkPrompt(chunk string, ordinal, total int) (string, error) {
	return render(chunkPromptTmpl, promptData{
		Text:    chunk,
		Ordinal: ordinal,
		Total:   total,
	})
}

// ConsolidationPrompt builds the final prompt over the joined partial
// summaries, in chunk order.
func ConsolidationPrompt(partials, filename string) (string, error) {
	return render(consolidationPromptTmpl, promptData{
		Schema:   jsonSchema,
		Rules:    jsonRules,
		Filename: filename,
		Text:     partials,
	})
}

func render(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
