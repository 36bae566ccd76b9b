// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/amonso/paperagent/pkg/types"
)

// snippetLen bounds the diagnostic excerpt carried by a ParseError.
const snippetLen = 400

// ParseError reports that no JSON object could be recovered from a model
// reply. Snippet holds the start of the offending response for diagnostics.
type ParseError struct {
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no JSON object found in model response: %s", e.Snippet)
}

// fenceRe matches markdown code-fence markers, optionally with a language tag.
var fenceRe = regexp.MustCompile("```[a-zA-Z]*[ \t]*\n?")

// ParseSummary extracts a Summary from the model's free-text reply. Models
// routinely wrap JSON in markdown fences or surround it with commentary, so
// parsing proceeds in two tolerant tiers: decode the fence-stripped text
// whole, then decode the outermost {...} span. Only when both fail does it
// return a *ParseError.
func ParseSummary(raw string) (*types.Summary, error) {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))

	var s types.Summary
	if err := json.Unmarshal([]byte(cleaned), &s); err == nil && strings.HasPrefix(cleaned, "{") {
		return &s, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		s = types.Summary{}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &s); err == nil {
			return &s, nil
		}
	}

	snippet := raw
	if len(snippet) > snippetLen {
		snippet = snippet[:snippetLen]
	}
	return nil, &ParseError{Snippet: snippet}
}
