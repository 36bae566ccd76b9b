// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Summary is the structured result of summarizing one paper. It is the sole
// durable output of the summarization pipeline; all five fields must be
// present. The contributions/limitations count ranges (2-4 and 1-3) are
// requested at the prompt level and not enforced here.
type Summary struct {
	Title         string        `json:"title" yaml:"title"`
	Summary       string        `json:"summary" yaml:"summary"`
	Contributions []LabeledItem `json:"contributions" yaml:"contributions"`
	Limitations   []LabeledItem `json:"limitations" yaml:"limitations"`
	Question      string        `json:"question" yaml:"question"`
}

// LabeledItem is one contribution or limitation: a short label plus a
// sentence of explanatory text.
type LabeledItem struct {
	Label string `json:"label" yaml:"label"`
	Text  string `json:"text" yaml:"text"`
}
