package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperagent/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call the model API.
type AIConfig struct {
	// MainModel is the higher-capability model used for single-pass and
	// consolidation summarization (e.g. "claude-opus-4-5").
	MainModel string `json:"main_model" yaml:"main_model"`

	// ChunkModel is the cheaper model used for per-chunk partial summaries
	// (e.g. "claude-haiku-4-5-20251001").
	ChunkModel string `json:"chunk_model" yaml:"chunk_model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of attempts for rate-limited API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// BackoffBase is the base wait between rate-limited attempts; attempt n
	// sleeps n times this value (default 60s).
	BackoffBase time.Duration `json:"backoff_base" yaml:"backoff_base"`
}

// SummarizeConfig holds settings for the summarization pipeline.
type SummarizeConfig struct {
	AIConfig `yaml:",inline"`

	// ChunkSize is the per-call input budget in words (default 3000).
	// Documents longer than this are split into overlapping chunks.
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// ChunkOverlap is the number of words shared between consecutive
	// chunks (default 200). Must be smaller than ChunkSize.
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`
}

// Validate reports invalid chunk parameters. Overlap must stay below the
// chunk size or the chunk cursor never advances.
func (c SummarizeConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap %d must be in [0, chunk_size %d)", c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}

// WatchConfig holds settings for the inbox watcher.
type WatchConfig struct {
	// InboxDir is the directory watched for newly dropped PDFs.
	InboxDir string `json:"inbox_dir" yaml:"inbox_dir"`

	// StabilityChecks is the number of consecutive equal size readings
	// before a file is considered fully written (default 3).
	StabilityChecks int `json:"stability_checks" yaml:"stability_checks"`

	// StabilityInterval is the delay between size readings (default 1s).
	StabilityInterval time.Duration `json:"stability_interval" yaml:"stability_interval"`
}

// RewriteConfig holds settings for the prose-rewriting stage.
type RewriteConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the DeepL authentication key. When empty the rewrite stage
	// skips DeepL and uses the model fallback directly.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// FallbackModel is the model used to rewrite the summary when DeepL is
	// unavailable or fails.
	FallbackModel string `json:"fallback_model" yaml:"fallback_model"`
}

// ReportConfig holds settings for the LaTeX output stage.
type ReportConfig struct {
	// OutboxDir is the directory where .tex, .yaml, and compiled .pdf files
	// are written.
	OutboxDir string `json:"outbox_dir" yaml:"outbox_dir"`

	// Author is the name placed in the byline of the generated document.
	Author string `json:"author" yaml:"author"`

	// Compile controls whether latexmk is invoked on the generated .tex.
	Compile bool `json:"compile" yaml:"compile"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Watch     WatchConfig     `json:"watch" yaml:"watch"`
	Summarize SummarizeConfig `json:"summarize" yaml:"summarize"`
	Rewrite   RewriteConfig   `json:"rewrite" yaml:"rewrite"`
	Report    ReportConfig    `json:"report" yaml:"report"`
}
