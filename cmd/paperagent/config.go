// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/amonso/paperagent/pkg/types"
)

func init() {
	viper.SetDefault("watch.inbox_dir", "PapersInbox")
	viper.SetDefault("watch.stability_checks", 3)
	viper.SetDefault("watch.stability_interval", "1s")

	viper.SetDefault("summarize.main_model", "claude-opus-4-5")
	viper.SetDefault("summarize.chunk_model", "claude-haiku-4-5-20251001")
	viper.SetDefault("summarize.max_retries", 3)
	viper.SetDefault("summarize.backoff_base", "60s")
	viper.SetDefault("summarize.chunk_size", 3000)
	viper.SetDefault("summarize.chunk_overlap", 200)

	viper.SetDefault("rewrite.fallback_model", "claude-haiku-4-5-20251001")
	viper.SetDefault("rewrite.timeout", "30s")

	viper.SetDefault("report.outbox_dir", "PapersOut")
	viper.SetDefault("report.compile", true)
}

// loadConfig assembles the pipeline configuration from viper, with API keys
// falling back to the .secrets/ directory.
func loadConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Watch: types.WatchConfig{
			InboxDir:          viper.GetString("watch.inbox_dir"),
			StabilityChecks:   viper.GetInt("watch.stability_checks"),
			StabilityInterval: viper.GetDuration("watch.stability_interval"),
		},
		Summarize: types.SummarizeConfig{
			AIConfig: types.AIConfig{
				MainModel:   viper.GetString("summarize.main_model"),
				ChunkModel:  viper.GetString("summarize.chunk_model"),
				APIKey:      secretDefault("anthropic-api-key", viper.GetString("summarize.api_key")),
				MaxRetries:  viper.GetInt("summarize.max_retries"),
				BackoffBase: viper.GetDuration("summarize.backoff_base"),
			},
			ChunkSize:    viper.GetInt("summarize.chunk_size"),
			ChunkOverlap: viper.GetInt("summarize.chunk_overlap"),
		},
		Rewrite: types.RewriteConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("rewrite.timeout"),
				UserAgent: "paperagent/" + version,
			},
			APIKey:        secretDefault("deepl-api-key", viper.GetString("rewrite.api_key")),
			FallbackModel: viper.GetString("rewrite.fallback_model"),
		},
		Report: types.ReportConfig{
			OutboxDir: viper.GetString("report.outbox_dir"),
			Author:    viper.GetString("report.author"),
			Compile:   viper.GetBool("report.compile"),
		},
	}
}
