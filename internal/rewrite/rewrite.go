// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rewrite polishes summary prose through the DeepL API, falling back
// to the model backend when DeepL is unconfigured or fails. Rewriting is
// best-effort: when every path fails the original text is kept.
package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amonso/paperagent/internal/httputil"
	"github.com/amonso/paperagent/internal/summarize"
	"github.com/amonso/paperagent/pkg/types"
)

// fallbackPrompt is the rewrite instruction sent to the model when DeepL is
// unavailable.
const fallbackPrompt = `Rewrite the following academic text to improve clarity and academic tone. Keep the original meaning. Be concise. Maximum 500 words total. Return only the rewritten text, no explanations:`

// deeplAPIURL is the DeepL v2 endpoint. Package-level var for test substitution.
var deeplAPIURL = "https://api.deepl.com/v2/translate"

// deeplMaxRetries bounds 429 retries on the DeepL call.
const deeplMaxRetries = 3

// Rewriter improves the academic tone of a summary paragraph.
type Rewriter struct {
	cfg     types.RewriteConfig
	backend summarize.Backend
	client  *http.Client
	log     *slog.Logger
}

// NewRewriter builds a Rewriter. The backend is used as the fallback when
// DeepL is not configured or its call fails.
func NewRewriter(cfg types.RewriteConfig, backend summarize.Backend, log *slog.Logger) *Rewriter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Rewriter{
		cfg:     cfg,
		backend: backend,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Rewrite returns a polished version of text, or text unchanged when both
// the DeepL and model paths fail.
func (r *Rewriter) Rewrite(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if r.cfg.APIKey != "" {
		out, err := r.viaDeepL(ctx, text)
		if err == nil {
			return out
		}
		r.log.Warn("deepl rewrite failed, using model fallback", "error", err)
	} else {
		r.log.Info("deepl key not configured, using model fallback")
	}

	out, err := r.viaModel(ctx, text)
	if err != nil {
		r.log.Warn("model rewrite failed, keeping original text", "error", err)
		return text
	}
	if strings.TrimSpace(out) == "" {
		return text
	}
	return out
}

// deeplRequest is the DeepL v2 translate request body.
type deeplRequest struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
	SourceLang string   `json:"source_lang"`
}

// deeplResponse is the DeepL v2 translate response body.
type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

func (r *Rewriter) viaDeepL(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(deeplRequest{
		Text:       []string{text},
		TargetLang: "EN-US",
		SourceLang: "EN",
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, deeplAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+r.cfg.APIKey)
	if r.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", r.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, r.client, req, deeplMaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling deepl: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepl returned %d: %s", resp.StatusCode, respBody)
	}

	var dResp deeplResponse
	if err := json.Unmarshal(respBody, &dResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(dResp.Translations) == 0 {
		return "", fmt.Errorf("deepl returned no translations")
	}
	return dResp.Translations[0].Text, nil
}

func (r *Rewriter) viaModel(ctx context.Context, text string) (string, error) {
	return r.backend.Complete(ctx, fallbackPrompt+"\n\n"+text, r.cfg.FallbackModel)
}
