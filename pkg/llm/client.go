// Package llm provides a client for generating text with Google Gemini.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"love-days-go/internal/config"

	"google.golang.org/genai"
)

// DefaultBlockReason is reported when the model returns no usable text and
// gives no reason for it.
const DefaultBlockReason = "response blocked or empty"

var (
	// ErrNotConfigured is returned by NewClient when no API key is set.
	ErrNotConfigured = errors.New("llm: api key not configured")
	// ErrTransport wraps network failures and timeouts talking to the API.
	ErrTransport = errors.New("llm: transport failure")
)

// BlockedError means the API answered but withheld the generated text.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return "llm: generation blocked: " + e.Reason
}

// Client defines the interface for an LLM client.
//
// GenerateText returns the generated text, or one of: a *BlockedError, an
// error wrapping ErrTransport, or any other error.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type geminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	genCfg  *genai.GenerateContentConfig
}

// NewClient creates a Gemini client from the config. httpClient may be nil.
func NewClient(ctx context.Context, cfg config.LLMConfig, httpClient *http.Client) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		genCfg:  buildGenerationConfig(cfg.Generation),
	}, nil
}

// buildGenerationConfig only sets the parameters that are non-zero in config.
func buildGenerationConfig(gen config.LLMGenerationConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{}
	if gen.Temperature != 0 {
		out.Temperature = genai.Ptr(float32(gen.Temperature))
	}
	if gen.TopP != 0 {
		out.TopP = genai.Ptr(float32(gen.TopP))
	}
	if gen.MaxTokens != 0 {
		out.MaxOutputTokens = int32(gen.MaxTokens)
	}
	return out
}

// GenerateText sends a single prompt to the model. It never retries.
func (c *geminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.genCfg)
	if err != nil {
		return "", classifyError(err)
	}
	return extractText(resp)
}

// classifyError separates network failures and timeouts from everything else.
func classifyError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr),
		errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %w", ErrTransport, err)
	default:
		return fmt.Errorf("failed to call gemini api: %w", err)
	}
}

// extractText reads the first candidate's text. A response without candidates,
// content or text is reported as a *BlockedError.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("empty response from AI model generation")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", &BlockedError{Reason: blockReason(resp)}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", &BlockedError{Reason: blockReason(resp)}
	}
	return text, nil
}

func blockReason(resp *genai.GenerateContentResponse) string {
	if pf := resp.PromptFeedback; pf != nil && pf.BlockReason != "" && pf.BlockReason != genai.BlockedReasonUnspecified {
		reason := string(pf.BlockReason)
		if pf.BlockReasonMessage != "" {
			reason += " (" + pf.BlockReasonMessage + ")"
		}
		return reason
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		cand := resp.Candidates[0]
		if cand.FinishReason != "" && cand.FinishReason != genai.FinishReasonStop {
			reason := "Generation stopped: " + string(cand.FinishReason)
			if ratings := formatSafetyRatings(cand.SafetyRatings); ratings != "" {
				reason += " - Safety: " + ratings
			}
			return reason
		}
	}
	return DefaultBlockReason
}

func formatSafetyRatings(ratings []*genai.SafetyRating) string {
	parts := make([]string, 0, len(ratings))
	for _, r := range ratings {
		if r == nil {
			continue
		}
		s := fmt.Sprintf("%s=%s", r.Category, r.Probability)
		if r.Blocked {
			s += "(blocked)"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
