package translate

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/medcatalog/internal/config"
	"github.com/heartmarshall/medcatalog/internal/domain"
)

// LLMTranslator translates through the Anthropic Messages API.
type LLMTranslator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

var _ Translator = (*LLMTranslator)(nil)

// NewLLMTranslator creates an LLMTranslator. Extra options are appended
// after the API key, so tests can point the client at a local server.
func NewLLMTranslator(cfg config.TranslateConfig, opts ...option.RequestOption) *LLMTranslator {
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.LLMAPIKey)}, opts...)
	return &LLMTranslator{
		client:    anthropic.NewClient(opts...),
		model:     cfg.LLMModel,
		maxTokens: cfg.LLMMaxTokens,
	}
}

// ToFrench implements Translator.
func (t *LLMTranslator) ToFrench(ctx context.Context, english string) (string, error) {
	if strings.TrimSpace(english) == "" {
		return "", nil
	}

	msg, err := t.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(t.model),
		MaxTokens: t.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(english))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm translate %q: %w", english, err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("empty response for %q", english)
	}

	out := strings.Trim(strings.TrimSpace(msg.Content[0].Text), `"`)
	if out == "" {
		return "", fmt.Errorf("blank translation for %q", english)
	}
	return out, nil
}

func buildPrompt(english string) string {
	return fmt.Sprintf(`You are a professional translator of ophthalmic and surgical instrument catalogs.

Translate the following English product text into French. Keep references, model numbers, measurements and brand names unchanged. Use standard French surgical terminology.

Text:
%s

Output ONLY the French translation, no quotes, no explanations.`, english)
}

// NewTranslator returns the Translator selected by cfg.Backend.
func NewTranslator(cfg config.TranslateConfig) (Translator, error) {
	switch cfg.Backend {
	case config.TranslateBackendHeuristic, "":
		return NewRewriter(), nil
	case config.TranslateBackendLLM:
		if cfg.LLMAPIKey == "" {
			return nil, fmt.Errorf("translate.llm_api_key is required for the llm backend: %w", domain.ErrFatalConfig)
		}
		return NewLLMTranslator(cfg), nil
	default:
		return nil, fmt.Errorf("unknown translate backend %q: %w", cfg.Backend, domain.ErrFatalConfig)
	}
}
