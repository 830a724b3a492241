package ai

import (
	"context"
	"strings"
	"time"

	"sitegen/internal/ai/extract"
	"sitegen/internal/ai/prompts"
	"sitegen/internal/types"
)

// Provider is an opaque text-completion service.
type Provider interface {
	Name() string
	// Complete sends the system instruction and user prompt and returns the raw completion text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Generator struct {
	provider  Provider
	extractor *extract.Extractor
	timeout   time.Duration
}

// NewGenerator wires a provider to an extractor. A zero timeout leaves provider
// calls bounded only by the caller's context.
func NewGenerator(provider Provider, extractor *extract.Extractor, timeout time.Duration) *Generator {
	return &Generator{
		provider:  provider,
		extractor: extractor,
		timeout:   timeout,
	}
}

// ProviderName reports which backend this generator dispatches to.
func (g *Generator) ProviderName() string { return g.provider.Name() }

// Dispatch prepends the instruction preamble to userPrompt, makes exactly one
// provider call and returns the raw completion text.
func (g *Generator) Dispatch(ctx context.Context, userPrompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.provider.Complete(ctx, prompts.GetSiteGenerationSystemPrompt(), prompts.GetSiteGenerationUserPrompt(userPrompt))
	if err != nil {
		return "", types.NewError(types.KindProvider, err.Error(), err)
	}
	if strings.TrimSpace(text) == "" {
		return "", types.NewError(types.KindProvider, g.provider.Name()+" returned empty response", nil)
	}
	return text, nil
}
