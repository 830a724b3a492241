package ai

import (
	"context"
	"time"

	"sitegen/internal/ai/prompts"
	"sitegen/internal/types"
	"sitegen/internal/utils"

	"github.com/rs/zerolog/log"
)

// GenerateWebsite dispatches the request's prompt and extracts the website payload
// from the completion. Every failure is a *types.GenerationError.
func (g *Generator) GenerateWebsite(ctx context.Context, req types.GenerationRequest) (types.GenerationResult, error) {
	started := time.Now()
	logger := log.With().
		Str("provider", g.provider.Name()).
		Str("prompt_version", prompts.SiteGenerationPromptVersion).
		Int("prompt_len", len(req.Prompt())).
		Logger()

	raw, err := g.Dispatch(ctx, req.Prompt())
	if err != nil {
		logger.Error().Err(err).
			Bool("transient", utils.ShouldRetry(err)).
			Dur("elapsed", time.Since(started)).
			Msg("provider call failed")
		return types.GenerationResult{}, err
	}
	logger.Debug().Int("raw_len", len(raw)).Msg("received completion")

	result, err := g.extractor.Extract(raw)
	if err != nil {
		event := logger.Warn().Err(err)
		if genErr, ok := types.AsGenerationError(err); ok {
			event = event.Str("type", string(genErr.Kind)).Str("raw", genErr.Raw)
		}
		event.Dur("elapsed", time.Since(started)).Msg("could not extract website from completion")
		return types.GenerationResult{}, err
	}

	logger.Info().
		Str("project_id", result.ProjectID).
		Int("react_components", len(result.ReactComponents)).
		Int("redux_files", len(result.ReduxFiles)).
		Dur("elapsed", time.Since(started)).
		Msg("website generated")
	return result, nil
}
