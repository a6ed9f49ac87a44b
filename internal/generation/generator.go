// Package generation turns generation parameters into a finished recipe:
// prompt, completion call, score extraction, markup and history.
package generation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/llm-recipes/internal/chefs"
	"github.com/temirov/llm-recipes/internal/history"
	"github.com/temirov/llm-recipes/internal/llm"
	"github.com/temirov/llm-recipes/internal/markup"
	"github.com/temirov/llm-recipes/internal/prompt"
	"github.com/temirov/llm-recipes/internal/recipe"
	"github.com/temirov/llm-recipes/internal/settings"
)

const (
	FallbackModel       = "gpt-4"
	FallbackTemperature = 0.7
	FallbackMaxTokens   = 2000

	reasonNoChoices     = "no choices returned"
	reasonNoMessage     = "first choice has no message"
	reasonEmptyContent  = "first choice has empty content"
	reasonRefusalFormat = "model refused: "
)

// SettingsReader resolves dot-delimited settings with caller fallbacks.
type SettingsReader interface {
	GetString(key string, fallback string) string
	GetFloat64(key string, fallback float64) float64
	GetInt(key string, fallback int) int
}

// CredentialSource yields the completion-service credential, if any.
type CredentialSource interface {
	Get() (string, bool)
}

// Completer performs one chat completion.
type Completer interface {
	Complete(ctx context.Context, request llm.CompletionRequest) (llm.CompletionResponse, error)
}

// CompleterFactory builds a completer bound to a credential.
type CompleterFactory func(credential string) Completer

// Generator runs single, synchronous generations. It holds no mutable state,
// so concurrent calls are independent.
type Generator struct {
	Settings     SettingsReader
	Credentials  CredentialSource
	NewCompleter CompleterFactory
	Catalog      chefs.Catalog
	History      history.Sink
	Logger       *zap.Logger
	Now          func() time.Time
	NewID        func() string
}

type completionSettings struct {
	model       string
	temperature float64
	maxTokens   int
}

func (generator Generator) resolveSettings() completionSettings {
	resolved := completionSettings{model: FallbackModel, temperature: FallbackTemperature, maxTokens: FallbackMaxTokens}
	if generator.Settings == nil {
		return resolved
	}
	resolved.model = generator.Settings.GetString(settings.KeyModel, FallbackModel)
	resolved.temperature = generator.Settings.GetFloat64(settings.KeyTemperature, FallbackTemperature)
	resolved.maxTokens = generator.Settings.GetInt(settings.KeyMaxTokens, FallbackMaxTokens)
	return resolved
}

func (generator Generator) logger() *zap.Logger {
	if generator.Logger == nil {
		return zap.NewNop()
	}
	return generator.Logger
}

// Generate produces a recipe for parameters. Failures are *ConfigurationError,
// *ServiceError or *ResponseError. A missing or invalid complexity score and
// a failed history write never fail the call.
func (generator Generator) Generate(ctx context.Context, parameters recipe.Parameters) (recipe.Result, error) {
	credential, found := "", false
	if generator.Credentials != nil {
		credential, found = generator.Credentials.Get()
	}
	if !found || strings.TrimSpace(credential) == "" {
		return recipe.Result{}, &ConfigurationError{Err: ErrMissingCredential}
	}

	resolved := generator.resolveSettings()
	logger := generator.logger()
	logger.Debug("generating recipe",
		zap.String("model", resolved.model),
		zap.Float64("temperature", resolved.temperature),
		zap.Int("max_tokens", resolved.maxTokens),
		zap.Int("chefs", len(parameters.Chefs)))

	request := llm.CompletionRequest{
		Model:        resolved.model,
		SystemPrompt: prompt.System(),
		UserPrompt:   prompt.Build(parameters, generator.Catalog),
		Temperature:  resolved.temperature,
		MaxTokens:    resolved.maxTokens,
	}
	response, err := generator.NewCompleter(credential).Complete(ctx, request)
	if err != nil {
		return recipe.Result{}, &ServiceError{Model: resolved.model, Err: err}
	}

	rawText, err := firstChoiceText(response)
	if err != nil {
		return recipe.Result{}, err
	}

	score := recipe.ExtractComplexityScore(rawText)
	if !score.Available() {
		logger.Info("complexity score unavailable", zap.String("model", resolved.model))
	}

	result := recipe.Result{
		ID:              generator.newID(),
		Title:           recipe.ExtractTitle(rawText),
		RawText:         rawText,
		HTML:            markup.Format(rawText),
		ComplexityScore: score,
		Parameters:      parameters.Clone(),
		Model:           resolved.model,
		CreatedAt:       generator.now(),
	}

	if generator.History != nil {
		if historyErr := generator.History.Append(ctx, history.NewEntry(result)); historyErr != nil {
			logger.Warn("recipe history not saved", zap.String("recipe_id", result.ID), zap.Error(historyErr))
		}
	}
	return result, nil
}

func firstChoiceText(response llm.CompletionResponse) (string, error) {
	if len(response.Choices) == 0 {
		return "", &ResponseError{Reason: reasonNoChoices}
	}
	message := response.Choices[0].Message
	if message == nil {
		return "", &ResponseError{Reason: reasonNoMessage}
	}
	if strings.TrimSpace(message.Content) == "" {
		if refusal := strings.TrimSpace(message.Refusal); refusal != "" {
			return "", &ResponseError{Reason: reasonRefusalFormat + refusal}
		}
		return "", &ResponseError{Reason: reasonEmptyContent}
	}
	return message.Content, nil
}

func (generator Generator) now() time.Time {
	if generator.Now != nil {
		return generator.Now()
	}
	return time.Now().UTC()
}

func (generator Generator) newID() string {
	if generator.NewID != nil {
		return generator.NewID()
	}
	return uuid.NewString()
}
