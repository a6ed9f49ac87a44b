package generation_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/llm-recipes/internal/chefs"
	"github.com/temirov/llm-recipes/internal/generation"
	"github.com/temirov/llm-recipes/internal/history"
	"github.com/temirov/llm-recipes/internal/llm"
	"github.com/temirov/llm-recipes/internal/recipe"
	"github.com/temirov/llm-recipes/internal/secrets"
)

const scallopsResponse = "Seared Scallops\nINGREDIENTS:\n- Scallops\n- Butter\n\nNOTES:\nSear hard.\n**Complexity Score: 4/10**"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSettings map[string]any

func (settings fakeSettings) GetString(key string, fallback string) string {
	if value, ok := settings[key].(string); ok {
		return value
	}
	return fallback
}

func (settings fakeSettings) GetFloat64(key string, fallback float64) float64 {
	if value, ok := settings[key].(float64); ok {
		return value
	}
	return fallback
}

func (settings fakeSettings) GetInt(key string, fallback int) int {
	if value, ok := settings[key].(int); ok {
		return value
	}
	return fallback
}

type fakeCompleter struct {
	response llm.CompletionResponse
	err      error
	requests []llm.CompletionRequest
}

func (completer *fakeCompleter) Complete(_ context.Context, request llm.CompletionRequest) (llm.CompletionResponse, error) {
	completer.requests = append(completer.requests, request)
	return completer.response, completer.err
}

type recordingSink struct {
	entries []history.Entry
	err     error
}

func (sink *recordingSink) Append(_ context.Context, entry history.Entry) error {
	if sink.err != nil {
		return sink.err
	}
	sink.entries = append(sink.entries, entry)
	return nil
}

func textResponse(content string) llm.CompletionResponse {
	return llm.CompletionResponse{Choices: []llm.Choice{{Message: &llm.Message{Content: content}, FinishReason: "stop"}}}
}

type harness struct {
	generator    generation.Generator
	completer    *fakeCompleter
	sink         *recordingSink
	credentials  []string
	observedLogs *observer.ObservedLogs
}

func newHarness(t *testing.T, response llm.CompletionResponse, settings fakeSettings) *harness {
	t.Helper()
	catalog, err := chefs.Default()
	require.NoError(t, err)

	core, observedLogs := observer.New(zapcore.DebugLevel)
	h := &harness{
		completer:    &fakeCompleter{response: response},
		sink:         &recordingSink{},
		observedLogs: observedLogs,
	}
	h.generator = generation.Generator{
		Settings:    settings,
		Credentials: secrets.NewMemory("sk-test"),
		NewCompleter: func(credential string) generation.Completer {
			h.credentials = append(h.credentials, credential)
			return h.completer
		},
		Catalog: catalog,
		History: h.sink,
		Logger:  zap.New(core),
		Now:     func() time.Time { return time.Date(2024, time.May, 4, 10, 0, 0, 0, time.UTC) },
		NewID:   func() string { return "recipe-1" },
	}
	return h
}

func TestGenerateScallops(t *testing.T) {
	h := newHarness(t, textResponse(scallopsResponse), nil)
	parameters := recipe.DefaultParameters()
	parameters.SetChefInfluence("thomas_keller", 80)

	result, err := h.generator.Generate(context.Background(), parameters)
	require.NoError(t, err)

	assert.Equal(t, "recipe-1", result.ID)
	assert.Equal(t, "Seared Scallops", result.Title)
	assert.Equal(t, recipe.ComplexityScore(4), result.ComplexityScore)
	assert.Equal(t, scallopsResponse, result.RawText)
	assert.Equal(t, 1, strings.Count(result.HTML, "<ul>"))
	assert.Equal(t, 2, strings.Count(result.HTML, "<li>"))
	assert.Contains(t, result.HTML, `<div class="chef-notes">`)
	assert.Equal(t, parameters, result.Parameters)
	assert.Equal(t, time.Date(2024, time.May, 4, 10, 0, 0, 0, time.UTC), result.CreatedAt)

	require.Len(t, h.sink.entries, 1)
	assert.Equal(t, "Seared Scallops", h.sink.entries[0].Title)
	assert.Equal(t, result, h.sink.entries[0].Recipe)
	assert.Equal(t, []string{"sk-test"}, h.credentials)
}

func TestGenerateUsesSettingsFallbacks(t *testing.T) {
	h := newHarness(t, textResponse(scallopsResponse), nil)
	_, err := h.generator.Generate(context.Background(), recipe.DefaultParameters())
	require.NoError(t, err)

	require.Len(t, h.completer.requests, 1)
	request := h.completer.requests[0]
	assert.Equal(t, generation.FallbackModel, request.Model)
	assert.InDelta(t, generation.FallbackTemperature, request.Temperature, 1e-9)
	assert.Equal(t, generation.FallbackMaxTokens, request.MaxTokens)
	assert.Contains(t, request.SystemPrompt, "Michelin-star")
	assert.Contains(t, request.UserPrompt, "**Complexity Score: [score]/10**")
	assert.True(t, strings.HasPrefix(request.UserPrompt, "Create a Michelin-star level recipe"))
}

func TestGenerateUsesConfiguredSettings(t *testing.T) {
	configured := fakeSettings{
		"api_settings.model":       "gpt-4o",
		"api_settings.temperature": 0.2,
		"api_settings.max_tokens":  900,
	}
	h := newHarness(t, textResponse(scallopsResponse), configured)
	result, err := h.generator.Generate(context.Background(), recipe.DefaultParameters())
	require.NoError(t, err)

	request := h.completer.requests[0]
	assert.Equal(t, "gpt-4o", request.Model)
	assert.InDelta(t, 0.2, request.Temperature, 1e-9)
	assert.Equal(t, 900, request.MaxTokens)
	assert.Equal(t, "gpt-4o", result.Model)
}

func TestGenerateWithoutCredential(t *testing.T) {
	testCases := map[string]generation.CredentialSource{
		"empty store": secrets.NewMemory(""),
		"no store":    nil,
	}
	for name, source := range testCases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, textResponse(scallopsResponse), nil)
			h.generator.Credentials = source

			_, err := h.generator.Generate(context.Background(), recipe.DefaultParameters())
			var configurationError *generation.ConfigurationError
			require.ErrorAs(t, err, &configurationError)
			assert.ErrorIs(t, err, generation.ErrMissingCredential)
			assert.Empty(t, h.credentials, "no completer may be built")
			assert.Empty(t, h.completer.requests)
			assert.Empty(t, h.sink.entries)
		})
	}
}

func TestGenerateServiceError(t *testing.T) {
	h := newHarness(t, llm.CompletionResponse{}, nil)
	transportErr := errors.New("401 unauthorized")
	h.completer.err = transportErr

	_, err := h.generator.Generate(context.Background(), recipe.DefaultParameters())
	var serviceError *generation.ServiceError
	require.ErrorAs(t, err, &serviceError)
	assert.ErrorIs(t, err, transportErr)
	assert.Contains(t, err.Error(), "401 unauthorized")
	assert.Len(t, h.completer.requests, 1, "single attempt")
	assert.Empty(t, h.sink.entries)
}

func TestGenerateResponseErrors(t *testing.T) {
	testCases := map[string]struct {
		response llm.CompletionResponse
		reason   string
	}{
		"no choices":      {response: llm.CompletionResponse{}, reason: "no choices"},
		"no message":      {response: llm.CompletionResponse{Choices: []llm.Choice{{FinishReason: "length"}}}, reason: "no message"},
		"empty content":   {response: textResponse(""), reason: "empty content"},
		"blank content":   {response: textResponse("  \n "), reason: "empty content"},
		"refused content": {response: llm.CompletionResponse{Choices: []llm.Choice{{Message: &llm.Message{Refusal: "cannot help"}}}}, reason: "cannot help"},
	}
	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, testCase.response, nil)
			_, err := h.generator.Generate(context.Background(), recipe.DefaultParameters())
			var responseError *generation.ResponseError
			require.ErrorAs(t, err, &responseError)
			assert.Contains(t, responseError.Reason, testCase.reason)
			assert.Empty(t, h.sink.entries)
		})
	}
}

func TestGenerateScoreDegradesToUnavailable(t *testing.T) {
	testCases := map[string]string{
		"missing marker": "Plain Toast\nINGREDIENTS:\n- Bread",
		"out of range":   "Plain Toast\n**Complexity Score: 11/10**",
		"zero":           "Plain Toast\n**Complexity Score: 0/10**",
	}
	for name, raw := range testCases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, textResponse(raw), nil)
			result, err := h.generator.Generate(context.Background(), recipe.DefaultParameters())
			require.NoError(t, err)
			assert.False(t, result.ComplexityScore.Available())
			assert.Equal(t, "N/A", result.ComplexityScore.String())
			assert.Equal(t, "Plain Toast", result.Title)
		})
	}
}

func TestGenerateSurvivesHistoryFailure(t *testing.T) {
	h := newHarness(t, textResponse(scallopsResponse), nil)
	h.sink.err = errors.New("disk full")

	result, err := h.generator.Generate(context.Background(), recipe.DefaultParameters())
	require.NoError(t, err)
	assert.Equal(t, "Seared Scallops", result.Title)

	warnings := h.observedLogs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "recipe history not saved", warnings[0].Message)
	assert.Equal(t, "recipe-1", warnings[0].ContextMap()["recipe_id"])
}

func TestGenerateWithoutHistoryOrLogger(t *testing.T) {
	h := newHarness(t, textResponse(scallopsResponse), nil)
	h.generator.History = nil
	h.generator.Logger = nil
	h.generator.Now = nil
	h.generator.NewID = nil

	result, err := h.generator.Generate(context.Background(), recipe.DefaultParameters())
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.False(t, result.CreatedAt.IsZero())
}

func TestGenerateResultDoesNotAliasParameters(t *testing.T) {
	h := newHarness(t, textResponse(scallopsResponse), nil)
	parameters := recipe.DefaultParameters()
	parameters.AddEquipment("Oven")

	result, err := h.generator.Generate(context.Background(), parameters)
	require.NoError(t, err)
	parameters.Equipment[0] = "Grill"
	assert.Equal(t, []string{"Oven"}, result.Parameters.Equipment)
}
