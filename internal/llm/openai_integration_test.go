package llm

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestCompleteIntegration(t *testing.T) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set")
	}

	model := strings.TrimSpace(os.Getenv("LLM_RECIPES_INTEGRATION_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := Client{APIKey: apiKey}
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	response, err := client.Complete(ctx, CompletionRequest{
		Model:        model,
		SystemPrompt: "You respond with the single word pong.",
		UserPrompt:   "ping",
		MaxTokens:    16,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(response.Choices) == 0 || response.Choices[0].Message == nil {
		t.Fatalf("expected a message, got %s", response.Describe())
	}
}
