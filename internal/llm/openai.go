// Package llm talks to an OpenAI-compatible chat-completions endpoint.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// DefaultBaseURL is the public OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com/v1"

// CompletionRequest is a single system+user exchange.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// Message is the text carried by one choice.
type Message struct {
	Content string
	Refusal string
}

// Choice is one candidate completion. Message is nil when the service sent none.
type Choice struct {
	Message      *Message
	FinishReason string
}

// CompletionResponse holds zero or more choices in service order.
type CompletionResponse struct {
	Choices []Choice
}

// Client issues chat completions through the official OpenAI SDK. Requests
// are attempted once; retries are left to the caller.
type Client struct {
	HTTPBaseURL string
	APIKey      string
	HTTPClient  *http.Client
}

func truncateForLog(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

func (c Client) requestOptions() []option.RequestOption {
	baseURL := strings.TrimSpace(c.HTTPBaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	options := []option.RequestOption{
		option.WithAPIKey(c.APIKey),
		option.WithBaseURL(strings.TrimRight(baseURL, "/") + "/"),
		option.WithMaxRetries(0),
	}
	if c.HTTPClient != nil {
		options = append(options, option.WithHTTPClient(c.HTTPClient))
	}
	return options
}

// Complete sends the request and maps the SDK response onto CompletionResponse.
// Transport, authentication and HTTP status failures are returned as errors.
func (c Client) Complete(ctx context.Context, request CompletionRequest) (CompletionResponse, error) {
	sdkClient := openai.NewClient(c.requestOptions()...)

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(request.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(strings.TrimSpace(request.SystemPrompt)),
			openai.UserMessage(strings.TrimSpace(request.UserPrompt)),
		},
	}
	if request.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(request.MaxTokens))
	}
	// A zero temperature is left to the server default.
	if request.Temperature > 0 {
		params.Temperature = openai.Float(request.Temperature)
	}

	completion, err := sdkClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("chat completion request: %w", err)
	}
	if completion == nil {
		return CompletionResponse{}, nil
	}

	response := CompletionResponse{Choices: make([]Choice, 0, len(completion.Choices))}
	for _, sdkChoice := range completion.Choices {
		choice := Choice{FinishReason: string(sdkChoice.FinishReason)}
		if sdkChoice.Message.RawJSON() != "" {
			choice.Message = &Message{
				Content: sdkChoice.Message.Content,
				Refusal: sdkChoice.Message.Refusal,
			}
		}
		response.Choices = append(response.Choices, choice)
	}
	return response, nil
}

// Describe summarises a response for debug logging.
func (response CompletionResponse) Describe() string {
	if len(response.Choices) == 0 {
		return "no choices"
	}
	first := response.Choices[0]
	if first.Message == nil {
		return fmt.Sprintf("%d choice(s), first without message (finish=%s)", len(response.Choices), first.FinishReason)
	}
	return fmt.Sprintf("%d choice(s), finish=%s, content=%q", len(response.Choices), first.FinishReason, truncateForLog(first.Message.Content, 120))
}
