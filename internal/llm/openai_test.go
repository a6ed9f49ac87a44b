package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func completionPayload(choices ...any) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-test",
		"choices": choices,
	}
}

func messageChoice(content string, finishReason string) map[string]any {
	return map[string]any{
		"index":         0,
		"finish_reason": finishReason,
		"message": map[string]any{
			"role":    "assistant",
			"content": content,
		},
	}
}

func serveJSON(t *testing.T, status int, payload any, inspect func(*http.Request, map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if inspect != nil {
			var received map[string]any
			if err := json.NewDecoder(request.Body).Decode(&received); err != nil {
				t.Errorf("decode request: %v", err)
			}
			inspect(request, received)
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		if err := json.NewEncoder(writer).Encode(payload); err != nil {
			t.Errorf("encode: %v", err)
		}
	}))
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var inspected atomic.Bool
	server := serveJSON(t, http.StatusOK, completionPayload(messageChoice("Seared Scallops", "stop")), func(request *http.Request, received map[string]any) {
		inspected.Store(true)
		if !strings.HasSuffix(request.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", request.URL.Path)
		}
		if request.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", request.Header.Get("Authorization"))
		}
		if received["model"] != "gpt-4" {
			t.Errorf("unexpected model %v", received["model"])
		}
		if received["max_completion_tokens"] != float64(2000) {
			t.Errorf("unexpected max_completion_tokens %v", received["max_completion_tokens"])
		}
		if received["temperature"] != 0.7 {
			t.Errorf("unexpected temperature %v", received["temperature"])
		}
		messages, ok := received["messages"].([]any)
		if !ok || len(messages) != 2 {
			t.Errorf("expected two messages, got %v", received["messages"])
			return
		}
		system, _ := messages[0].(map[string]any)
		user, _ := messages[1].(map[string]any)
		if system["role"] != "system" || user["role"] != "user" {
			t.Errorf("unexpected roles %v / %v", system["role"], user["role"])
		}
		if user["content"] != "make dinner" {
			t.Errorf("unexpected user content %v", user["content"])
		}
	})
	defer server.Close()

	client := Client{HTTPBaseURL: server.URL, APIKey: "test-key"}
	response, err := client.Complete(context.Background(), CompletionRequest{
		Model:        "gpt-4",
		SystemPrompt: "  be a chef  ",
		UserPrompt:   "make dinner\n",
		Temperature:  0.7,
		MaxTokens:    2000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inspected.Load() {
		t.Fatalf("server never saw the request")
	}
	if len(response.Choices) != 1 || response.Choices[0].Message == nil {
		t.Fatalf("unexpected response %+v", response)
	}
	if response.Choices[0].Message.Content != "Seared Scallops" {
		t.Fatalf("unexpected content %q", response.Choices[0].Message.Content)
	}
	if response.Choices[0].FinishReason != "stop" {
		t.Fatalf("unexpected finish reason %q", response.Choices[0].FinishReason)
	}
}

func TestCompleteOmitsZeroTemperature(t *testing.T) {
	server := serveJSON(t, http.StatusOK, completionPayload(messageChoice("ok", "stop")), func(_ *http.Request, received map[string]any) {
		if _, present := received["temperature"]; present {
			t.Errorf("temperature should be omitted, got %v", received["temperature"])
		}
	})
	defer server.Close()

	client := Client{HTTPBaseURL: server.URL, APIKey: "test"}
	if _, err := client.Complete(context.Background(), CompletionRequest{Model: "m", UserPrompt: "u"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompleteWithoutChoices(t *testing.T) {
	server := serveJSON(t, http.StatusOK, completionPayload(), nil)
	defer server.Close()

	client := Client{HTTPBaseURL: server.URL, APIKey: "test"}
	response, err := client.Complete(context.Background(), CompletionRequest{Model: "m"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(response.Choices) != 0 {
		t.Fatalf("expected no choices, got %+v", response.Choices)
	}
	if response.Describe() != "no choices" {
		t.Fatalf("unexpected description %q", response.Describe())
	}
}

func TestCompleteChoiceWithoutMessage(t *testing.T) {
	server := serveJSON(t, http.StatusOK, completionPayload(map[string]any{"index": 0, "finish_reason": "length"}), nil)
	defer server.Close()

	client := Client{HTTPBaseURL: server.URL, APIKey: "test"}
	response, err := client.Complete(context.Background(), CompletionRequest{Model: "m"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(response.Choices) != 1 || response.Choices[0].Message != nil {
		t.Fatalf("expected a single choice without message, got %+v", response.Choices)
	}
}

func TestCompleteSurfacesHTTPErrorsWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusInternalServerError)
		_, _ = writer.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	client := Client{HTTPBaseURL: server.URL, APIKey: "test"}
	_, err := client.Complete(context.Background(), CompletionRequest{Model: "m"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestTruncateForLog(t *testing.T) {
	if truncateForLog("short", 10) != "short" {
		t.Fatalf("short strings should be untouched")
	}
	if truncated := truncateForLog("abcdefghij", 4); truncated != "abcd…" {
		t.Fatalf("unexpected truncation %q", truncated)
	}
}
