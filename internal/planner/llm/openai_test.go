package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIProviderComplete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", auth)
		}

		var req openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("expected model gpt-4o-mini, got %s", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices":[{"message":{"role":"assistant","content":"Hello from test!"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":10,"completion_tokens":5}
		}`))
	}))
	defer ts.Close()

	provider := NewOpenAIProvider(Config{
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Endpoint:    ts.URL + "/v1",
		MaxTokens:   1024,
		Temperature: 0.5,
	})

	if !provider.Available() {
		t.Fatal("expected provider to be available")
	}

	resp, err := provider.Complete(context.Background(), []Message{
		{Role: "system", Content: "You are a travel assistant."},
		{Role: "user", Content: "Hello"},
	}, Options{})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Content != "Hello from test!" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.PromptTokens != 10 || resp.OutputTokens != 5 {
		t.Errorf("usage = %d/%d", resp.PromptTokens, resp.OutputTokens)
	}
}

func TestOpenAIProviderAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer ts.Close()

	provider := NewOpenAIProvider(Config{APIKey: "k", Model: "m", Endpoint: ts.URL})
	_, err := provider.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should mention status: %v", err)
	}
}

func TestOpenAIProviderUnavailableWithoutKey(t *testing.T) {
	provider := NewOpenAIProvider(Config{})
	if provider.Available() {
		t.Fatal("provider with no API key must not be available")
	}
}
