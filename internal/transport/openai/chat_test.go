package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestChatClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("expected single user message, got %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": `{"location":"Bangalore"}`,
					},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer server.Close()

	client := NewChatClient(&Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-chat-model",
		Logger:  zap.NewNop(),
	})

	reply, err := client.Complete(context.Background(), "extract filters")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != `{"location":"Bangalore"}` {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestChatClient_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-2",
			"object":  "chat.completion",
			"choices": []map[string]any{},
		})
	}))
	defer server.Close()

	client := NewChatClient(&Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-chat-model",
		Logger:  zap.NewNop(),
	})

	if _, err := client.Complete(context.Background(), "extract filters"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
