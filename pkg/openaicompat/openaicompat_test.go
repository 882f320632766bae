package openaicompat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkscan/pkg/openaicompat"
)

func TestNew_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     openaicompat.Config
		wantErr bool
	}{
		{"missing api key", openaicompat.Config{BaseURL: "http://x", Model: "m"}, true},
		{"missing base url", openaicompat.Config{APIKey: "k", Model: "m"}, true},
		{"missing model", openaicompat.Config{APIKey: "k", BaseURL: "http://x"}, true},
		{"complete", openaicompat.Config{Name: "qwen", APIKey: "k", BaseURL: openaicompat.QwenBaseURL, Model: openaicompat.QwenDefaultModel}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := openaicompat.New(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.Name() != "qwen" {
				t.Errorf("expected name qwen, got %s", client.Name())
			}
			if client.Model() != openaicompat.QwenDefaultModel {
				t.Errorf("unexpected model: %s", client.Model())
			}
		})
	}
}

func TestGenerateContent(t *testing.T) {
	var lastBody map[string]interface{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		lastBody = nil
		if err := json.NewDecoder(r.Body).Decode(&lastBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		messages := lastBody["messages"].([]interface{})
		last := messages[len(messages)-1].(map[string]interface{})
		if text, ok := last["content"].(string); ok && text == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "qwen-plus",
			"choices": [
				{
					"index": 0,
					"message": { "role": "assistant", "content": "mocked response string" },
					"finish_reason": "stop"
				}
			],
			"usage": { "prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30 }
		}`))
	}))
	defer ts.Close()

	client, err := openaicompat.New(openaicompat.Config{
		Name:    "qwen",
		APIKey:  "test-api-key",
		BaseURL: ts.URL,
		Model:   "qwen-plus",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Success Flow", func(t *testing.T) {
		req := &openaicompat.Request{
			SystemInstruction: &openaicompat.Content{Parts: []openaicompat.Part{{Text: "be terse"}}},
			Messages: []openaicompat.Content{
				{Role: "user", Parts: []openaicompat.Part{{Text: "Hello world"}}},
			},
		}

		resp, err := client.GenerateContent(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text() != "mocked response string" {
			t.Errorf("unexpected content response: %s", resp.Text())
		}
		if resp.Usage.TotalTokens != 30 || resp.Usage.PromptTokens != 10 {
			t.Errorf("unexpected usage: %+v", resp.Usage)
		}

		if lastBody["model"] != "qwen-plus" {
			t.Errorf("expected model on the wire, got %v", lastBody["model"])
		}
		messages := lastBody["messages"].([]interface{})
		if len(messages) != 2 {
			t.Fatalf("expected system + user message, got %d", len(messages))
		}
		system := messages[0].(map[string]interface{})
		if system["role"] != "system" || system["content"] != "be terse" {
			t.Errorf("unexpected system message: %v", system)
		}
	})

	t.Run("Vision Wire Format", func(t *testing.T) {
		req := &openaicompat.Request{
			Messages: []openaicompat.Content{
				{
					Role: "user",
					Parts: []openaicompat.Part{
						{Text: "Transcribe this handwritten page."},
						{InlineData: &openaicompat.InlineData{MIMEType: "image/png", Data: "aGVsbG8="}},
					},
				},
			},
		}

		if _, err := client.GenerateContent(context.Background(), req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		messages := lastBody["messages"].([]interface{})
		content, ok := messages[0].(map[string]interface{})["content"].([]interface{})
		if !ok {
			t.Fatalf("expected multimodal content array")
		}
		if len(content) != 2 {
			t.Fatalf("expected 2 content parts, got %d", len(content))
		}
		image := content[1].(map[string]interface{})
		if image["type"] != "image_url" {
			t.Errorf("expected image_url part, got %v", image["type"])
		}
		url := image["image_url"].(map[string]interface{})["url"].(string)
		if url != "data:image/png;base64,aGVsbG8=" {
			t.Errorf("unexpected data URL: %s", url)
		}
	})

	t.Run("Server Error Flow", func(t *testing.T) {
		req := &openaicompat.Request{
			Messages: []openaicompat.Content{
				{Role: "user", Parts: []openaicompat.Part{{Text: "cause_500"}}},
			},
		}

		if _, err := client.GenerateContent(context.Background(), req); err == nil {
			t.Fatalf("expected error from 500 response")
		}
	})
}
