package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestComplete_SendsAuthAndReturnsContent(t *testing.T) {
	var gotAuth, gotTitle string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTitle = r.Header.Get("X-Title")
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  {\"subject\":\"ok\"}  "}},
			},
		})
	}))
	defer ts.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: ts.URL, Model: "openai/gpt-3.5-turbo", SiteName: "docsmith"})
	reply, err := c.Complete(context.Background(), "write an email")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reply != `{"subject":"ok"}` {
		t.Fatalf("expected trimmed content, got %q", reply)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}
	if gotTitle != "docsmith" {
		t.Fatalf("expected X-Title header, got %q", gotTitle)
	}
}

func TestComplete_RetriesOn429(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "second try"}},
			},
		})
	}))
	defer ts.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: ts.URL, Model: "openai/gpt-3.5-turbo"})
	reply, err := c.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reply != "second try" {
		t.Fatalf("expected retried reply, got %q", reply)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestComplete_MissingAPIKey(t *testing.T) {
	c := NewClient(Config{})
	if _, err := c.Complete(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error for missing API key")
	}
}

func TestComplete_SurfacesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "model unavailable"},
		})
	}))
	defer ts.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := c.Complete(context.Background(), "hello"); err == nil {
		t.Fatalf("expected API error to surface")
	}
}
