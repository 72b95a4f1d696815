package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hablalab/speech-coach/pkg/config"
)

func groqServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Temperature != 0 {
			t.Fatalf("corrections must run at temperature 0, got %v", payload.Temperature)
		}
		if status >= 400 {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func testClient(url string) *GroqClient {
	return NewGroqClient(&config.GroqConfig{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "llama-3.1-70b-versatile",
		Timeout: 5 * time.Second,
	})
}

func TestCorrectSpanishSuccess(t *testing.T) {
	ts := groqServer(t, "Hola, me llamo Ana.", http.StatusOK)
	defer ts.Close()

	got, err := testClient(ts.URL).CorrectSpanish(context.Background(), "hola me llamo ana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hola, me llamo Ana." {
		t.Fatalf("unexpected correction: %q", got)
	}
}

func TestCorrectSpanishStripsFences(t *testing.T) {
	ts := groqServer(t, "```\nHola, me llamo Ana.\n```", http.StatusOK)
	defer ts.Close()

	got, err := testClient(ts.URL).CorrectSpanish(context.Background(), "hola me llamo ana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hola, me llamo Ana." {
		t.Fatalf("fences should be stripped, got %q", got)
	}
}

func TestCorrectSpanishServerError(t *testing.T) {
	ts := groqServer(t, "", http.StatusInternalServerError)
	defer ts.Close()

	if _, err := testClient(ts.URL).CorrectSpanish(context.Background(), "hola"); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestConfigured(t *testing.T) {
	if !testClient("http://example.com").Configured() {
		t.Fatalf("client with key should report configured")
	}
	t.Setenv("GROQ_API_KEY", "")
	if NewGroqClient(&config.GroqConfig{}).Configured() {
		t.Fatalf("client without key should not report configured")
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"plain text":          "plain text",
		"```\ntexto\n```":     "texto",
		"```text\ntexto\n```": "texto",
		"  padded  ":          "padded",
	}
	for in, want := range cases {
		if got := stripFences(in); got != want {
			t.Fatalf("stripFences(%q) = %q, want %q", in, got, want)
		}
	}
}
