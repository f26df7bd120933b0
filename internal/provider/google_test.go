package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// geminiHandler validates requests and returns a canned text response.
func geminiHandler(t *testing.T, text string, validate func(*geminiRequest)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("expected :generateContent path, got %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing API key header")
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request body: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if validate != nil {
			validate(&req)
		}

		resp := map[string]any{
			"candidates": []map[string]any{
				{
					"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
					"finishReason": "STOP",
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestGoogleGenerateText(t *testing.T) {
	srv := httptest.NewServer(geminiHandler(t, "hello from gemini", func(req *geminiRequest) {
		if req.GenerationConfig != nil {
			t.Error("plain text call should not set generationConfig")
		}
		if len(req.Contents) != 1 || req.Contents[0].Role != "user" {
			t.Errorf("unexpected contents: %+v", req.Contents)
		}
	}))
	defer srv.Close()

	g := NewGoogle("test-key", "gemini-2.0-flash", srv.URL)
	got, err := g.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "hello from gemini" {
		t.Errorf("Generate = %q", got)
	}
}

func TestGoogleGenerateJSONMode(t *testing.T) {
	srv := httptest.NewServer(geminiHandler(t, `[]`, func(req *geminiRequest) {
		if req.GenerationConfig == nil || req.GenerationConfig.ResponseMIMEType != "application/json" {
			t.Error("JSON mode should request application/json responses")
		}
	}))
	defer srv.Close()

	g := NewGoogle("test-key", "", srv.URL)
	if _, err := g.Generate(context.Background(), []Message{{Role: RoleUser, Content: "cards"}}, Options{JSONResponse: true}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
}

func TestGoogleGenerateRolesAndSystemInstruction(t *testing.T) {
	srv := httptest.NewServer(geminiHandler(t, "ok", func(req *geminiRequest) {
		if req.SystemInstruction == nil {
			t.Fatal("system message should map to systemInstruction")
		}
		if len(req.Contents) != 3 {
			t.Fatalf("expected 3 contents, got %d", len(req.Contents))
		}
		if req.Contents[1].Role != "model" {
			t.Errorf("assistant turn should map to role model, got %q", req.Contents[1].Role)
		}
	}))
	defer srv.Close()

	g := NewGoogle("test-key", "", srv.URL)
	msgs := []Message{
		{Role: RoleSystem, Content: "be concise"},
		{Role: RoleUser, Content: "q1"},
		{Role: RoleAssistant, Content: "a1"},
		{Role: RoleUser, Content: "q2"},
	}
	if _, err := g.Generate(context.Background(), msgs, Options{}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
}

func TestGoogleGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "API key not valid", "status": "PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	g := NewGoogle("test-key", "", srv.URL)
	_, err := g.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, Options{})
	if err == nil {
		t.Fatal("expected error on 403")
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Errorf("error should carry the provider message, got %v", err)
	}
}

func TestParseProviderErrorFallbacks(t *testing.T) {
	if got := parseProviderError(429, []byte("slow down")); !strings.Contains(got, "rate limited") {
		t.Errorf("429 = %q", got)
	}
	if got := parseProviderError(418, []byte("teapot")); !strings.Contains(got, "HTTP 418") {
		t.Errorf("unknown status = %q", got)
	}
}

func TestRetryProviderRecoversFromServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		geminiHandler(t, "recovered", nil)(w, r)
	}))
	defer srv.Close()

	inner := NewGoogle("test-key", "", srv.URL)
	r := WithRetry(inner, 3)
	r.baseDelay = time.Millisecond

	got, err := r.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, Options{})
	if err != nil {
		t.Fatalf("Generate failed after retries: %v", err)
	}
	if got != "recovered" {
		t.Errorf("Generate = %q", got)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestRetryProviderDoesNotRetryAuthFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "bad key"}}`))
	}))
	defer srv.Close()

	r := WithRetry(NewGoogle("test-key", "", srv.URL), 3)
	r.baseDelay = time.Millisecond

	if _, err := r.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, Options{}); err == nil {
		t.Fatal("expected auth error")
	}
	if calls.Load() != 1 {
		t.Errorf("auth failures must not be retried, got %d attempts", calls.Load())
	}
}

func TestRetryDisabledMakesSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := WithRetry(NewGoogle("test-key", "", srv.URL), 0)
	if _, err := r.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, Options{}); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("retries disabled should mean one attempt, got %d", calls.Load())
	}
}
