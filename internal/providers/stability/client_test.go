package stability

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"imagestudio/internal/domain"
)

func pngBase64(t *testing.T, w, h int) string {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestGenerateSendsPayloadAndDecodesArtifact(t *testing.T) {
	var captured generationRequest
	var auth, path string
	art := pngBase64(t, 64, 32)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"artifacts": []map[string]any{{"base64": art, "seed": 42, "finishReason": "SUCCESS"}},
		})
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "secret", BaseURL: srv.URL, Engine: "sdxl"})
	asset, err := client.Generate(context.Background(), Request{
		Prompt:         "a red flower",
		NegativePrompt: "blurry",
		Width:          512,
		Height:         512,
		Steps:          30,
		Seed:           42,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if auth != "Bearer secret" {
		t.Fatalf("authorization = %q", auth)
	}
	if path != "/sdxl/text-to-image" {
		t.Fatalf("path = %q", path)
	}
	if len(captured.TextPrompts) != 2 {
		t.Fatalf("text_prompts = %+v", captured.TextPrompts)
	}
	if captured.TextPrompts[0].Weight != 1.0 || captured.TextPrompts[1].Weight != -1.0 {
		t.Fatalf("weights = %+v", captured.TextPrompts)
	}
	if captured.Samples != 1 || captured.Steps != 30 || captured.CFGScale != defaultCFGScale {
		t.Fatalf("payload = %+v", captured)
	}
	if captured.Seed == nil || *captured.Seed != 42 {
		t.Fatalf("seed = %v", captured.Seed)
	}
	if asset.Format != "png" || asset.Width != 64 || asset.Height != 32 || asset.Seed != 42 {
		t.Fatalf("asset = %+v", asset)
	}
}

func TestGenerateOmitsNegativePromptWhenBlank(t *testing.T) {
	payload := buildPayload(Request{Prompt: "x", NegativePrompt: "  "}, 7)
	if len(payload.TextPrompts) != 1 {
		t.Fatalf("text_prompts = %+v", payload.TextPrompts)
	}
	if payload.Seed != nil {
		t.Fatalf("seed should be omitted when zero")
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "non-2xx with detail", status: http.StatusUnauthorized, body: `{"name":"unauthorized","message":"bad key"}`, wantMsg: "bad key"},
		{name: "non-2xx plain", status: http.StatusBadGateway, body: "upstream down", wantMsg: "upstream down"},
		{name: "missing artifacts", status: http.StatusOK, body: `{"artifacts":[]}`, wantMsg: "no artifacts"},
		{name: "empty payload", status: http.StatusOK, body: `{"artifacts":[{"base64":""}]}`, wantMsg: "no artifacts"},
		{name: "bad base64", status: http.StatusOK, body: `{"artifacts":[{"base64":"***"}]}`, wantMsg: "decode artifact"},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantMsg: "decode response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(Options{APIKey: "k", BaseURL: srv.URL})
			_, err := client.Generate(context.Background(), Request{Prompt: "x", Width: 8, Height: 8})
			if !errors.Is(err, domain.ErrRemote) {
				t.Fatalf("err = %v, want ErrRemote", err)
			}
			var remote *domain.RemoteError
			if !errors.As(err, &remote) {
				t.Fatalf("err %T is not *RemoteError", err)
			}
			if remote.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", remote.StatusCode, tt.status)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("err = %q, want to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestGenerateTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(Options{APIKey: "k", BaseURL: url, Timeout: time.Second})
	_, err := client.Generate(context.Background(), Request{Prompt: "x"})
	if !errors.Is(err, domain.ErrRemote) {
		t.Fatalf("err = %v, want ErrRemote", err)
	}
}

func TestGenerateWithoutCredentials(t *testing.T) {
	client := NewClient(Options{})
	if client.HasCredentials() {
		t.Fatalf("expected no credentials")
	}
	if _, err := client.Generate(context.Background(), Request{}); !errors.Is(err, domain.ErrRemote) {
		t.Fatalf("err = %v", err)
	}
	if got := client.endpoint; got != defaultBaseURL+"/text-to-image" {
		t.Fatalf("endpoint = %q", got)
	}
}
