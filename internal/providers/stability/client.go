package stability

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	_ "golang.org/x/image/webp"

	"imagestudio/internal/domain"
	"imagestudio/internal/infra"
)

const (
	defaultBaseURL  = "https://api.stability.ai/v1/generation"
	defaultCFGScale = 7.0
	defaultTimeout  = 60 * time.Second
	// maxErrorBody caps how much of a failed response ends up in the error.
	maxErrorBody = 512
)

// Options configures the Stability text-to-image client.
type Options struct {
	APIKey  string
	BaseURL string
	// Engine is inserted between BaseURL and /text-to-image when set.
	Engine     string
	CFGScale   float64
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *infra.Logger
}

// Client performs one HTTP call per generation. It never retries.
type Client struct {
	apiKey     string
	endpoint   string
	cfgScale   float64
	httpClient *http.Client
	logger     *infra.Logger
}

// Request is the resolved input of one remote generation.
type Request struct {
	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
	Steps          int
	Seed           int
}

// ImageAsset is the decoded artifact returned by the service.
type ImageAsset struct {
	Data   []byte
	Format string
	Width  int
	Height int
	Seed   int
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type generationRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CFGScale    float64      `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
	Seed        *int         `json:"seed,omitempty"`
}

type generationResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		Seed         int    `json:"seed"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}

type errorResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	endpoint := baseURL
	if engine := strings.Trim(strings.TrimSpace(opts.Engine), "/"); engine != "" {
		endpoint += "/" + engine
	}
	endpoint += "/text-to-image"
	cfg := opts.CFGScale
	if cfg <= 0 {
		cfg = defaultCFGScale
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		endpoint:   endpoint,
		cfgScale:   cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c != nil && c.apiKey != ""
}

// Generate issues one text-to-image call. Every failure is a
// *domain.RemoteError.
func (c *Client) Generate(ctx context.Context, req Request) (*ImageAsset, error) {
	if !c.HasCredentials() {
		return nil, remoteErr(0, "api key is required", nil)
	}
	payload := buildPayload(req, c.cfgScale)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, remoteErr(0, "encode request", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, remoteErr(0, "build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, remoteErr(0, "http request", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, remoteErr(resp.StatusCode, "read response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteErr(resp.StatusCode, describeFailure(raw), nil)
	}

	var decoded generationResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, remoteErr(resp.StatusCode, "decode response", err)
	}
	if len(decoded.Artifacts) == 0 || strings.TrimSpace(decoded.Artifacts[0].Base64) == "" {
		return nil, remoteErr(resp.StatusCode, "response has no artifacts", nil)
	}
	artifact := decoded.Artifacts[0]
	if strings.EqualFold(artifact.FinishReason, "ERROR") {
		return nil, remoteErr(resp.StatusCode, "artifact finished with error", nil)
	}
	data, err := base64.StdEncoding.DecodeString(artifact.Base64)
	if err != nil {
		return nil, remoteErr(resp.StatusCode, "decode artifact", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, remoteErr(resp.StatusCode, "artifact is not an image", err)
	}
	seed := artifact.Seed
	if seed == 0 {
		seed = req.Seed
	}
	c.logger.Debug().
		Int("seed", seed).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Dur("elapsed", time.Since(start)).
		Msg("stability: generated image")
	return &ImageAsset{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height, Seed: seed}, nil
}

func buildPayload(req Request, cfgScale float64) generationRequest {
	payload := generationRequest{
		TextPrompts: []textPrompt{{Text: strings.TrimSpace(req.Prompt), Weight: 1.0}},
		CFGScale:    cfgScale,
		Height:      req.Height,
		Width:       req.Width,
		Samples:     1,
		Steps:       req.Steps,
	}
	if neg := strings.TrimSpace(req.NegativePrompt); neg != "" {
		payload.TextPrompts = append(payload.TextPrompts, textPrompt{Text: neg, Weight: -1.0})
	}
	if req.Seed > 0 {
		seed := req.Seed
		payload.Seed = &seed
	}
	return payload
}

func describeFailure(raw []byte) string {
	var detail errorResponse
	if err := json.Unmarshal(raw, &detail); err == nil && detail.Message != "" {
		if detail.Name != "" {
			return fmt.Sprintf("%s (%s)", detail.Message, detail.Name)
		}
		return detail.Message
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	if msg == "" {
		msg = "empty response body"
	}
	return msg
}

func remoteErr(status int, cause string, err error) *domain.RemoteError {
	return &domain.RemoteError{Op: "stability", StatusCode: status, Cause: cause, Err: err}
}
