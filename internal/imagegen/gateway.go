package imagegen

import (
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	_ "golang.org/x/image/webp"
	"golang.org/x/time/rate"

	"imagestudio/internal/catalog"
	"imagestudio/internal/domain"
	"imagestudio/internal/infra"
	"imagestudio/internal/prompt"
	"imagestudio/internal/providers/stability"
	"imagestudio/internal/storage"
	"imagestudio/internal/synth"
)

// DefaultVariationStrength is used when a caller does not pick a strength.
const DefaultVariationStrength = 0.7

const (
	defaultRemoteTimeout = 60 * time.Second
	defaultMaxBatch      = 4
	cooldownKey          = "remote"
)

// Reasons logged when the local path is taken.
const (
	ReasonMockRequested = "mock_requested"
	ReasonNoCredentials = "no_credentials"
	ReasonRemoteFailed  = "remote_failed"
	ReasonCooldown      = "remote_cooldown"
	ReasonRateLimited   = "rate_limited"
	ReasonNoRemoteVary  = "remote_variation_unavailable"
)

type remoteClient interface {
	Generate(ctx context.Context, req stability.Request) (*stability.ImageAsset, error)
	HasCredentials() bool
}

type mockRenderer interface {
	Synthesize(ctx context.Context, spec synth.Spec) (string, error)
}

type variationMaker interface {
	Vary(ctx context.Context, sourcePath string, strength float64, seed int) (string, error)
}

type encodedSaver interface {
	SaveEncoded(ctx context.Context, kind, tag, ext string, data []byte) (string, error)
}

type Options struct {
	Logger        *infra.Logger
	RemoteTimeout time.Duration
	// RemotePerMinute caps remote attempts; 0 disables the limiter.
	RemotePerMinute int
	// RemoteCooldown skips the remote path for this long after a failure; 0
	// disables the cooldown.
	RemoteCooldown time.Duration
	MaxBatch       int
}

// Gateway is the entry point for text-to-image and variation requests. It
// tries the remote service at most once per image and falls back to local
// synthesis with the same seed.
type Gateway struct {
	resolver *prompt.Resolver
	remote   remoteClient
	mock     mockRenderer
	varier   variationMaker
	store    encodedSaver
	limiter  *rate.Limiter
	cooldown *cache.Cache
	timeout  time.Duration
	maxBatch int
	logger   *infra.Logger
	stats    counters
}

func NewGateway(resolver *prompt.Resolver, remote remoteClient, mock mockRenderer, varier variationMaker, store encodedSaver, opts Options) *Gateway {
	if resolver == nil {
		resolver = prompt.NewResolver(nil, prompt.Options{})
	}
	timeout := opts.RemoteTimeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	maxBatch := opts.MaxBatch
	if maxBatch <= 0 {
		maxBatch = defaultMaxBatch
	}
	var limiter *rate.Limiter
	if opts.RemotePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RemotePerMinute)), opts.RemotePerMinute)
	}
	var cooldown *cache.Cache
	if opts.RemoteCooldown > 0 {
		cooldown = cache.New(opts.RemoteCooldown, 2*opts.RemoteCooldown)
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Gateway{
		resolver: resolver,
		remote:   remote,
		mock:     mock,
		varier:   varier,
		store:    store,
		limiter:  limiter,
		cooldown: cooldown,
		timeout:  timeout,
		maxBatch: maxBatch,
		logger:   logger,
	}
}

// TextRequest is the caller-facing input of GenerateFromText.
type TextRequest struct {
	prompt.Params
	UseMock bool
}

// VariationRequest is the caller-facing input of CreateVariation.
type VariationRequest struct {
	ImagePath string
	Strength  float64
	UseMock   bool
	Seed      *int
}

func (g *Gateway) Registry() *catalog.Registry {
	return g.resolver.Registry()
}

// GenerateFromText resolves req and produces one image. Remote failures are
// logged and replaced by a local image; only resolution and local synthesis
// errors reach the caller.
func (g *Gateway) GenerateFromText(ctx context.Context, req TextRequest) (domain.GeneratedImage, error) {
	resolved, err := g.resolver.Resolve(req.Params)
	if err != nil {
		return domain.GeneratedImage{}, err
	}
	return g.produce(ctx, resolved, req.UseMock)
}

func (g *Gateway) produce(ctx context.Context, req domain.GenerationRequest, useMock bool) (domain.GeneratedImage, error) {
	if reason := g.skipRemote(useMock); reason != "" {
		return g.fallback(ctx, req, reason)
	}
	img, rerr := g.attemptRemote(ctx, req)
	if rerr == nil {
		g.stats.record(func(s *Stats) { s.RemoteImages++ })
		return img, nil
	}
	// A caller that went away says nothing about the service's health.
	if g.cooldown != nil && ctx.Err() == nil {
		g.cooldown.SetDefault(cooldownKey, rerr.Error())
	}
	g.logger.Warn().
		Err(rerr).
		Int("seed", req.Seed).
		Int("status", rerr.StatusCode).
		Str("cause", rerr.Cause).
		Msg("imagegen: remote generation failed")
	return g.fallback(ctx, req, ReasonRemoteFailed)
}

// skipRemote returns why the remote path must not be tried, or "".
func (g *Gateway) skipRemote(useMock bool) string {
	switch {
	case useMock:
		return ReasonMockRequested
	case g.remote == nil || !g.remote.HasCredentials():
		return ReasonNoCredentials
	case g.coolingDown():
		return ReasonCooldown
	case g.limiter != nil && !g.limiter.Allow():
		return ReasonRateLimited
	}
	return ""
}

func (g *Gateway) coolingDown() bool {
	if g.cooldown == nil {
		return false
	}
	_, found := g.cooldown.Get(cooldownKey)
	return found
}

// attemptRemote performs the single remote attempt. A nil *RemoteError means
// the image was generated and stored.
func (g *Gateway) attemptRemote(ctx context.Context, req domain.GenerationRequest) (domain.GeneratedImage, *domain.RemoteError) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	asset, err := g.remote.Generate(ctx, stability.Request{
		Prompt:         req.TranslatedPrompt,
		NegativePrompt: req.NegativePrompt,
		Width:          req.Width,
		Height:         req.Height,
		Steps:          req.Steps,
		Seed:           req.Seed,
	})
	if err != nil {
		return domain.GeneratedImage{}, asRemoteError(err)
	}
	if g.store == nil {
		return domain.GeneratedImage{}, &domain.RemoteError{Op: "persist", Cause: "no output store configured"}
	}
	path, err := g.store.SaveEncoded(ctx, storage.KindRemote, strconv.Itoa(req.Seed), asset.Format, asset.Data)
	if err != nil {
		return domain.GeneratedImage{}, &domain.RemoteError{Op: "persist", Cause: "save remote image", Err: err}
	}
	width, height := asset.Width, asset.Height
	if width == 0 || height == 0 {
		width, height = req.Width, req.Height
	}
	return domain.GeneratedImage{Path: path, Seed: req.Seed, Width: width, Height: height, Source: domain.SourceRemote}, nil
}

func asRemoteError(err error) *domain.RemoteError {
	var rerr *domain.RemoteError
	if errors.As(err, &rerr) {
		return rerr
	}
	return &domain.RemoteError{Op: "remote", Err: err}
}

func (g *Gateway) fallback(ctx context.Context, req domain.GenerationRequest, reason string) (domain.GeneratedImage, error) {
	g.logger.Info().
		Str("reason", reason).
		Int("seed", req.Seed).
		Str("style", req.Style).
		Msg("imagegen: using local synthesis")
	g.stats.record(func(s *Stats) { s.FallbackReasons[reason]++ })
	if g.mock == nil {
		return domain.GeneratedImage{}, domain.Synthesisf("no local synthesizer configured")
	}
	path, err := g.mock.Synthesize(ctx, synth.Spec{
		Prompt:  req.RawPrompt,
		Style:   req.Style,
		Quality: req.Quality,
		Width:   req.Width,
		Height:  req.Height,
		Seed:    req.Seed,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrSynthesis) {
			err = domain.Synthesisf("%v", err)
		}
		return domain.GeneratedImage{}, err
	}
	g.stats.record(func(s *Stats) { s.LocalImages++ })
	return domain.GeneratedImage{Path: path, Seed: req.Seed, Width: req.Width, Height: req.Height, Source: domain.SourceLocal}, nil
}

// CreateVariation perturbs an existing image. There is no remote variation
// path yet, so every request is served locally. A variation that cannot be
// produced returns the source image.
func (g *Gateway) CreateVariation(ctx context.Context, req VariationRequest) (domain.GeneratedImage, error) {
	source := strings.TrimSpace(req.ImagePath)
	if source == "" {
		return domain.GeneratedImage{}, domain.Resolutionf("image path is required")
	}
	if math.IsNaN(req.Strength) || req.Strength < 0 || req.Strength > 1 {
		return domain.GeneratedImage{}, domain.Resolutionf("strength %v outside [0, 1]", req.Strength)
	}
	seed := prompt.RandomSeed()
	if req.Seed != nil {
		if *req.Seed < 1 || *req.Seed > domain.MaxSeed {
			return domain.GeneratedImage{}, domain.Resolutionf("seed %d outside [1, %d]", *req.Seed, domain.MaxSeed)
		}
		seed = *req.Seed
	}

	reason := ReasonNoRemoteVary
	switch {
	case req.UseMock:
		reason = ReasonMockRequested
	case g.remote == nil || !g.remote.HasCredentials():
		reason = ReasonNoCredentials
	}
	g.logger.Info().
		Str("reason", reason).
		Int("seed", seed).
		Float64("strength", req.Strength).
		Msg("imagegen: using local variation")

	if g.varier == nil {
		return domain.GeneratedImage{}, domain.Synthesisf("no variation synthesizer configured")
	}
	path, err := g.varier.Vary(ctx, source, req.Strength, seed)
	if err != nil {
		g.logger.Warn().Err(err).Str("source", source).Msg("imagegen: variation degraded to source image")
		g.stats.record(func(s *Stats) { s.DegradedVariations++ })
		w, h := imageSize(source)
		return domain.GeneratedImage{Path: source, Seed: seed, Width: w, Height: h, Source: domain.SourceOriginal}, nil
	}
	g.stats.record(func(s *Stats) { s.Variations++ })
	w, h := imageSize(path)
	return domain.GeneratedImage{Path: path, Seed: seed, Width: w, Height: h, Source: domain.SourceLocal}, nil
}

// imageSize reads dimensions from the file header, or zeros.
func imageSize(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// ListStyles returns style name -> suffix.
func (g *Gateway) ListStyles(lang catalog.Language) map[string]string {
	return g.Registry().StyleSuffixes(lang)
}

func (g *Gateway) ListQualityTiers() map[string]catalog.QualityTier {
	return g.Registry().QualityTiers()
}

func (g *Gateway) ListAspectRatios(lang catalog.Language) map[string]catalog.RatioInfo {
	return g.Registry().AspectRatioInfos(lang)
}

func (g *Gateway) ListEnhancers() map[string]string {
	return g.Registry().EnhancerSuffixes()
}
