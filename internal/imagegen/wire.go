package imagegen

import (
	"fmt"

	"imagestudio/internal/catalog"
	"imagestudio/internal/infra"
	"imagestudio/internal/palette"
	"imagestudio/internal/prompt"
	"imagestudio/internal/providers/stability"
	"imagestudio/internal/storage"
	"imagestudio/internal/synth"
	"imagestudio/internal/variation"
)

// NewFromConfig assembles the full pipeline on top of the built-in catalogue.
// The returned store is the one every generated file is written to.
func NewFromConfig(cfg *infra.Config, logger *infra.Logger) (*Gateway, *storage.FileStore, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config is required")
	}
	store, err := storage.NewFileStore(cfg.OutputDir, storage.Options{
		Format:  cfg.OutputFormat,
		Quality: cfg.OutputQuality,
	})
	if err != nil {
		return nil, nil, err
	}

	reg := catalog.Default()
	resolver := prompt.NewResolver(reg, prompt.Options{Language: cfg.PromptLanguage})
	remote := stability.NewClient(stability.Options{
		APIKey:   cfg.StabilityAPIKey,
		BaseURL:  cfg.StabilityBaseURL,
		Engine:   cfg.StabilityEngine,
		CFGScale: cfg.StabilityCFGScale,
		Timeout:  cfg.RemoteTimeout,
		Logger:   logger,
	})
	mock := synth.NewSynthesizer(palette.NewExtractor(reg), store, synth.Options{Logger: logger})
	varier := variation.NewVarier(store, variation.Options{Logger: logger})

	gw := NewGateway(resolver, remote, mock, varier, store, Options{
		Logger:          logger,
		RemoteTimeout:   cfg.RemoteTimeout,
		RemotePerMinute: cfg.RemotePerMinute,
		RemoteCooldown:  cfg.RemoteCooldown,
		MaxBatch:        cfg.MaxBatch,
	})
	return gw, store, nil
}
