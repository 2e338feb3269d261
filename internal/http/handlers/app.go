package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"imagestudio/internal/catalog"
	"imagestudio/internal/domain"
	"imagestudio/internal/imagegen"
	"imagestudio/internal/infra"
)

// ImageService is the part of the generation gateway the HTTP layer uses.
type ImageService interface {
	GenerateFromText(ctx context.Context, req imagegen.TextRequest) (domain.GeneratedImage, error)
	GenerateBatch(ctx context.Context, req imagegen.TextRequest, quantity int) ([]domain.GeneratedImage, error)
	CreateVariation(ctx context.Context, req imagegen.VariationRequest) (domain.GeneratedImage, error)
	ListStyles(lang catalog.Language) map[string]string
	ListQualityTiers() map[string]catalog.QualityTier
	ListAspectRatios(lang catalog.Language) map[string]catalog.RatioInfo
	ListEnhancers() map[string]string
	Stats() imagegen.Stats
}

// FileResolver maps a public file name to a path inside the output dir.
type FileResolver interface {
	Resolve(name string) (string, error)
}

type App struct {
	Images        ImageService
	Files         FileResolver
	PublicBaseURL string
	Logger        *infra.Logger
}

func NewApp(images ImageService, files FileResolver, publicBaseURL string, logger *infra.Logger) *App {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &App{Images: images, Files: files, PublicBaseURL: publicBaseURL, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}

// fail maps domain errors onto HTTP statuses.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrResolution):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	default:
		a.logger(r).Error().Err(err).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "image generation failed")
	}
}

// logger prefers the request-scoped logger set by the access log middleware.
func (a *App) logger(r *http.Request) *infra.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return a.Logger
}
