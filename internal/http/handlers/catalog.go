package handlers

import (
	"net/http"

	"imagestudio/internal/middleware"
)

func (a *App) ListStyles(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]any{"language": lang, "styles": a.Images.ListStyles(lang)})
}

func (a *App) ListQualities(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"qualities": a.Images.ListQualityTiers()})
}

func (a *App) ListAspectRatios(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]any{"language": lang, "aspect_ratios": a.Images.ListAspectRatios(lang)})
}

func (a *App) ListEnhancers(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"enhancers": a.Images.ListEnhancers()})
}
