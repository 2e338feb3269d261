package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"imagestudio/internal/domain"
	"imagestudio/internal/imagegen"
	"imagestudio/internal/prompt"
	"imagestudio/pkg/zip"
)

const maxBodyBytes = 1 << 20

type imageGenerateRequest struct {
	Prompt         string   `json:"prompt"`
	Style          string   `json:"style"`
	Quality        string   `json:"quality"`
	AspectRatio    string   `json:"aspect_ratio"`
	NegativePrompt string   `json:"negative_prompt"`
	Seed           *int     `json:"seed"`
	Enhancers      []string `json:"enhancers"`
	UseMock        bool     `json:"use_mock"`
	Quantity       int      `json:"quantity"`
}

func (req imageGenerateRequest) textRequest() imagegen.TextRequest {
	return imagegen.TextRequest{
		Params: prompt.Params{
			Prompt:         req.Prompt,
			Style:          req.Style,
			Quality:        req.Quality,
			AspectRatio:    req.AspectRatio,
			NegativePrompt: req.NegativePrompt,
			Seed:           req.Seed,
			Enhancers:      req.Enhancers,
		},
		UseMock: req.UseMock,
	}
}

type imageVariationRequest struct {
	Image    string   `json:"image"`
	Strength *float64 `json:"strength"`
	UseMock  bool     `json:"use_mock"`
	Seed     *int     `json:"seed"`
}

type imageResponse struct {
	File   string        `json:"file"`
	URL    string        `json:"url"`
	Seed   int           `json:"seed"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Source domain.Source `json:"source"`
}

func (a *App) toResponse(img domain.GeneratedImage) imageResponse {
	name := filepath.Base(img.Path)
	return imageResponse{
		File:   name,
		URL:    a.PublicBaseURL + "/v1/images/" + url.PathEscape(name),
		Seed:   img.Seed,
		Width:  img.Width,
		Height: img.Height,
		Source: img.Source,
	}
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

// generate runs one request through the gateway, batching when quantity > 1.
func (a *App) generate(r *http.Request, req imageGenerateRequest) ([]domain.GeneratedImage, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity == 1 {
		img, err := a.Images.GenerateFromText(r.Context(), req.textRequest())
		if err != nil {
			return nil, err
		}
		return []domain.GeneratedImage{img}, nil
	}
	return a.Images.GenerateBatch(r.Context(), req.textRequest(), quantity)
}

func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	var req imageGenerateRequest
	if !a.decode(w, r, &req) {
		return
	}
	imgs, err := a.generate(r, req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]imageResponse, len(imgs))
	for i, img := range imgs {
		items[i] = a.toResponse(img)
	}
	a.json(w, http.StatusOK, map[string]any{"images": items})
}

// ImagesArchive generates like ImagesGenerate and answers with a zip of the
// resulting files.
func (a *App) ImagesArchive(w http.ResponseWriter, r *http.Request) {
	var req imageGenerateRequest
	if !a.decode(w, r, &req) {
		return
	}
	imgs, err := a.generate(r, req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	paths := make([]string, len(imgs))
	for i, img := range imgs {
		paths[i] = img.Path
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=images-%d.zip", time.Now().Unix()))
	w.WriteHeader(http.StatusOK)
	if err := zip.ArchiveFiles(w, paths); err != nil {
		a.logger(r).Error().Err(err).Int("files", len(paths)).Msg("archive write failed")
	}
}

func (a *App) ImagesVariation(w http.ResponseWriter, r *http.Request) {
	var req imageVariationRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Image == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "image required")
		return
	}
	source, err := a.Files.Resolve(req.Image)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	strength := imagegen.DefaultVariationStrength
	if req.Strength != nil {
		strength = *req.Strength
	}
	img, err := a.Images.CreateVariation(r.Context(), imagegen.VariationRequest{
		ImagePath: source,
		Strength:  strength,
		UseMock:   req.UseMock,
		Seed:      req.Seed,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"image": a.toResponse(img)})
}

// ImageFile serves a stored image. Stored files are never rewritten.
func (a *App) ImageFile(w http.ResponseWriter, r *http.Request) {
	path, err := a.Files.Resolve(chi.URLParam(r, "name"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeFile(w, r, path)
}
