package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"imagestudio/internal/catalog"
	"imagestudio/internal/http/handlers"
	"imagestudio/internal/middleware"
)

type Options struct {
	Logger      zerolog.Logger
	Limiter     middleware.Limiter
	CORSOrigins []string
	Language    catalog.Language
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.CORSOrigins),
		middleware.I18N(opts.Language),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Get("/v1/styles", app.ListStyles)
	r.Get("/v1/qualities", app.ListQualities)
	r.Get("/v1/aspect-ratios", app.ListAspectRatios)
	r.Get("/v1/enhancers", app.ListEnhancers)
	r.Get("/v1/stats", app.StatsSummary)

	r.Route("/v1/images", func(r chi.Router) {
		r.Get("/{name}", app.ImageFile)
		r.Group(func(r chi.Router) {
			if opts.Limiter != nil {
				r.Use(middleware.RateLimit(opts.Limiter, opts.Logger))
			}
			r.Post("/generations", app.ImagesGenerate)
			r.Post("/generations/archive", app.ImagesArchive)
			r.Post("/variations", app.ImagesVariation)
		})
	})

	return r
}
