package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"adcraft/internal/http/handlers"
	"adcraft/internal/middleware"
)

type RouterOptions struct {
	Logger          zerolog.Logger
	Countries       middleware.CountryLookup
	RateLimitPerMin int
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.Country(opts.Countries),
	)

	r.Get("/healthz", app.Health)

	r.Get("/", app.Index)
	r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/generate", app.Generate)
	r.Get("/result", app.Result)
	r.Get("/get_result", app.GetResult)

	return r
}
