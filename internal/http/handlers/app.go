package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"adcraft/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// AdService is the ad generation workflow served over HTTP.
type AdService interface {
	Submit(ctx context.Context, req domain.AdRequest) (*domain.Job, error)
	Status(ctx context.Context, jobID string) (*domain.Job, error)
	Exists(ctx context.Context, jobID string) (bool, error)
}

type App struct {
	Ads    AdService
	Logger zerolog.Logger
}

func NewApp(ads AdService, logger zerolog.Logger) *App {
	return &App{Ads: ads, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, map[string]string{"error": errCode, "message": msg})
}

func (a *App) render(w http.ResponseWriter, code int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		a.Logger.Error().Err(err).Str("template", name).Msg("render page")
	}
}
