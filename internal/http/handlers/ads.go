package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"adcraft/internal/domain"
	"adcraft/internal/middleware"
)

const maxFormBytes = 64 << 10

var requiredFields = []string{"brand_name", "company_type", "description", "target_audience", "tone"}

type formPage struct {
	CompanyTypes []domain.CompanyType
	Tones        []domain.Tone
	Values       domain.AdRequest
	Error        string
}

type resultPage struct {
	SubmissionID string
}

type resultResponse struct {
	Status           domain.JobStatus `json:"status"`
	AdHeadline       string           `json:"ad_headline,omitempty"`
	AdDescription    string           `json:"ad_description,omitempty"`
	RelevantHashtags string           `json:"relevant_hashtags,omitempty"`
	ImageURL         string           `json:"image_url,omitempty"`
	Error            string           `json:"error,omitempty"`
}

func newFormPage(values domain.AdRequest, errMsg string) formPage {
	return formPage{CompanyTypes: domain.CompanyTypes, Tones: domain.Tones, Values: values, Error: errMsg}
}

// Index renders the submission form.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "form.html", newFormPage(domain.AdRequest{}, ""))
}

// Generate runs a submission and redirects to its result page. The handler
// blocks for the duration of the completion call.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		a.render(w, http.StatusBadRequest, "form.html", newFormPage(domain.AdRequest{}, "The form could not be read."))
		return
	}
	// Values reach the prompt exactly as submitted.
	req := domain.AdRequest{
		BrandName:      r.PostForm.Get("brand_name"),
		CompanyType:    domain.CompanyType(r.PostForm.Get("company_type")),
		Description:    r.PostForm.Get("description"),
		TargetAudience: r.PostForm.Get("target_audience"),
		Tone:           domain.Tone(r.PostForm.Get("tone")),
	}
	if missing := missingFields(r.PostForm); len(missing) > 0 {
		a.render(w, http.StatusBadRequest, "form.html", newFormPage(req, "Please fill in: "+strings.Join(missing, ", ")+"."))
		return
	}

	job, err := a.Ads.Submit(r.Context(), req)
	if err != nil {
		a.Logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("submit ad")
		a.render(w, http.StatusInternalServerError, "form.html", newFormPage(req, "Something went wrong, please try again."))
		return
	}
	a.Logger.Info().
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("job_id", job.ID).
		Str("status", string(job.Status)).
		Str("country", middleware.CountryFromContext(r.Context())).
		Msg("ad submitted")
	http.Redirect(w, r, "/result?submission_id="+url.QueryEscape(job.ID), http.StatusSeeOther)
}

func missingFields(form url.Values) []string {
	var missing []string
	for _, field := range requiredFields {
		if strings.TrimSpace(form.Get(field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Result renders the polling page, or sends unknown submissions back to the
// form.
func (a *App) Result(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("submission_id")
	ok, err := a.Ads.Exists(r.Context(), id)
	if err != nil {
		a.Logger.Error().Err(err).Str("job_id", id).Msg("lookup job")
		http.Error(w, "job lookup failed", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	a.render(w, http.StatusOK, "result.html", resultPage{SubmissionID: id})
}

// GetResult reports the job state as JSON. Unknown ids read as processing.
func (a *App) GetResult(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("submission_id")
	if id == "" {
		a.json(w, http.StatusOK, resultResponse{Status: domain.JobStatusProcessing})
		return
	}
	job, err := a.Ads.Status(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.json(w, http.StatusOK, resultResponse{Status: domain.JobStatusProcessing})
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Str("job_id", id).Msg("load job status")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load job")
		return
	}
	a.json(w, http.StatusOK, toResultResponse(job))
}

func toResultResponse(job *domain.Job) resultResponse {
	resp := resultResponse{Status: job.Status}
	switch job.Status {
	case domain.JobStatusReady:
		if job.Result != nil {
			resp.AdHeadline = job.Result.AdHeadline
			resp.AdDescription = job.Result.AdDescription
			resp.RelevantHashtags = job.Result.RelevantHashtags
			resp.ImageURL = job.Result.ImageURL
		}
	case domain.JobStatusError:
		resp.Error = job.Error
	}
	return resp
}
