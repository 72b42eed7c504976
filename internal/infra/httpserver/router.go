package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appanalysis "github.com/bryanwahyu/verifact/internal/application/analysis"
	domai "github.com/bryanwahyu/verifact/internal/domain/ai"
	domain "github.com/bryanwahyu/verifact/internal/domain/analysis"
	"github.com/bryanwahyu/verifact/internal/middleware"
)

const maxBodyBytes = 1 << 20

// Options carries the optional pieces of the HTTP surface.
type Options struct {
	APIKeys        map[string]string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	Metrics        *middleware.Metrics
	Checkers       map[string]middleware.HealthChecker
	// Stop ends background goroutines started by the middleware.
	Stop <-chan struct{}
}

type Router struct {
	svc *appanalysis.Service
}

func NewRouter(svc *appanalysis.Service, opts Options) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.LoggingMiddleware)
	if opts.Metrics != nil {
		mux.Use(opts.Metrics.Middleware)
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	mux.Use(middleware.APIKeyAuth(opts.APIKeys))
	if opts.RateLimitRPS > 0 {
		mux.Use(middleware.RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst, opts.Stop))
	}

	mux.Get("/health", middleware.HealthHandler(opts.Checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics.Handler())
	}

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Use(middleware.RequireValidTenant)
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/analyses/latest", r.wrap(r.handleLatest))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Get("/analyses/{id}/fallbacks", r.wrap(r.handleFallbacks))
		rt.Get("/summary", r.wrap(r.handleSummary))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks transport-level decoding problems.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var br badRequest
		switch {
		case errors.As(err, &br), errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "not found")
		case errors.Is(err, appanalysis.ErrHistoryDisabled):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "ai quota exceeded")
		default:
			slog.Default().ErrorContext(req.Context(), "request failed",
				"path", req.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

type analyzeBody struct {
	ContentType  string `json:"contentType"`
	Content      string `json:"content"`
	FileName     string `json:"fileName"`
	FileType     string `json:"fileType"`
	LanguageHint string `json:"languageHint"`
}

// storedResponse is the analysis response plus the id it was stored under.
type storedResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	domain.Response
}

// POST /v1/{tenant}/analyze[?store=false]
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	var body analyzeBody
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		return badRequest{msg: "invalid JSON body: " + err.Error()}
	}
	if err := middleware.ValidateContentType(body.ContentType); err != nil {
		return badRequest{msg: err.Error()}
	}
	if body.ContentType == string(domain.ContentURL) {
		if err := middleware.ValidateURL(body.Content); err != nil {
			return badRequest{msg: err.Error()}
		}
	}

	ar, err := domain.NewRequest(domain.ContentType(body.ContentType),
		middleware.SanitizeString(body.Content),
		middleware.SanitizeString(body.FileName),
		middleware.SanitizeString(body.FileType),
		middleware.SanitizeString(body.LanguageHint))
	if err != nil {
		return err
	}

	if req.URL.Query().Get("store") == "false" || r.svc.Repo == nil {
		resp, err := r.svc.Analyze(req.Context(), ar)
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusOK, resp)
	}

	rec, err := r.svc.AnalyzeAndStore(req.Context(), tenant, ar)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, storedResponse{
		ID:        string(rec.ID),
		CreatedAt: rec.CreatedAt,
		Response:  rec.Response,
	})
}

// GET /v1/{tenant}/analyses?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))
	if page <= 0 {
		page = 1
	}

	list, err := r.svc.List(req.Context(), tenant, page, middleware.ValidateLimit(size))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/{tenant}/analyses/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.Latest(req.Context(), tenant, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/{tenant}/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest{msg: err.Error()}
	}

	rec, err := r.svc.Get(req.Context(), tenant, domain.RecordID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rec)
}

// GET /v1/{tenant}/analyses/{id}/fallbacks?limit=20
func (r *Router) handleFallbacks(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest{msg: err.Error()}
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	events, err := r.svc.FallbacksFor(req.Context(), tenant, id, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, events)
}

// GET /v1/{tenant}/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))

	summary, err := r.svc.Summary(req.Context(), tenant, middleware.ValidateDays(days))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, summary)
}
