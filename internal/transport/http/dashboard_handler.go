package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"healthcli/internal/dashboard"
	apierrors "healthcli/internal/errors"
	"healthcli/internal/pipeline"
)

// DashboardHandler exposes the upload-and-plot workflow over HTTP.
type DashboardHandler struct {
	service        *dashboard.Service
	logger         *slog.Logger
	validate       *validator.Validate
	maxUploadBytes int64
	maxTrendDegree int
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service *dashboard.Service, logger *slog.Logger, maxUploadBytes int64, maxTrendDegree int) *DashboardHandler {
	return &DashboardHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "dashboard_handler")),
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
		maxTrendDegree: maxTrendDegree,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/upload", h.Upload)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Use(h.SessionCtx)
		r.Get("/columns", h.Columns)
		r.Get("/series", h.Series)
	})
	return r
}

// SessionCtx validates the session ID parameter.
func (h *DashboardHandler) SessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if _, ok := h.service.Session(id); !ok {
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrSessionNotFound))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Upload handles POST /api/upload: a multipart batch of export CSVs.
func (h *DashboardHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.WarnContext(r.Context(), "rejecting oversized or malformed upload",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrUploadTooLarge))
		return
	}

	form := r.MultipartForm
	if form == nil || len(form.File["files"]) == 0 {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrNoUploadedFiles))
		return
	}

	var uploads []dashboard.Upload
	for _, header := range form.File["files"] {
		file, err := header.Open()
		if err != nil {
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
			return
		}
		defer file.Close()
		uploads = append(uploads, dashboard.Upload{Name: header.Filename, Reader: file})
	}

	sess, err := h.service.CreateSession(uploads)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create session",
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
		return
	}

	columns, _ := h.service.NumericColumns(sess.ID)
	render.JSON(w, r, map[string]interface{}{
		"status":     "success",
		"session_id": sess.ID,
		"sources":    sess.Sources,
		"rows":       len(sess.Table.Rows),
		"columns":    columns,
	})
}

// Columns handles GET /api/sessions/{sessionID}/columns.
func (h *DashboardHandler) Columns(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	columns, err := h.service.NumericColumns(id)
	if err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrSessionNotFound))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status":  "success",
		"columns": columns,
	})
}

// seriesQuery carries the validated query parameters of a series request.
type seriesQuery struct {
	Columns   []string `validate:"required,min=1,dive,required"`
	From      string   `validate:"omitempty"`
	To        string   `validate:"omitempty"`
	NightFrom string   `validate:"omitempty,len=5"`
	NightTo   string   `validate:"omitempty,len=5"`
	Trend     int      `validate:"omitempty,min=0"`
}

// Series handles GET /api/sessions/{sessionID}/series.
func (h *DashboardHandler) Series(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	q := r.URL.Query()

	query := seriesQuery{
		Columns:   q["column"],
		From:      q.Get("from"),
		To:        q.Get("to"),
		NightFrom: q.Get("night_from"),
		NightTo:   q.Get("night_to"),
	}
	if v := q.Get("trend"); v != "" {
		degree, err := strconv.Atoi(v)
		if err != nil || degree < 0 {
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrValidation("trend", "must be a positive integer")))
			return
		}
		query.Trend = degree
	}

	if err := h.validate.Struct(query); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrValidation("query", err.Error())))
		return
	}
	if query.Trend > h.maxTrendDegree {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrValidation("trend", "degree exceeds the configured maximum")))
		return
	}
	if (query.NightFrom == "") != (query.NightTo == "") {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrValidation("night_from", "night window needs both bounds")))
		return
	}

	req := dashboard.SeriesRequest{
		Columns:     query.Columns,
		NightFrom:   query.NightFrom,
		NightTo:     query.NightTo,
		TrendDegree: query.Trend,
	}
	var err error
	if req.From, err = parseBound(query.From); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrValidation("from", "invalid timestamp")))
		return
	}
	if req.To, err = parseBound(query.To); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrValidation("to", "invalid timestamp")))
		return
	}

	series, err := h.service.Series(id, req)
	if err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"series": series,
	})
}

// parseBound accepts RFC 3339 or the export's own timestamp layout.
func parseBound(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	if ts, ok := pipeline.ParseExportTime(value); ok {
		return ts, nil
	}
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
