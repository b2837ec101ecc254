package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "healthcli/internal/errors"
	"healthcli/internal/health"
	"healthcli/internal/pipeline"
)

// ProgressBroadcaster receives pipeline progress events for connected
// dashboard clients.
type ProgressBroadcaster interface {
	Broadcast(message interface{})
}

// CleanHandler triggers directory cleaning runs from the dashboard.
// Runs execute one at a time; starting a second run while one is active
// is rejected.
type CleanHandler struct {
	registry *health.Registry
	logger   *slog.Logger
	hub      ProgressBroadcaster

	mu      sync.Mutex
	running bool
}

// NewCleanHandler creates a clean-run handler.
func NewCleanHandler(registry *health.Registry, hub ProgressBroadcaster, logger *slog.Logger) *CleanHandler {
	return &CleanHandler{
		registry: registry,
		logger:   logger.With(slog.String("component", "clean_handler")),
		hub:      hub,
	}
}

// Routes returns the clean-run routes.
func (h *CleanHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", h.StartRun)
	return r
}

// cleanRequest is the POST /api/clean body.
type cleanRequest struct {
	Directory string `json:"directory"`
	Workbook  bool   `json:"workbook"`
	SQLite    bool   `json:"sqlite"`
}

// StartRun handles POST /api/clean. The run executes in the background;
// progress is streamed over the websocket feed.
func (h *CleanHandler) StartRun(w http.ResponseWriter, r *http.Request) {
	var req cleanRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.InvalidRequestWithError(err)))
		return
	}
	if req.Directory == "" {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrValidation("directory", "directory is required")))
		return
	}
	if info, err := os.Stat(req.Directory); err != nil || !info.IsDir() {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrValidation("directory", "not a readable directory")))
		return
	}

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.New(http.StatusConflict, "RUN_IN_PROGRESS", "A cleaning run is already in progress")))
		return
	}
	h.running = true
	h.mu.Unlock()

	runner := pipeline.NewRunner(h.registry, h.logger)
	runner.OnProgress(func(ev pipeline.Event) {
		h.hub.Broadcast(ev)
	})

	go func() {
		defer func() {
			h.mu.Lock()
			h.running = false
			h.mu.Unlock()
		}()

		results, err := runner.Run(context.Background(), req.Directory, pipeline.Options{
			Workbook: req.Workbook,
			SQLite:   req.SQLite,
		})
		if err != nil {
			h.logger.Error("cleaning run failed", slog.String("error", err.Error()))
			return
		}
		h.logger.Info("cleaning run finished",
			slog.String("directory", req.Directory),
			slog.Int("metrics", len(results)))
	}()

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]interface{}{
		"status":    "started",
		"directory": req.Directory,
	})
}
