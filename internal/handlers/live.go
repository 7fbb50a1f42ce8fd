package handlers

import (
	"context"
	"net/http"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/go-chi/chi/v5"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/live"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

// LiveBoard defines the live train operations the handlers need
type LiveBoard interface {
	ListLive(line models.Line) ([]models.LiveTrain, error)
	RefreshLive(line models.Line) ([]live.Transition, error)
	LiveStats(line models.Line) (live.DelayStats, error)
	LastLiveRefresh() time.Time
	LiveFeed() *gtfs.FeedMessage
}

// TransitionHandler receives status changes produced by a refresh
type TransitionHandler interface {
	HandleTransitions(ctx context.Context, transitions []live.Transition)
}

// LiveHandler handles HTTP requests for live train data
type LiveHandler struct {
	board    LiveBoard
	notifier TransitionHandler
}

func NewLiveHandler(board LiveBoard, notifier TransitionHandler) *LiveHandler {
	return &LiveHandler{board: board, notifier: notifier}
}

// LiveTrainView adds the display label to a live train
type LiveTrainView struct {
	models.LiveTrain
	ETALabel string `json:"eta"`
}

// LiveTrainsResponse is the JSON response for GET /api/live/{line}
type LiveTrainsResponse struct {
	Line        models.Line     `json:"line"`
	Trains      []LiveTrainView `json:"trains"`
	Count       int             `json:"count"`
	RefreshedAt *time.Time      `json:"refreshedAt,omitempty"`
}

func (h *LiveHandler) respond(w http.ResponseWriter, line models.Line, trains []models.LiveTrain) {
	views := make([]LiveTrainView, 0, len(trains))
	for _, t := range trains {
		views = append(views, LiveTrainView{LiveTrain: t, ETALabel: t.ETALabel()})
	}
	response := LiveTrainsResponse{Line: line, Trains: views, Count: len(views)}
	if at := h.board.LastLiveRefresh(); !at.IsZero() {
		at = at.UTC()
		response.RefreshedAt = &at
	}
	writeJSON(w, http.StatusOK, cacheLive, response)
}

// GetLine handles GET /api/live/{line}
func (h *LiveHandler) GetLine(w http.ResponseWriter, r *http.Request) {
	line, err := models.ParseLine(chi.URLParam(r, "line"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	trains, err := h.board.ListLive(line)
	if err != nil {
		writeInternalError(w, "Failed to retrieve live trains", err)
		return
	}
	h.respond(w, line, trains)
}

// RefreshLine handles POST /api/live/{line}/refresh, advancing the line's
// trains immediately instead of waiting for the next tick
func (h *LiveHandler) RefreshLine(w http.ResponseWriter, r *http.Request) {
	line, err := models.ParseLine(chi.URLParam(r, "line"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	transitions, err := h.board.RefreshLive(line)
	if err != nil {
		writeInternalError(w, "Failed to refresh live trains", err)
		return
	}
	if len(transitions) > 0 {
		h.notifier.HandleTransitions(r.Context(), transitions)
	}

	trains, err := h.board.ListLive(line)
	if err != nil {
		writeInternalError(w, "Failed to retrieve live trains", err)
		return
	}
	h.respond(w, line, trains)
}

// GetStats handles GET /api/live/{line}/stats
func (h *LiveHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	line, err := models.ParseLine(chi.URLParam(r, "line"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	stats, err := h.board.LiveStats(line)
	if err != nil {
		writeInternalError(w, "Failed to retrieve delay statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, cacheLive, stats)
}

// GetFeed handles GET /api/live/feed as a GTFS-realtime protobuf
func (h *LiveHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	data, err := live.EncodeFeed(h.board.LiveFeed())
	if err != nil {
		writeInternalError(w, "Failed to encode feed", err)
		return
	}

	w.Header().Set("Content-Type", "application/x-protobuf")
	w.Header().Set("Cache-Control", cacheLive)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
