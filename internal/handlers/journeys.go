package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/geo"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/network"
)

// JourneyPlanner defines the queries behind schedule, fare and route lookups
type JourneyPlanner interface {
	FindStation(identifier string) (*models.Station, error)
	GetSchedule(fromID, toID string, category models.Category) ([]models.ScheduleEntry, error)
	CalculateFare(fromZone, toZone int, class models.TicketClass) (int, error)
	GetRouteOptions(fromID, toID string) ([]models.RouteOption, error)
}

// JourneyHandler handles schedule, fare and route requests
type JourneyHandler struct {
	planner JourneyPlanner
	history SearchHistory
	log     *zap.SugaredLogger
}

func NewJourneyHandler(planner JourneyPlanner, history SearchHistory, log *zap.SugaredLogger) *JourneyHandler {
	return &JourneyHandler{planner: planner, history: history, log: log}
}

// ScheduleResponse is the JSON response for GET /api/schedule
type ScheduleResponse struct {
	From       *models.Station        `json:"from,omitempty"`
	To         *models.Station        `json:"to,omitempty"`
	Category   models.Category        `json:"category"`
	DistanceKm float64                `json:"distanceKm,omitempty"`
	Fare       int                    `json:"fare,omitempty"`
	Entries    []models.ScheduleEntry `json:"entries"`
	Count      int                    `json:"count"`
}

// FareResponse is the JSON response for GET /api/fares
type FareResponse struct {
	FromZone int                `json:"fromZone"`
	ToZone   int                `json:"toZone"`
	Class    models.TicketClass `json:"class"`
	Fare     int                `json:"fare"`
	Currency string             `json:"currency"`
}

// readPair extracts and checks the from/to query parameters. It writes the
// 400 response itself and reports false when they are unusable.
func readPair(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "Please select both from and to stations", nil)
		return "", "", false
	}
	if strings.EqualFold(from, to) {
		writeError(w, http.StatusBadRequest, "From and to stations cannot be the same", map[string]interface{}{
			"station": from,
		})
		return "", "", false
	}
	return from, to, true
}

// GetSchedule handles GET /api/schedule?from=&to=&category=
func (h *JourneyHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	from, to, ok := readPair(w, r)
	if !ok {
		return
	}
	category, err := models.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	entries, err := h.planner.GetSchedule(from, to, category)
	if errors.Is(err, network.ErrEmptyIdentifier) || errors.Is(err, models.ErrInvalidCategory) {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		writeInternalError(w, "Failed to retrieve schedule", err)
		return
	}

	response := ScheduleResponse{
		Category: category,
		Entries:  entries,
		Count:    len(entries),
	}
	fromStation, _ := h.planner.FindStation(from)
	toStation, _ := h.planner.FindStation(to)
	if fromStation != nil && toStation != nil {
		response.From = fromStation
		response.To = toStation
		km := geo.DistanceKm(fromStation.Latitude, fromStation.Longitude, toStation.Latitude, toStation.Longitude)
		response.DistanceKm = math.Round(km*10) / 10
		if fare, err := h.planner.CalculateFare(fromStation.Zone, toStation.Zone, models.ClassSecond); err == nil {
			response.Fare = fare
		}
	}

	if err := h.history.AddRecentSearch(ctx, from, to); err != nil {
		h.log.Warnw("failed to record recent search", "from", from, "to", to, "error", err)
	}

	writeJSON(w, http.StatusOK, cacheNone, response)
}

// GetFare handles GET /api/fares?fromZone=&toZone=&class=
func (h *JourneyHandler) GetFare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fromZone, fromErr := strconv.Atoi(q.Get("fromZone"))
	toZone, toErr := strconv.Atoi(q.Get("toZone"))
	if fromErr != nil || toErr != nil {
		writeError(w, http.StatusBadRequest, "fromZone and toZone must be integers", map[string]interface{}{
			"fromZone": q.Get("fromZone"),
			"toZone":   q.Get("toZone"),
		})
		return
	}
	class, err := models.ParseTicketClass(q.Get("class"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	fare, err := h.planner.CalculateFare(fromZone, toZone, class)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	writeJSON(w, http.StatusOK, cacheStatic, FareResponse{
		FromZone: fromZone,
		ToZone:   toZone,
		Class:    class,
		Fare:     fare,
		Currency: "INR",
	})
}

// GetRoutes handles GET /api/routes?from=&to=
func (h *JourneyHandler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	from, to, ok := readPair(w, r)
	if !ok {
		return
	}

	options, err := h.planner.GetRouteOptions(from, to)
	if errors.Is(err, network.ErrEmptyIdentifier) {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		writeInternalError(w, "Failed to compute routes", err)
		return
	}

	writeJSON(w, http.StatusOK, cacheNone, ListResponse{Items: options, Count: len(options)})
}
