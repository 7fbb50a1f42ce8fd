package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/network"
)

// SuggestionRadiusMeters is how close the nearest station must be to be
// suggested as the origin
const SuggestionRadiusMeters = 2000

// StationDirectory defines the station lookups the handlers need
type StationDirectory interface {
	FindStation(identifier string) (*models.Station, error)
	SearchStations(query string) []models.Station
	FindNearestStation(lat, lon float64) (*models.NearestStation, bool)
	StationsByLine(line models.Line) []models.Station
}

// StationHandler handles HTTP requests for station data
type StationHandler struct {
	stations StationDirectory
}

func NewStationHandler(stations StationDirectory) *StationHandler {
	return &StationHandler{stations: stations}
}

// NearestStationResponse is the JSON response for GET /api/stations/nearest
type NearestStationResponse struct {
	Station   models.NearestStation `json:"station"`
	Suggested bool                  `json:"suggested"`
}

// SearchStations handles GET /api/stations?q=
func (h *StationHandler) SearchStations(w http.ResponseWriter, r *http.Request) {
	stations := h.stations.SearchStations(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, cacheStatic, ListResponse{Items: stations, Count: len(stations)})
}

// GetStation handles GET /api/stations/{id}, matching a code or a name
func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	station, err := h.stations.FindStation(id)
	if errors.Is(err, network.ErrEmptyIdentifier) {
		writeError(w, http.StatusBadRequest, "station identifier is required", nil)
		return
	}
	if err != nil {
		writeInternalError(w, "Failed to look up station", err)
		return
	}
	if station == nil {
		writeError(w, http.StatusNotFound, "Station not found", map[string]interface{}{
			"id": id,
		})
		return
	}

	writeJSON(w, http.StatusOK, cacheStatic, station)
}

// GetNearestStation handles GET /api/stations/nearest?lat=&lon=
func (h *StationHandler) GetNearestStation(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "lat and lon must be valid coordinates", map[string]interface{}{
			"lat": r.URL.Query().Get("lat"),
			"lon": r.URL.Query().Get("lon"),
		})
		return
	}

	nearest, ok := h.stations.FindNearestStation(lat, lon)
	if !ok {
		writeError(w, http.StatusNotFound, "No stations available", nil)
		return
	}

	writeJSON(w, http.StatusOK, cacheNone, NearestStationResponse{
		Station:   *nearest,
		Suggested: nearest.DistanceMeters <= SuggestionRadiusMeters,
	})
}

// GetLineStations handles GET /api/lines/{line}/stations
func (h *StationHandler) GetLineStations(w http.ResponseWriter, r *http.Request) {
	line, err := models.ParseLine(chi.URLParam(r, "line"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	stations := h.stations.StationsByLine(line)
	writeJSON(w, http.StatusOK, cacheStatic, ListResponse{Items: stations, Count: len(stations)})
}
