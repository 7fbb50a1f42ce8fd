package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/userdata"
)

// SearchHistory records searched routes
type SearchHistory interface {
	AddRecentSearch(ctx context.Context, from, to string) error
}

// UserDataStore defines the per-user persistence the handlers need
type UserDataStore interface {
	SearchHistory
	Favorites(ctx context.Context) ([]models.FavoriteRoute, error)
	AddFavorite(ctx context.Context, from, to string) (models.FavoriteRoute, bool, error)
	RemoveFavorite(ctx context.Context, index int) error
	Preferences(ctx context.Context) (models.Preferences, error)
	SavePreferences(ctx context.Context, prefs models.Preferences) error
	RecentSearches(ctx context.Context) ([]models.RecentSearch, error)
}

// UserDataHandler handles favorites, preferences and recent searches
type UserDataHandler struct {
	store UserDataStore
}

func NewUserDataHandler(store UserDataStore) *UserDataHandler {
	return &UserDataHandler{store: store}
}

// FavoriteRequest is the JSON body for POST /api/favorites
type FavoriteRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GetFavorites handles GET /api/favorites
func (h *UserDataHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.store.Favorites(r.Context())
	if err != nil {
		writeInternalError(w, "Failed to retrieve favorites", err)
		return
	}
	writeJSON(w, http.StatusOK, cacheNone, ListResponse{Items: favorites, Count: len(favorites)})
}

// AddFavorite handles POST /api/favorites. It answers 201 for a new
// favorite and 200 when the route was already saved.
func (h *UserDataHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", map[string]interface{}{
			"internal": err.Error(),
		})
		return
	}

	fav, added, err := h.store.AddFavorite(r.Context(), req.From, req.To)
	if errors.Is(err, userdata.ErrInvalidRoute) {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		writeInternalError(w, "Failed to save favorite", err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, cacheNone, fav)
}

// RemoveFavorite handles DELETE /api/favorites/{index}
func (h *UserDataHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer", nil)
		return
	}

	err = h.store.RemoveFavorite(r.Context(), index)
	if errors.Is(err, userdata.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Favorite not found", map[string]interface{}{
			"index": index,
		})
		return
	}
	if err != nil {
		writeInternalError(w, "Failed to remove favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPreferences handles GET /api/preferences
func (h *UserDataHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.store.Preferences(r.Context())
	if err != nil {
		writeInternalError(w, "Failed to retrieve preferences", err)
		return
	}
	writeJSON(w, http.StatusOK, cacheNone, prefs)
}

// SavePreferences handles PUT /api/preferences
func (h *UserDataHandler) SavePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", map[string]interface{}{
			"internal": err.Error(),
		})
		return
	}

	err := h.store.SavePreferences(r.Context(), prefs)
	if errors.Is(err, userdata.ErrInvalidPreferences) {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		writeInternalError(w, "Failed to save preferences", err)
		return
	}
	writeJSON(w, http.StatusOK, cacheNone, prefs)
}

// GetRecentSearches handles GET /api/recent-searches
func (h *UserDataHandler) GetRecentSearches(w http.ResponseWriter, r *http.Request) {
	recent, err := h.store.RecentSearches(r.Context())
	if err != nil {
		writeInternalError(w, "Failed to retrieve recent searches", err)
		return
	}
	writeJSON(w, http.StatusOK, cacheNone, ListResponse{Items: recent, Count: len(recent)})
}
