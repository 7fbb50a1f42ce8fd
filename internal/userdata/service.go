package userdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

const (
	favoritesKey      = "mindicator_favorites"
	preferencesKey    = "mindicator_preferences"
	recentSearchesKey = "mindicator_recent_searches"

	MaxFavorites      = 10
	MaxRecentSearches = 5
)

var (
	ErrInvalidPreferences = errors.New("invalid preferences")
	ErrInvalidRoute       = errors.New("origin and destination are required")
)

// Service manages favorites, preferences and recent searches on top of a
// Store. Read-modify-write cycles are serialized.
type Service struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time

	mu sync.Mutex
}

func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, validate: validator.New(), now: now}
}

// Ping checks the underlying store
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// load decodes a stored document into dst. A missing or unreadable document
// reports false and is not an error.
func (s *Service) load(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *Service) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.store.Put(ctx, key, data)
}

// Favorites returns saved routes, newest first
func (s *Service) Favorites(ctx context.Context) ([]models.FavoriteRoute, error) {
	var favorites []models.FavoriteRoute
	found, err := s.load(ctx, favoritesKey, &favorites)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	if !found || favorites == nil {
		favorites = []models.FavoriteRoute{}
	}
	return favorites, nil
}

// AddFavorite saves a route at the front of the list, keeping at most
// MaxFavorites. A route already saved is returned unchanged with added false.
func (s *Service) AddFavorite(ctx context.Context, from, to string) (models.FavoriteRoute, bool, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return models.FavoriteRoute{}, false, ErrInvalidRoute
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.Favorites(ctx)
	if err != nil {
		return models.FavoriteRoute{}, false, err
	}
	for _, f := range favorites {
		if f.From == from && f.To == to {
			return f, false, nil
		}
	}

	fav := models.FavoriteRoute{
		ID:        uuid.New().String(),
		From:      from,
		To:        to,
		CreatedAt: s.now().UTC(),
	}
	favorites = append([]models.FavoriteRoute{fav}, favorites...)
	if len(favorites) > MaxFavorites {
		favorites = favorites[:MaxFavorites]
	}

	if err := s.save(ctx, favoritesKey, favorites); err != nil {
		return models.FavoriteRoute{}, false, fmt.Errorf("failed to save favorites: %w", err)
	}
	return fav, true, nil
}

// RemoveFavorite deletes the favorite at a position in the list
func (s *Service) RemoveFavorite(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.Favorites(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(favorites) {
		return fmt.Errorf("favorite %d: %w", index, ErrNotFound)
	}

	favorites = append(favorites[:index], favorites[index+1:]...)
	if err := s.save(ctx, favoritesKey, favorites); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// Preferences returns the saved settings, or the defaults when none are
// saved or the saved document is unusable
func (s *Service) Preferences(ctx context.Context) (models.Preferences, error) {
	var prefs models.Preferences
	found, err := s.load(ctx, preferencesKey, &prefs)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}
	if !found || s.validate.Struct(prefs) != nil {
		return models.DefaultPreferences(), nil
	}
	return prefs, nil
}

func (s *Service) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	if err := s.validate.Struct(prefs); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, preferencesKey, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// RecentSearches returns searched routes, most recent first
func (s *Service) RecentSearches(ctx context.Context) ([]models.RecentSearch, error) {
	var recent []models.RecentSearch
	found, err := s.load(ctx, recentSearchesKey, &recent)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent searches: %w", err)
	}
	if !found || recent == nil {
		recent = []models.RecentSearch{}
	}
	return recent, nil
}

// AddRecentSearch moves a route to the front of the history, keeping at
// most MaxRecentSearches
func (s *Service) AddRecentSearch(ctx context.Context, from, to string) error {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return ErrInvalidRoute
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recent, err := s.RecentSearches(ctx)
	if err != nil {
		return err
	}

	updated := []models.RecentSearch{{From: from, To: to, SearchedAt: s.now().UTC()}}
	for _, r := range recent {
		if r.From == from && r.To == to {
			continue
		}
		updated = append(updated, r)
	}
	if len(updated) > MaxRecentSearches {
		updated = updated[:MaxRecentSearches]
	}

	if err := s.save(ctx, recentSearchesKey, updated); err != nil {
		return fmt.Errorf("failed to save recent searches: %w", err)
	}
	return nil
}
