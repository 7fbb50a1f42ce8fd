package network

import (
	"errors"
	"math"
	"strings"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/geo"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

// MaxSearchResults caps station autocomplete results
const MaxSearchResults = 8

// MinSearchQueryLength is the shortest query SearchStations answers
const MinSearchQueryLength = 2

var ErrEmptyIdentifier = errors.New("station identifier is required")

// Registry holds every station grouped by line. It is built once at startup
// and never mutated, so it is safe for concurrent readers.
type Registry struct {
	stations map[models.Line][]models.Station
	index    map[string]int // station code -> position within its line
}

// NewRegistry copies the per-line station lists
func NewRegistry(stations map[models.Line][]models.Station) *Registry {
	r := &Registry{
		stations: make(map[models.Line][]models.Station, len(stations)),
		index:    make(map[string]int),
	}
	for line, list := range stations {
		copied := make([]models.Station, len(list))
		copy(copied, list)
		r.stations[line] = copied
		for i, s := range copied {
			r.index[strings.ToUpper(s.Code)] = i
		}
	}
	return r
}

// each visits stations line by line in enumeration order until fn returns false
func (r *Registry) each(fn func(models.Station) bool) {
	for _, line := range models.Lines() {
		for _, s := range r.stations[line] {
			if !fn(s) {
				return
			}
		}
	}
}

// FindStation resolves a station by code or name. An exact, case-insensitive
// code match anywhere wins; otherwise the first station (line by line, in
// list order) whose name contains the identifier is returned. A nil station
// with a nil error means no station matched.
func (r *Registry) FindStation(identifier string) (*models.Station, error) {
	query := strings.ToLower(strings.TrimSpace(identifier))
	if query == "" {
		return nil, ErrEmptyIdentifier
	}

	var byCode, byName *models.Station
	r.each(func(s models.Station) bool {
		if strings.ToLower(s.Code) == query {
			found := s
			byCode = &found
			return false
		}
		if byName == nil && strings.Contains(strings.ToLower(s.Name), query) {
			found := s
			byName = &found
		}
		return true
	})

	if byCode != nil {
		return byCode, nil
	}
	return byName, nil
}

// SearchStations returns up to MaxSearchResults stations whose names contain
// the query, de-duplicated by name. Queries shorter than
// MinSearchQueryLength return nothing.
func (r *Registry) SearchStations(query string) []models.Station {
	q := strings.ToLower(strings.TrimSpace(query))
	results := []models.Station{}
	if len([]rune(q)) < MinSearchQueryLength {
		return results
	}

	seen := make(map[string]bool)
	r.each(func(s models.Station) bool {
		if !strings.Contains(strings.ToLower(s.Name), q) || seen[s.Name] {
			return true
		}
		seen[s.Name] = true
		results = append(results, s)
		return len(results) < MaxSearchResults
	})
	return results
}

// FindNearestStation returns the station closest to the given point with its
// distance in whole meters. The first station at the minimum distance wins.
func (r *Registry) FindNearestStation(lat, lon float64) (*models.NearestStation, bool) {
	var nearest models.Station
	minDistance := math.Inf(1)
	found := false

	r.each(func(s models.Station) bool {
		d := geo.Haversine(lat, lon, s.Latitude, s.Longitude)
		if d < minDistance {
			minDistance = d
			nearest = s
			found = true
		}
		return true
	})

	if !found {
		return nil, false
	}
	return &models.NearestStation{
		Station:        nearest,
		DistanceMeters: int(math.Round(minDistance)),
	}, true
}

// StationsByLine returns a copy of one line's stations in running order
func (r *Registry) StationsByLine(line models.Line) []models.Station {
	list := r.stations[line]
	out := make([]models.Station, len(list))
	copy(out, list)
	return out
}

// IndexOf returns the station's position within its line, or -1
func (r *Registry) IndexOf(s models.Station) int {
	i, ok := r.index[strings.ToUpper(s.Code)]
	if !ok {
		return -1
	}
	return i
}

// Count returns the total number of station entries across all lines
func (r *Registry) Count() int {
	n := 0
	for _, list := range r.stations {
		n += len(list)
	}
	return n
}

// All returns every station in enumeration order
func (r *Registry) All() []models.Station {
	out := make([]models.Station, 0, r.Count())
	r.each(func(s models.Station) bool {
		out = append(out, s)
		return true
	})
	return out
}

// StationOnLine looks a station up by exact (case-insensitive) name on one line
func (r *Registry) StationOnLine(line models.Line, name string) (*models.Station, bool) {
	for _, s := range r.stations[line] {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			found := s
			return &found, true
		}
	}
	return nil, false
}
