package schedule

import (
	"fmt"
	"time"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/network"
)

const (
	// SyntheticRuns is the number of runs generated for a pair without a timetable
	SyntheticRuns = 10
	// SyntheticHeadway is the gap between generated departures
	SyntheticHeadway models.Minutes = 15

	fastTravelTime    models.Minutes = 30
	defaultTravelTime models.Minutes = 45
	platforms                        = 6
	delayedAbove                     = 0.8 // a draw above this marks the run delayed
)

// Rand is the random source used for synthetic runs
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type tableKey struct {
	line     models.Line
	from, to string
}

// Store answers timetable queries for station pairs. Pairs without an
// explicit timetable get a synthetic schedule starting at the current time.
type Store struct {
	registry *network.Registry
	tables   map[tableKey]models.Timetable
	rnd      Rand
	now      func() time.Time
}

func NewStore(registry *network.Registry, timetables []models.Timetable, rnd Rand, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		registry: registry,
		tables:   make(map[tableKey]models.Timetable, len(timetables)),
		rnd:      rnd,
		now:      now,
	}
	for _, t := range timetables {
		s.tables[tableKey{line: t.Line, from: t.From, to: t.To}] = t
	}
	return s
}

// GetSchedule returns the runs from one station to another. The line is
// taken from the FROM station. CategoryAll concatenates slow, fast and
// ladies runs in that order. An unresolved station yields an empty result.
func (s *Store) GetSchedule(fromID, toID string, category models.Category) ([]models.ScheduleEntry, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidCategory, category)
	}

	from, err := s.registry.FindStation(fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve origin: %w", err)
	}
	to, err := s.registry.FindStation(toID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination: %w", err)
	}
	if from == nil || to == nil {
		return []models.ScheduleEntry{}, nil
	}

	table, ok := s.tables[tableKey{line: from.Line, from: from.Code, to: to.Code}]
	if !ok {
		return s.generate(*from, category), nil
	}

	if category != models.CategoryAll {
		return copyEntries(table.Entries[category]), nil
	}

	entries := []models.ScheduleEntry{}
	for _, c := range models.TimetableCategories() {
		entries = append(entries, table.Entries[c]...)
	}
	return entries, nil
}

// HasTimetable reports whether an explicit timetable exists for the pair
func (s *Store) HasTimetable(line models.Line, fromCode, toCode string) bool {
	_, ok := s.tables[tableKey{line: line, from: fromCode, to: toCode}]
	return ok
}

// generate synthesizes SyntheticRuns departures every SyntheticHeadway
// minutes starting now.
func (s *Store) generate(from models.Station, category models.Category) []models.ScheduleEntry {
	travel := defaultTravelTime
	if category == models.CategoryFast {
		travel = fastTravelTime
	}

	start := models.TimeOfDayOf(s.now())
	entries := make([]models.ScheduleEntry, 0, SyntheticRuns)
	for i := 0; i < SyntheticRuns; i++ {
		dep := start.Add(SyntheticHeadway * models.Minutes(i))
		status := models.StatusOnTime
		platform := s.rnd.Intn(platforms) + 1
		if s.rnd.Float64() > delayedAbove {
			status = models.StatusDelayed
		}
		entries = append(entries, models.ScheduleEntry{
			Departure:   dep,
			Arrival:     dep.Add(travel),
			Duration:    travel,
			Platform:    platform,
			TrainNumber: fmt.Sprintf("%s-%s-%03d", from.Line.Abbreviation(), category.Letter(), i+1),
			Category:    category,
			Status:      status,
		})
	}
	return entries
}

func copyEntries(in []models.ScheduleEntry) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, len(in))
	copy(out, in)
	return out
}
