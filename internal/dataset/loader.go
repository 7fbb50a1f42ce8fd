package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

// networkYAML is the built-in seed for the suburban network.
//
//go:embed network.yaml
var networkYAML []byte

// Dataset is the validated static data the transit core is built from
type Dataset struct {
	Stations       map[models.Line][]models.Station
	Timetables     []models.Timetable
	LiveTrains     map[models.Line][]models.LiveTrain
	Fares          []models.FareRule
	ServiceUpdates []models.ServiceUpdate

	notifications []notificationDoc
}

// Load parses the embedded network.yaml
func Load() (*Dataset, error) {
	return Parse(networkYAML)
}

// LoadFile parses a dataset from disk, for deployments that ship their own
// network description.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes, validates and converts a YAML dataset
func Parse(data []byte) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	v := validator.New()
	if err := v.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	ds := &Dataset{
		Stations:      make(map[models.Line][]models.Station, len(doc.Lines)),
		LiveTrains:    make(map[models.Line][]models.LiveTrain),
		notifications: doc.Notifications,
	}

	if err := ds.convertStations(doc.Lines); err != nil {
		return nil, err
	}
	if err := ds.convertTimetables(doc.Timetables); err != nil {
		return nil, err
	}
	if err := ds.convertLiveTrains(doc.LiveTrains); err != nil {
		return nil, err
	}
	if err := ds.convertFares(doc.Fares); err != nil {
		return nil, err
	}
	for _, u := range doc.ServiceUpdates {
		ds.ServiceUpdates = append(ds.ServiceUpdates, models.ServiceUpdate{
			ID:       u.ID,
			Time:     u.Time,
			Line:     models.Line(u.Line),
			Message:  u.Message,
			Status:   u.Status,
			Priority: u.Priority,
		})
	}

	return ds, nil
}

func (ds *Dataset) convertStations(lines []lineDoc) error {
	seenCodes := make(map[string]models.Line)
	for _, l := range lines {
		line := models.Line(l.Line)
		if _, dup := ds.Stations[line]; dup {
			return fmt.Errorf("invalid dataset: line %s listed twice", line)
		}

		stations := make([]models.Station, 0, len(l.Stations))
		for _, s := range l.Stations {
			code := strings.ToUpper(s.Code)
			if other, dup := seenCodes[code]; dup {
				return fmt.Errorf("invalid dataset: station code %s on %s already used on %s", code, line, other)
			}
			seenCodes[code] = line

			facilities := make([]models.Facility, 0, len(s.Facilities))
			for _, f := range s.Facilities {
				facilities = append(facilities, models.Facility(f))
			}
			stations = append(stations, models.Station{
				Code:       code,
				Name:       s.Name,
				Line:       line,
				Zone:       s.Zone,
				Facilities: facilities,
				Latitude:   s.Lat,
				Longitude:  s.Lon,
			})
		}
		ds.Stations[line] = stations
	}
	return nil
}

func (ds *Dataset) hasStation(line models.Line, code string) bool {
	for _, s := range ds.Stations[line] {
		if s.Code == code {
			return true
		}
	}
	return false
}

func (ds *Dataset) convertTimetables(tables []timetableDoc) error {
	for _, t := range tables {
		line := models.Line(t.Line)
		from := strings.ToUpper(t.From)
		to := strings.ToUpper(t.To)
		if !ds.hasStation(line, from) || !ds.hasStation(line, to) {
			return fmt.Errorf("invalid dataset: timetable %s-%s references a station not on the %s line", from, to, line)
		}

		tt := models.Timetable{
			Line:    line,
			From:    from,
			To:      to,
			Entries: make(map[models.Category][]models.ScheduleEntry),
		}
		runs := map[models.Category][]runDoc{
			models.CategorySlow:   t.Slow,
			models.CategoryFast:   t.Fast,
			models.CategoryLadies: t.Ladies,
		}
		for category, docs := range runs {
			if len(docs) == 0 {
				continue
			}
			entries := make([]models.ScheduleEntry, 0, len(docs))
			for _, r := range docs {
				dep, err := models.ParseTimeOfDay(r.Departure)
				if err != nil {
					return fmt.Errorf("invalid dataset: timetable %s-%s run %s: %w", from, to, r.Train, err)
				}
				arr, err := models.ParseTimeOfDay(r.Arrival)
				if err != nil {
					return fmt.Errorf("invalid dataset: timetable %s-%s run %s: %w", from, to, r.Train, err)
				}
				// an arrival before the departure is on the next day
				duration := arr.Since(dep)
				entries = append(entries, models.ScheduleEntry{
					Departure:   dep,
					Arrival:     dep.Add(duration),
					Duration:    duration,
					Platform:    r.Platform,
					TrainNumber: r.Train,
					Category:    category,
					Status:      models.Status(r.Status),
				})
			}
			tt.Entries[category] = entries
		}
		ds.Timetables = append(ds.Timetables, tt)
	}
	return nil
}

func (ds *Dataset) convertLiveTrains(trains []liveTrainDoc) error {
	for _, t := range trains {
		train := models.LiveTrain{
			TrainNumber:    t.Train,
			Line:           models.Line(t.Line),
			Route:          t.Route,
			CurrentStation: t.Current,
			NextStation:    t.Next,
			ETA:            models.Minutes(t.ETA),
			Status:         models.Status(t.Status),
			Delay:          models.Minutes(t.Delay),
			Coaches:        t.Coaches,
			CrowdLevel:     models.CrowdLevel(t.Crowd),
		}
		if err := train.Validate(); err != nil {
			return fmt.Errorf("invalid dataset: %w", err)
		}
		ds.LiveTrains[train.Line] = append(ds.LiveTrains[train.Line], train)
	}
	return nil
}

func (ds *Dataset) convertFares(fares []fareDoc) error {
	seen := make(map[[2]int]bool)
	for _, f := range fares {
		lo, hi := f.From, f.To
		if lo > hi {
			lo, hi = hi, lo
		}
		key := [2]int{lo, hi}
		if seen[key] {
			return fmt.Errorf("invalid dataset: fare for zones %d-%d listed twice", lo, hi)
		}
		seen[key] = true
		ds.Fares = append(ds.Fares, models.FareRule{
			FromZone: lo,
			ToZone:   hi,
			Second:   f.Second,
			First:    f.First,
		})
	}
	return nil
}

// Notifications returns the seeded announcements, timestamped relative to now
func (ds *Dataset) Notifications(now time.Time) []models.Notification {
	out := make([]models.Notification, 0, len(ds.notifications))
	for _, n := range ds.notifications {
		out = append(out, models.Notification{
			ID:        uuid.New().String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      models.NotificationType(n.Type),
			Line:      models.Line(n.Line),
			CreatedAt: now.Add(-time.Duration(n.AgeMinutes) * time.Minute),
		})
	}
	return out
}
