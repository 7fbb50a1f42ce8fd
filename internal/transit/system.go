package transit

import (
	"context"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/dataset"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/fare"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/live"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/network"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/routing"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/schedule"
)

// Rand is the random source threaded through the schedule generator and the
// live refresh
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Options tune how a System is built
type Options struct {
	// Seed for the shared random source, ignored when Rand is set. Zero
	// seeds from the current time.
	Seed int64
	Rand Rand
	// Now is the clock, time.Now when nil
	Now func() time.Time
}

// System is the transit core: every query the application shell needs,
// built once from a dataset and shared by all callers.
type System struct {
	stations  *network.Registry
	fares     *fare.Table
	schedules *schedule.Store
	live      *live.State
	routes    *routing.Engine

	serviceUpdates []models.ServiceUpdate
	now            func() time.Time
}

func New(ds *dataset.Dataset, opts Options) *System {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = NewRand(opts.Seed)
	}

	stations := network.NewRegistry(ds.Stations)
	fares := fare.NewTable(ds.Fares)

	updates := make([]models.ServiceUpdate, len(ds.ServiceUpdates))
	copy(updates, ds.ServiceUpdates)

	return &System{
		stations:       stations,
		fares:          fares,
		schedules:      schedule.NewStore(stations, ds.Timetables, rnd, now),
		live:           live.NewState(ds.LiveTrains, rnd, now),
		routes:         routing.NewEngine(stations, fares),
		serviceUpdates: updates,
		now:            now,
	}
}

func (s *System) FindStation(identifier string) (*models.Station, error) {
	return s.stations.FindStation(identifier)
}

func (s *System) SearchStations(query string) []models.Station {
	return s.stations.SearchStations(query)
}

func (s *System) FindNearestStation(lat, lon float64) (*models.NearestStation, bool) {
	return s.stations.FindNearestStation(lat, lon)
}

func (s *System) StationCount() int {
	return s.stations.Count()
}

func (s *System) StationsByLine(line models.Line) []models.Station {
	return s.stations.StationsByLine(line)
}

func (s *System) GetSchedule(fromID, toID string, category models.Category) ([]models.ScheduleEntry, error) {
	return s.schedules.GetSchedule(fromID, toID, category)
}

func (s *System) CalculateFare(fromZone, toZone int, class models.TicketClass) (int, error) {
	return s.fares.CalculateFare(fromZone, toZone, class)
}

func (s *System) FareRules() []models.FareRule {
	return s.fares.Rules()
}

func (s *System) GetRouteOptions(fromID, toID string) ([]models.RouteOption, error) {
	return s.routes.GetRouteOptions(fromID, toID)
}

func (s *System) ListLive(line models.Line) ([]models.LiveTrain, error) {
	return s.live.List(line)
}

func (s *System) RefreshLive(line models.Line) ([]live.Transition, error) {
	return s.live.Refresh(line)
}

// LiveStats returns the delay statistics accumulated for a line
func (s *System) LiveStats(line models.Line) (live.DelayStats, error) {
	return s.live.Stats(line)
}

func (s *System) LastLiveRefresh() time.Time {
	return s.live.LastRefresh()
}

// RunLive advances every line's trains on each tick until ctx is done
func (s *System) RunLive(ctx context.Context, interval time.Duration, onChange func([]live.Transition)) {
	s.live.Run(ctx, interval, onChange)
}

// LiveFeed renders every live train as a GTFS-realtime message
func (s *System) LiveFeed() *gtfs.FeedMessage {
	return live.BuildFeed(s.live.All(), s.stations, s.now())
}

func (s *System) ServiceUpdates() []models.ServiceUpdate {
	out := make([]models.ServiceUpdate, len(s.serviceUpdates))
	copy(out, s.serviceUpdates)
	return out
}

// Now is the system clock
func (s *System) Now() time.Time {
	return s.now()
}
