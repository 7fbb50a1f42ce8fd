package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

const (
	statusChangeProbability = 0.1
	onTimeProbability       = 0.8
	minDelay                = 2
	delaySpread             = 10
)

// Rand is the random source driving the simulated refresh
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Transition records a train whose status changed during a refresh
type Transition struct {
	Train models.LiveTrain
	From  models.Status
}

// State holds the in-service trains of every line. Refreshes are serialized;
// readers always receive copies.
type State struct {
	mu     sync.RWMutex
	trains map[models.Line][]models.LiveTrain
	stats  map[models.Line]*lineStats
	rnd    Rand

	lastRefresh time.Time
	now         func() time.Time
}

func NewState(seed map[models.Line][]models.LiveTrain, rnd Rand, now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	trains := make(map[models.Line][]models.LiveTrain, len(seed))
	for line, list := range seed {
		copied := make([]models.LiveTrain, len(list))
		copy(copied, list)
		trains[line] = copied
	}
	return &State{
		trains: trains,
		stats:  make(map[models.Line]*lineStats),
		rnd:    rnd,
		now:    now,
	}
}

// List returns a snapshot of a line's trains
func (s *State) List(line models.Line) ([]models.LiveTrain, error) {
	if !line.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidLine, line)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LiveTrain, len(s.trains[line]))
	copy(out, s.trains[line])
	return out, nil
}

// All returns a snapshot of every line's trains in enumeration order
func (s *State) All() []models.LiveTrain {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.LiveTrain
	for _, line := range models.Lines() {
		out = append(out, s.trains[line]...)
	}
	return out
}

// LastRefresh is when the state was last advanced, zero before the first refresh
func (s *State) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

// Refresh advances every train on a line by one simulated step:
//   - the ETA moves by -1, 0 or +1 minute and never drops below 1
//   - with probability 0.1 the status is re-rolled; on-time (p=0.8) clears
//     the delay, delayed draws a delay between 2 and 11 minutes
//
// It returns the trains whose status changed.
func (s *State) Refresh(line models.Line) ([]Transition, error) {
	if !line.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidLine, line)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	transitions := s.refreshLocked(line)
	s.lastRefresh = s.now()
	return transitions, nil
}

// RefreshAll refreshes every line in enumeration order
func (s *State) RefreshAll() []Transition {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transitions []Transition
	for _, line := range models.Lines() {
		transitions = append(transitions, s.refreshLocked(line)...)
	}
	s.lastRefresh = s.now()
	return transitions
}

func (s *State) refreshLocked(line models.Line) []Transition {
	var transitions []Transition
	trains := s.trains[line]
	for i := range trains {
		t := &trains[i]

		eta := t.ETA + models.Minutes(s.rnd.Intn(3)-1)
		if eta < 1 {
			eta = 1
		}
		t.ETA = eta

		if s.rnd.Float64() >= statusChangeProbability {
			continue
		}
		previous := t.Status
		if s.rnd.Float64() < onTimeProbability {
			t.Status = models.StatusOnTime
			t.Delay = 0
		} else {
			t.Status = models.StatusDelayed
			t.Delay = models.Minutes(s.rnd.Intn(delaySpread) + minDelay)
		}
		if t.Status != previous {
			transitions = append(transitions, Transition{Train: *t, From: previous})
		}
	}

	ls, ok := s.stats[line]
	if !ok {
		ls = &lineStats{}
		s.stats[line] = ls
	}
	ls.observe(trains)
	return transitions
}

// Run refreshes every line on each tick until ctx is cancelled. Status
// transitions of a tick are handed to onChange when there are any.
func (s *State) Run(ctx context.Context, interval time.Duration, onChange func([]Transition)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			transitions := s.RefreshAll()
			if len(transitions) > 0 && onChange != nil {
				onChange(transitions)
			}
		case <-ctx.Done():
			return
		}
	}
}
