package live

import (
	"fmt"
	"math"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

// welford keeps a running mean and variance in constant space
type welford struct {
	count int
	mean  float64
	m2    float64
}

func (w *welford) update(v float64) {
	w.count++
	delta := v - w.mean
	w.mean += delta / float64(w.count)
	w.m2 += delta * (v - w.mean)
}

// stdDev is the population standard deviation, 0 below two observations
func (w *welford) stdDev() float64 {
	if w.count < 2 {
		return 0
	}
	return math.Sqrt(w.m2 / float64(w.count))
}

// DelayStats summarises the delays observed on a line across refreshes.
// Every train contributes one observation per refresh of its line.
type DelayStats struct {
	Line         models.Line    `json:"line"`
	Observations int            `json:"observations"`
	MeanDelay    float64        `json:"meanDelayMinutes"`
	StdDevDelay  float64        `json:"stdDevDelayMinutes"`
	DelayedCount int            `json:"delayedCount"`
	OnTimeCount  int            `json:"onTimeCount"`
	MaxDelay     models.Minutes `json:"maxDelayMinutes"`
}

type lineStats struct {
	delays   welford
	delayed  int
	onTime   int
	maxDelay models.Minutes
}

func (ls *lineStats) observe(trains []models.LiveTrain) {
	for _, t := range trains {
		ls.delays.update(float64(t.Delay))
		if t.Status == models.StatusDelayed {
			ls.delayed++
		} else {
			ls.onTime++
		}
		if t.Delay > ls.maxDelay {
			ls.maxDelay = t.Delay
		}
	}
}

// Stats returns the delay statistics of a line. Before the first refresh
// all counters are zero.
func (s *State) Stats(line models.Line) (DelayStats, error) {
	if !line.Valid() {
		return DelayStats{}, fmt.Errorf("%w: %q", models.ErrInvalidLine, line)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := DelayStats{Line: line}
	ls, ok := s.stats[line]
	if !ok {
		return out, nil
	}
	out.Observations = ls.delays.count
	out.MeanDelay = ls.delays.mean
	out.StdDevDelay = ls.delays.stdDev()
	out.DelayedCount = ls.delayed
	out.OnTimeCount = ls.onTime
	out.MaxDelay = ls.maxDelay
	return out, nil
}
