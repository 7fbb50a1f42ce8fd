package routing

import (
	"fmt"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/fare"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/network"
)

const (
	// InterchangeHub is the single transfer point used between lines
	InterchangeHub = "Dadar"

	minutesPerStop     models.Minutes = 3
	minimumDuration    models.Minutes = 15
	interchangePenalty models.Minutes = 10

	toHubLeg     models.Minutes = 25
	transferWalk models.Minutes = 3
	fromHubLeg   models.Minutes = 30
)

// Engine derives itineraries between two stations. Options are computed per
// query; the engine keeps no state of its own.
type Engine struct {
	registry *network.Registry
	fares    *fare.Table
}

func NewEngine(registry *network.Registry, fares *fare.Table) *Engine {
	return &Engine{registry: registry, fares: fares}
}

// GetRouteOptions returns the ways of travelling between two stations. The
// result is empty when either station does not resolve.
func (e *Engine) GetRouteOptions(fromID, toID string) ([]models.RouteOption, error) {
	from, err := e.registry.FindStation(fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve origin: %w", err)
	}
	to, err := e.registry.FindStation(toID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination: %w", err)
	}
	if from == nil || to == nil {
		return []models.RouteOption{}, nil
	}

	duration := e.Duration(*from, *to)
	cost, err := e.fares.CalculateFare(from.Zone, to.Zone, models.ClassSecond)
	if err != nil {
		return nil, fmt.Errorf("failed to price route: %w", err)
	}

	if from.Line == to.Line {
		return []models.RouteOption{{
			ID:       "direct",
			Type:     "Direct",
			Duration: duration,
			Cost:     cost,
			Changes:  0,
			Steps: []models.RouteStep{{
				Instruction: fmt.Sprintf("Take %s line train from %s", from.Line, from.Name),
				From:        from.Name,
				To:          to.Name,
				Duration:    duration,
				Mode:        models.StepRide,
			}},
		}}, nil
	}

	return []models.RouteOption{{
		ID:       "via-dadar",
		Type:     "Via " + InterchangeHub,
		Duration: duration + interchangePenalty,
		Cost:     cost,
		Changes:  1,
		Steps: []models.RouteStep{
			{
				Instruction: fmt.Sprintf("Take %s line train from %s to %s", from.Line, from.Name, InterchangeHub),
				From:        from.Name,
				To:          InterchangeHub,
				Duration:    toHubLeg,
				Mode:        models.StepRide,
			},
			{
				Instruction: fmt.Sprintf("Change at %s (Platform change: %s)", InterchangeHub, transferWalk),
				From:        InterchangeHub,
				To:          InterchangeHub,
				Duration:    transferWalk,
				Mode:        models.StepWalk,
			},
			{
				Instruction: fmt.Sprintf("Take %s line train from %s to %s", to.Line, InterchangeHub, to.Name),
				From:        InterchangeHub,
				To:          to.Name,
				Duration:    fromHubLeg,
				Mode:        models.StepRide,
			},
		},
	}}, nil
}

// Duration estimates travel time from the stations' positions in their
// line orderings: 3 minutes per position, at least 15 minutes.
func (e *Engine) Duration(from, to models.Station) models.Minutes {
	gap := e.registry.IndexOf(from) - e.registry.IndexOf(to)
	if gap < 0 {
		gap = -gap
	}
	d := minutesPerStop * models.Minutes(gap)
	if d < minimumDuration {
		return minimumDuration
	}
	return d
}
