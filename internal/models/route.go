package models

// StepMode says how a leg of a route is travelled
type StepMode string

const (
	StepRide StepMode = "ride"
	StepWalk StepMode = "walk"
)

// RouteStep is one leg of a RouteOption
type RouteStep struct {
	Instruction string   `json:"instruction"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Duration    Minutes  `json:"durationMinutes"`
	Mode        StepMode `json:"mode"`
}

// RouteOption describes one way of travelling between two stations. It is
// derived per query and never cached.
type RouteOption struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Duration Minutes     `json:"durationMinutes"`
	Cost     int         `json:"cost"`
	Changes  int         `json:"changes"`
	Steps    []RouteStep `json:"steps"`
}

// FareRule is one row of the zone fare chart
type FareRule struct {
	FromZone int
	ToZone   int
	Second   int
	First    int
}
